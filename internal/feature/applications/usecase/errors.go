package usecase

import "jobboard_backend/internal/platform/apperror"

var (
	// ErrAlreadyApplied は同じ求人に既に応募済みの場合に返されます。
	ErrAlreadyApplied = apperror.New(apperror.KindConflict, "Already Applied")

	// ErrJobNotFound は応募先の求人が存在しない場合に返されます。
	ErrJobNotFound = apperror.New(apperror.KindNotFound, "Job Not found")

	// ErrApplicationNotFound は応募が存在しない、または操作中の企業宛てでない場合に返されます。
	ErrApplicationNotFound = apperror.New(apperror.KindNotFound, "Application not found")

	// ErrJobIDRequired は応募リクエストに求人IDが含まれていない場合に返されます。
	ErrJobIDRequired = apperror.Validation("jobId is required")

	// ErrInvalidStatus は未定義の選考状態が指定された場合に返されます。
	ErrInvalidStatus = apperror.Validation("Invalid status")
)
