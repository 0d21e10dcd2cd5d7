package usecase

import "jobboard_backend/internal/platform/apperror"

var (
	// ErrJobNotFound は求人が存在しない、または操作中の企業が所有していない場合に返されます。
	ErrJobNotFound = apperror.New(apperror.KindNotFound, "Job Not found")

	// ErrMissingJobDetails は求人の必須項目が欠けている場合に返されます。
	ErrMissingJobDetails = apperror.Validation("Missing Details")

	// ErrInvalidSalary は給与が負の値の場合に返されます。
	ErrInvalidSalary = apperror.Validation("Salary must not be negative")
)
