package usecase

import "jobboard_backend/internal/platform/apperror"

var (
	// ErrUserNotFound は指定されたIDのユーザーが存在しない場合に返されます。
	ErrUserNotFound = apperror.New(apperror.KindNotFound, "User not found")

	// ErrUserAlreadyExists は同じIDまたはメールアドレスのユーザーが既に存在する場合に返されます。
	ErrUserAlreadyExists = apperror.New(apperror.KindConflict, "User already exists")

	// ErrResumeRequired はレジュメファイルが添付されていない場合に返されます。
	ErrResumeRequired = apperror.Validation("Resume file is required")
)
