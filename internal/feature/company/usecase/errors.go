package usecase

import "jobboard_backend/internal/platform/apperror"

var (
	// ErrCompanyNotFound は指定された企業が存在しない場合に返されます。
	ErrCompanyNotFound = apperror.New(apperror.KindNotFound, "Company not found")

	// ErrEmailAlreadyExists は同じメールアドレスの企業が既に登録されている場合に返されます。
	ErrEmailAlreadyExists = apperror.New(apperror.KindConflict, "Company already registered")

	// ErrInvalidCredentials はメールアドレスまたはパスワードが一致しない場合に返されます。
	ErrInvalidCredentials = apperror.New(apperror.KindUnauthorized, "Invalid email or password")

	// ErrMissingDetails は登録に必要な項目が欠けている場合に返されます。
	ErrMissingDetails = apperror.Validation("Missing Details")

	// ErrLogoRequired はロゴ画像が添付されていない場合に返されます。
	ErrLogoRequired = apperror.Validation("Company logo is required")

	// ErrWeakPassword はパスワードが要件を満たさない場合に返されます。
	ErrWeakPassword = apperror.Validation("Password must be at least 8 characters long")
)
