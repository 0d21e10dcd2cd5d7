package usecase

import "jobboard_backend/internal/platform/apperror"

var (
	// ErrUnhandledEvent は対象外のイベント種別を受け取った場合に返されます。
	ErrUnhandledEvent = apperror.Validation("Unhandled event type")
)
