// Package handler はIDプロバイダーからのWebhookを受け付けるHTTPハンドラーを提供します。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard_backend/internal/feature/identity/adapters/webhook"
	"jobboard_backend/internal/feature/identity/domain/entity"
	"jobboard_backend/internal/feature/identity/transport/http/dto"
	"jobboard_backend/internal/feature/identity/usecase"
	"jobboard_backend/internal/platform/apperror"
)

// maxWebhookBody はWebhookボディの上限サイズです。
const maxWebhookBody = 1 << 20

var (
	errMissingHeaders     = apperror.Validation("Missing svix headers")
	errVerificationFailed = apperror.New(apperror.KindUnauthorized, "Webhook verification failed")
	errInvalidPayload     = apperror.Validation("Invalid webhook payload")
)

// EventVerifier はWebhookの署名を検証します。
type EventVerifier interface {
	Verify(payload []byte, headers http.Header) error
}

// AccountReconciler は検証済みのイベントをユーザーレコードに反映します。
type AccountReconciler interface {
	Reconcile(ctx context.Context, evt entity.Event) (usecase.Outcome, error)
}

// WebhookHandler はアカウント同期Webhookを処理します。
type WebhookHandler struct {
	verifier   EventVerifier
	reconciler AccountReconciler
}

// NewWebhookHandler はWebhookHandlerの新しいインスタンスを生成します。
func NewWebhookHandler(verifier EventVerifier, reconciler AccountReconciler) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, reconciler: reconciler}
}

// Clerk は POST /webhooks/clerk を処理します。
// - 署名ヘッダーが欠けている場合は検証前に400を返却
// - 署名検証に失敗した場合は401を返却し、イベントは処理しない
// - user.created 成功時は201、更新・削除成功時は200を返却
func (h *WebhookHandler) Clerk(c *gin.Context) {
	for _, name := range webhook.RequiredHeaders {
		if c.GetHeader(name) == "" {
			slog.Warn("webhook header missing", "header", name, "remote_addr", c.ClientIP())
			apperror.Respond(c, errMissingHeaders)
			return
		}
	}

	// 署名は受信したままのバイト列に対して検証する
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			slog.Warn("webhook body too large", "limit", tooLarge.Limit, "remote_addr", c.ClientIP())
		} else {
			slog.Warn("failed to read webhook body", "error", err, "remote_addr", c.ClientIP())
		}
		apperror.Respond(c, errInvalidPayload)
		return
	}

	if err := h.verifier.Verify(body, c.Request.Header); err != nil {
		slog.Warn("webhook verification failed", "error", err, "svix_id", c.GetHeader(webhook.HeaderID), "remote_addr", c.ClientIP())
		apperror.Respond(c, errVerificationFailed)
		return
	}

	var evt entity.Event
	if err := json.Unmarshal(body, &evt); err != nil {
		slog.Warn("webhook payload decode failed", "error", err, "svix_id", c.GetHeader(webhook.HeaderID))
		apperror.Respond(c, errInvalidPayload)
		return
	}

	out, err := h.reconciler.Reconcile(c.Request.Context(), evt)
	if err != nil {
		slog.Warn("webhook processing failed", "error", err, "type", evt.Type, "user_id", evt.Data.ID)
		apperror.Respond(c, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.WebhookResponse{Success: true, Message: out.Message})
}
