// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard_backend/internal/feature/users/domain/entity"
	"jobboard_backend/internal/feature/users/transport/http/dto"
	"jobboard_backend/internal/feature/users/usecase"
	"jobboard_backend/internal/platform/apperror"
	jwtmw "jobboard_backend/internal/platform/jwt"
)

// UserUsecase はユーザープロフィール操作のユースケースを定義します。
type UserUsecase interface {
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateResume(ctx context.Context, id, filename string, r io.Reader, contentType string) (*entity.User, error)
}

// UserHandler はユーザープロフィールのHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser は認証済みユーザーのプロフィールを返します。
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.users.GetUser(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GetUserResponse{Success: true, User: dto.NewUserResponse(u)})
}

// UpdateResume はmultipartの resume フィールドで送られたファイルを保存し、レジュメURLを更新します。
func (h *UserHandler) UpdateResume(c *gin.Context) {
	userID := jwtmw.UserID(c)

	fh, err := c.FormFile("resume")
	if err != nil {
		slog.Warn("resume file missing", "error", err, "user_id", userID, "remote_addr", c.ClientIP())
		apperror.Respond(c, usecase.ErrResumeRequired)
		return
	}

	f, err := fh.Open()
	if err != nil {
		apperror.Respond(c, apperror.Internal(err))
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close resume file", "error", err)
		}
	}()

	u, err := h.users.UpdateResume(c.Request.Context(), userID, fh.Filename, f, fh.Header.Get("Content-Type"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	slog.Info("resume updated", "user_id", userID)
	c.JSON(http.StatusOK, dto.UpdateResumeResponse{
		Success: true,
		Message: "Resume Updated",
		User:    dto.NewUserResponse(u),
	})
}
