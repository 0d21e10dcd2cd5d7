package apperror

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Response は全エンドポイント共通の失敗レスポンスです。
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Respond はerrを {success:false, message} としてKindに応じたステータスで書き込みます。
// 内部エラーは原因をログに残し、汎用メッセージのみ返します。
func Respond(c *gin.Context, err error) {
	kind := KindOf(err)
	status := HTTPStatus(kind)
	if kind == KindInternal {
		slog.Error("request failed", "error", err, "method", c.Request.Method, "path", c.FullPath())
	}
	c.JSON(status, Response{Success: false, Message: MessageOf(err)})
}

// Abort はミドルウェア用のRespondで、後続のハンドラーを中断します。
func Abort(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}
