// Package handler はapplicationsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard_backend/internal/feature/applications/domain/entity"
	"jobboard_backend/internal/feature/applications/transport/http/dto"
	"jobboard_backend/internal/feature/applications/usecase"
	"jobboard_backend/internal/platform/apperror"
	jwtmw "jobboard_backend/internal/platform/jwt"
)

// ApplicationUsecase は応募操作のユースケースを定義します。
type ApplicationUsecase interface {
	ApplyForJob(ctx context.Context, userID, jobID string) (*entity.JobApplication, error)
	ListUserApplications(ctx context.Context, userID string) ([]usecase.UserApplication, error)
	ListCompanyApplicants(ctx context.Context, companyID string) ([]usecase.Applicant, error)
	ChangeStatus(ctx context.Context, companyID, applicationID string, status entity.Status) (*entity.JobApplication, error)
}

// ApplicationHandler は応募のHTTPリクエストを処理します。
type ApplicationHandler struct {
	apps ApplicationUsecase
}

// NewApplicationHandler はApplicationHandlerの新しいインスタンスを生成します。
func NewApplicationHandler(apps ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{apps: apps}
}

// Apply は認証済みユーザーを求人に応募させます。
// - 応募済みの場合は409 "Already Applied"
// - 求人が存在しない場合は404 "Job Not found"
// - 成功時は201 "Applied Successfully!"
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("apply validation failed", "error", err, "remote_addr", c.ClientIP())
		apperror.Respond(c, usecase.ErrJobIDRequired)
		return
	}

	userID := jwtmw.UserID(c)
	if _, err := h.apps.ApplyForJob(c.Request.Context(), userID, req.JobID); err != nil {
		slog.Warn("apply failed", "error", err, "user_id", userID, "job_id", req.JobID)
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Success: true, Message: "Applied Successfully!"})
}

// ListUserApplications は認証済みユーザーの応募一覧を返します。
func (h *ApplicationHandler) ListUserApplications(c *gin.Context) {
	apps, err := h.apps.ListUserApplications(c.Request.Context(), jwtmw.UserID(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	out := make([]dto.UserApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, dto.NewUserApplicationResponse(a))
	}
	c.JSON(http.StatusOK, dto.UserApplicationsResponse{Success: true, Applications: out})
}

// ListCompanyApplicants は認証済み企業宛ての応募一覧を返します。
func (h *ApplicationHandler) ListCompanyApplicants(c *gin.Context) {
	apps, err := h.apps.ListCompanyApplicants(c.Request.Context(), jwtmw.CompanyID(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	out := make([]dto.ApplicantResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, dto.NewApplicantResponse(a))
	}
	c.JSON(http.StatusOK, dto.ApplicantsResponse{Success: true, Applications: out})
}

// ChangeStatus は応募の選考状態を変更します。
func (h *ApplicationHandler) ChangeStatus(c *gin.Context) {
	var req dto.ChangeStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("change status validation failed", "error", err, "remote_addr", c.ClientIP())
		apperror.Respond(c, apperror.Validation("id and status are required"))
		return
	}

	companyID := jwtmw.CompanyID(c)
	if _, err := h.apps.ChangeStatus(c.Request.Context(), companyID, req.ID, entity.Status(req.Status)); err != nil {
		apperror.Respond(c, err)
		return
	}

	slog.Info("application status changed", "application_id", req.ID, "status", req.Status, "company_id", companyID)
	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Status Changed"})
}
