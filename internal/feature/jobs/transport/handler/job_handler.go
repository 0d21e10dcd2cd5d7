// Package handler はjobsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/transport/http/dto"
	"jobboard_backend/internal/feature/jobs/usecase"
	"jobboard_backend/internal/platform/apperror"
	jwtmw "jobboard_backend/internal/platform/jwt"
)

// JobUsecase は求人操作のユースケースを定義します。
type JobUsecase interface {
	ListJobs(ctx context.Context) ([]usecase.JobWithCompany, error)
	GetJob(ctx context.Context, id string) (*usecase.JobWithCompany, error)
	PostJob(ctx context.Context, companyID string, in usecase.PostJobInput) (*entity.Job, error)
	ListCompanyJobs(ctx context.Context, companyID string) ([]usecase.JobWithApplicants, error)
	ChangeVisibility(ctx context.Context, companyID, jobID string) (*entity.Job, error)
}

// JobHandler は求人のHTTPリクエストを処理します。
type JobHandler struct {
	jobs JobUsecase
}

// NewJobHandler はJobHandlerの新しいインスタンスを生成します。
func NewJobHandler(jobs JobUsecase) *JobHandler {
	return &JobHandler{jobs: jobs}
}

// ListJobs は公開中の求人一覧を返します。
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobs.ListJobs(c.Request.Context())
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.NewJobResponse(j))
	}
	c.JSON(http.StatusOK, dto.ListJobsResponse{Success: true, Jobs: out})
}

// GetJob はパスパラメータ id の求人を返します。
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobs.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GetJobResponse{Success: true, Job: dto.NewJobResponse(*job)})
}

// PostJob は認証済み企業の求人を掲載します。
func (h *JobHandler) PostJob(c *gin.Context) {
	var req dto.PostJobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("post job validation failed", "error", err, "remote_addr", c.ClientIP())
		apperror.Respond(c, usecase.ErrMissingJobDetails)
		return
	}

	job, err := h.jobs.PostJob(c.Request.Context(), jwtmw.CompanyID(c), usecase.PostJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Category:    req.Category,
		Level:       req.Level,
		Salary:      req.Salary,
	})
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.OwnJobMessageResponse{
		Success: true,
		Message: "Job Added",
		Job:     dto.NewOwnJobResponse(*job, 0),
	})
}

// ListCompanyJobs は認証済み企業の求人を応募数付きで返します。
func (h *JobHandler) ListCompanyJobs(c *gin.Context) {
	jobs, err := h.jobs.ListCompanyJobs(c.Request.Context(), jwtmw.CompanyID(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}

	out := make([]dto.OwnJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.NewOwnJobResponse(j.Job, j.Applicants))
	}
	c.JSON(http.StatusOK, dto.CompanyJobsResponse{Success: true, JobsData: out})
}

// ChangeVisibility は求人の公開状態を反転します。
func (h *JobHandler) ChangeVisibility(c *gin.Context) {
	var req dto.ChangeVisibilityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("change visibility validation failed", "error", err, "remote_addr", c.ClientIP())
		apperror.Respond(c, apperror.Validation("Job id is required"))
		return
	}

	job, err := h.jobs.ChangeVisibility(c.Request.Context(), jwtmw.CompanyID(c), req.ID)
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OwnJobMessageResponse{
		Success: true,
		Message: "Visibility Changed",
		Job:     dto.NewOwnJobSummary(*job),
	})
}
