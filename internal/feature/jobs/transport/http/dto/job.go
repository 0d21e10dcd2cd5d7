// Package dto はjobsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	companyentity "jobboard_backend/internal/feature/company/domain/entity"
	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
)

// PostJobReq は/api/company/post-jobのリクエストボディです。
type PostJobReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Level       string `json:"level" binding:"required"`
	Salary      int    `json:"salary" binding:"gte=0"`
}

// ChangeVisibilityReq は/api/company/change-visiblityのリクエストボディです。
type ChangeVisibilityReq struct {
	ID string `json:"id" binding:"required"`
}

// CompanyRef は求人や応募に埋め込む企業の公開情報です。
type CompanyRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// NewCompanyRef は企業エンティティからCompanyRefを生成します。nilの場合はnilを返します。
func NewCompanyRef(c *companyentity.Company) *CompanyRef {
	if c == nil {
		return nil
	}
	return &CompanyRef{ID: c.ID, Name: c.Name, Email: c.Email, Image: c.Image}
}

// JobResponse は企業情報を埋め込んだ求人です。
type JobResponse struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	Level       string      `json:"level"`
	Salary      int         `json:"salary"`
	Visible     bool        `json:"visible"`
	Date        time.Time   `json:"date"`
	Company     *CompanyRef `json:"companyId"`
}

// NewJobResponse は企業情報付きの求人からJobResponseを生成します。
func NewJobResponse(j usecase.JobWithCompany) JobResponse {
	return JobResponse{
		ID:          j.Job.ID,
		Title:       j.Job.Title,
		Description: j.Job.Description,
		Category:    j.Job.Category,
		Location:    j.Job.Location,
		Level:       j.Job.Level,
		Salary:      j.Job.Salary,
		Visible:     j.Job.Visible,
		Date:        j.Job.Date,
		Company:     NewCompanyRef(j.Company),
	}
}

// OwnJobResponse は企業自身に返す求人です。companyId はIDのままです。
// applicants は件数を集計した場合のみ含めます。
type OwnJobResponse struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Level       string    `json:"level"`
	Salary      int       `json:"salary"`
	Visible     bool      `json:"visible"`
	Date        time.Time `json:"date"`
	CompanyID   string    `json:"companyId"`
	Applicants  *int      `json:"applicants,omitempty"`
}

// NewOwnJobResponse は求人エンティティと応募者数からOwnJobResponseを生成します。
func NewOwnJobResponse(j entity.Job, applicants int) OwnJobResponse {
	r := NewOwnJobSummary(j)
	r.Applicants = &applicants
	return r
}

// NewOwnJobSummary は応募者数を含まないOwnJobResponseを生成します。
func NewOwnJobSummary(j entity.Job) OwnJobResponse {
	return OwnJobResponse{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		Location:    j.Location,
		Level:       j.Level,
		Salary:      j.Salary,
		Visible:     j.Visible,
		Date:        j.Date,
		CompanyID:   j.CompanyID,
	}
}

// ListJobsResponse は公開求人一覧のレスポンスです。
type ListJobsResponse struct {
	Success bool          `json:"success"`
	Jobs    []JobResponse `json:"jobs"`
}

// GetJobResponse は求人詳細のレスポンスです。
type GetJobResponse struct {
	Success bool        `json:"success"`
	Job     JobResponse `json:"job"`
}

// CompanyJobsResponse は企業の求人一覧のレスポンスです。
type CompanyJobsResponse struct {
	Success  bool             `json:"success"`
	JobsData []OwnJobResponse `json:"jobsData"`
}

// OwnJobMessageResponse は求人の掲載・公開状態変更のレスポンスです。
type OwnJobMessageResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Job     OwnJobResponse `json:"job"`
}
