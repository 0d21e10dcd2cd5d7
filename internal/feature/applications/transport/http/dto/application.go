// Package dto はapplicationsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"jobboard_backend/internal/feature/applications/domain/entity"
	"jobboard_backend/internal/feature/applications/usecase"
	companyentity "jobboard_backend/internal/feature/company/domain/entity"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
	userentity "jobboard_backend/internal/feature/users/domain/entity"
)

// ApplyReq は/api/users/applyのリクエストボディです。
type ApplyReq struct {
	JobID string `json:"jobId"`
}

// ChangeStatusReq は/api/company/change-statusのリクエストボディです。
type ChangeStatusReq struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// CompanyRef は応募に埋め込む企業情報です。
type CompanyRef struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

// JobRef は応募に埋め込む求人情報です。
type JobRef struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Salary      int    `json:"salary"`
}

// UserRef は応募に埋め込む応募者情報です。
type UserRef struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Image  string `json:"image"`
	Resume string `json:"resume"`
}

// UserApplicationResponse はユーザーに返す応募です。companyId と jobId は解決済みのオブジェクトです。
type UserApplicationResponse struct {
	ID      string        `json:"_id"`
	UserID  string        `json:"userId"`
	Company *CompanyRef   `json:"companyId"`
	Job     *JobRef       `json:"jobId"`
	Status  entity.Status `json:"status"`
	Date    time.Time     `json:"date"`
}

// ApplicantResponse は企業に返す応募です。userId と jobId は解決済みのオブジェクトです。
type ApplicantResponse struct {
	ID        string        `json:"_id"`
	User      *UserRef      `json:"userId"`
	Job       *JobRef       `json:"jobId"`
	CompanyID string        `json:"companyId"`
	Status    entity.Status `json:"status"`
	Date      time.Time     `json:"date"`
}

func newCompanyRef(c *companyentity.Company) *CompanyRef {
	if c == nil {
		return nil
	}
	return &CompanyRef{ID: c.ID, Name: c.Name, Email: c.Email, Image: c.Image}
}

func newJobRef(j *jobentity.Job, withDescription bool) *JobRef {
	if j == nil {
		return nil
	}
	ref := &JobRef{
		ID:       j.ID,
		Title:    j.Title,
		Location: j.Location,
		Category: j.Category,
		Level:    j.Level,
		Salary:   j.Salary,
	}
	if withDescription {
		ref.Description = j.Description
	}
	return ref
}

func newUserRef(u *userentity.User) *UserRef {
	if u == nil {
		return nil
	}
	return &UserRef{ID: u.ID, Name: u.Name, Image: u.Image, Resume: u.Resume}
}

// NewUserApplicationResponse はUserApplicationからレスポンスを生成します。
func NewUserApplicationResponse(a usecase.UserApplication) UserApplicationResponse {
	return UserApplicationResponse{
		ID:      a.Application.ID,
		UserID:  a.Application.UserID,
		Company: newCompanyRef(a.Company),
		Job:     newJobRef(a.Job, true),
		Status:  a.Application.Status,
		Date:    a.Application.Date,
	}
}

// NewApplicantResponse はApplicantからレスポンスを生成します。
func NewApplicantResponse(a usecase.Applicant) ApplicantResponse {
	return ApplicantResponse{
		ID:        a.Application.ID,
		User:      newUserRef(a.User),
		Job:       newJobRef(a.Job, false),
		CompanyID: a.Application.CompanyID,
		Status:    a.Application.Status,
		Date:      a.Application.Date,
	}
}

// MessageResponse は応募・選考状態変更のレスポンスです。
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserApplicationsResponse はユーザーの応募一覧のレスポンスです。
type UserApplicationsResponse struct {
	Success      bool                      `json:"success"`
	Applications []UserApplicationResponse `json:"application"`
}

// ApplicantsResponse は企業宛ての応募一覧のレスポンスです。
type ApplicantsResponse struct {
	Success      bool                `json:"success"`
	Applications []ApplicantResponse `json:"applications"`
}
