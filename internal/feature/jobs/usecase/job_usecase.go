// Package usecase はjobsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	companyentity "jobboard_backend/internal/feature/company/domain/entity"
	"jobboard_backend/internal/feature/jobs/domain/entity"
)

// JobRepository は求人の永続化層を抽象化します。
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	// FindByID は存在しない場合にErrJobNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Job, error)
	FindByIDs(ctx context.Context, ids []string) ([]entity.Job, error)
	// ListVisible は公開中の求人を新しい順に返します。
	ListVisible(ctx context.Context) ([]entity.Job, error)
	// ListByCompany は企業の全求人（非公開を含む）を新しい順に返します。
	ListByCompany(ctx context.Context, companyID string) ([]entity.Job, error)
	SetVisible(ctx context.Context, id string, visible bool) error
}

// CompanyReader は求人に紐づく企業情報を解決します。
type CompanyReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]companyentity.Company, error)
}

// ApplicantCounter は求人ごとの応募数を数えます。
type ApplicantCounter interface {
	CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error)
}

// JobWithCompany は企業情報を解決済みの求人です。企業が見つからない場合Companyはnilです。
type JobWithCompany struct {
	Job     entity.Job
	Company *companyentity.Company
}

// JobWithApplicants は応募数付きの求人です。
type JobWithApplicants struct {
	Job        entity.Job
	Applicants int
}

// PostJobInput は求人掲載の入力です。
type PostJobInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Level       string
	Salary      int
}

type jobUsecase struct {
	jobs       JobRepository
	companies  CompanyReader
	applicants ApplicantCounter
	now        func() time.Time
}

// NewJobUsecase はjobUsecaseの新しいインスタンスを生成します。
func NewJobUsecase(jobs JobRepository, companies CompanyReader, applicants ApplicantCounter) *jobUsecase {
	return &jobUsecase{
		jobs:       jobs,
		companies:  companies,
		applicants: applicants,
		now:        time.Now,
	}
}

// ListJobs は公開中の求人を企業情報付きで返します。
func (u *jobUsecase) ListJobs(ctx context.Context) ([]JobWithCompany, error) {
	jobs, err := u.jobs.ListVisible(ctx)
	if err != nil {
		return nil, err
	}
	return u.withCompanies(ctx, jobs)
}

// GetJob は求人を企業情報付きで返します。
func (u *jobUsecase) GetJob(ctx context.Context, id string) (*JobWithCompany, error) {
	job, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out, err := u.withCompanies(ctx, []entity.Job{*job})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (u *jobUsecase) withCompanies(ctx context.Context, jobs []entity.Job) ([]JobWithCompany, error) {
	seen := map[string]struct{}{}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		if _, ok := seen[j.CompanyID]; ok {
			continue
		}
		seen[j.CompanyID] = struct{}{}
		ids = append(ids, j.CompanyID)
	}

	companies, err := u.companies.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve companies: %w", err)
	}
	byID := make(map[string]*companyentity.Company, len(companies))
	for i := range companies {
		byID[companies[i].ID] = &companies[i]
	}

	out := make([]JobWithCompany, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobWithCompany{Job: j, Company: byID[j.CompanyID]})
	}
	return out, nil
}

// PostJob は企業の求人を掲載します。掲載直後の求人は公開状態です。
func (u *jobUsecase) PostJob(ctx context.Context, companyID string, in PostJobInput) (*entity.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.Category) == "" || strings.TrimSpace(in.Level) == "" {
		return nil, ErrMissingJobDetails
	}
	if in.Salary < 0 {
		return nil, ErrInvalidSalary
	}

	job := &entity.Job{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Location:    strings.TrimSpace(in.Location),
		Level:       strings.TrimSpace(in.Level),
		Salary:      in.Salary,
		CompanyID:   companyID,
		Visible:     true,
		Date:        u.now(),
	}
	if err := u.jobs.Create(ctx, job); err != nil {
		return nil, err
	}

	slog.Info("job posted", "job_id", job.ID, "company_id", companyID)
	return job, nil
}

// ListCompanyJobs は企業の求人を応募数付きで返します。
func (u *jobUsecase) ListCompanyJobs(ctx context.Context, companyID string) ([]JobWithApplicants, error) {
	jobs, err := u.jobs.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	counts, err := u.applicants.CountByJobIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count applicants: %w", err)
	}

	out := make([]JobWithApplicants, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobWithApplicants{Job: j, Applicants: counts[j.ID]})
	}
	return out, nil
}

// ChangeVisibility は求人の公開状態を反転し、更新後の求人を返します。
// 他社の求人は存在しないものとして扱います。
func (u *jobUsecase) ChangeVisibility(ctx context.Context, companyID, jobID string) (*entity.Job, error) {
	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != companyID {
		slog.Warn("visibility change on foreign job", "job_id", jobID, "company_id", companyID)
		return nil, ErrJobNotFound
	}

	job.Visible = !job.Visible
	if err := u.jobs.SetVisible(ctx, job.ID, job.Visible); err != nil {
		return nil, err
	}
	return job, nil
}
