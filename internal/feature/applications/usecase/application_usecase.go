// Package usecase は求人への応募と、応募に関する照会・選考状態の変更を実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobboard_backend/internal/feature/applications/domain/entity"
	companyentity "jobboard_backend/internal/feature/company/domain/entity"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
	userentity "jobboard_backend/internal/feature/users/domain/entity"
	"jobboard_backend/internal/platform/apperror"
	"jobboard_backend/internal/platform/events"
)

// ApplicationRepository は応募の永続化層を抽象化します。
type ApplicationRepository interface {
	// Create は応募を保存します。(UserID, JobID) が重複する場合はErrAlreadyAppliedを返します。
	Create(ctx context.Context, app *entity.JobApplication) error
	Exists(ctx context.Context, userID, jobID string) (bool, error)
	// FindByID は存在しない場合にErrApplicationNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.JobApplication, error)
	ListByUser(ctx context.Context, userID string) ([]entity.JobApplication, error)
	ListByCompany(ctx context.Context, companyID string) ([]entity.JobApplication, error)
	UpdateStatus(ctx context.Context, id string, status entity.Status) error
	CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error)
}

// JobReader は応募先の求人を解決します。
type JobReader interface {
	FindByID(ctx context.Context, id string) (*jobentity.Job, error)
	FindByIDs(ctx context.Context, ids []string) ([]jobentity.Job, error)
}

// CompanyReader は応募先の企業を解決します。
type CompanyReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]companyentity.Company, error)
}

// UserReader は応募者を解決します。
type UserReader interface {
	FindByIDs(ctx context.Context, ids []string) ([]userentity.User, error)
}

// EventPublisher はドメインイベントを外部に通知します。
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// UserApplication はユーザーに返す応募で、求人と企業を解決済みです。
type UserApplication struct {
	Application entity.JobApplication
	Job         *jobentity.Job
	Company     *companyentity.Company
}

// Applicant は企業に返す応募で、応募者と求人を解決済みです。
type Applicant struct {
	Application entity.JobApplication
	User        *userentity.User
	Job         *jobentity.Job
}

// applicationEvent は発行する応募イベントのペイロードです。
type applicationEvent struct {
	ApplicationID string        `json:"applicationId"`
	UserID        string        `json:"userId"`
	JobID         string        `json:"jobId"`
	CompanyID     string        `json:"companyId"`
	Status        entity.Status `json:"status"`
}

type applicationUsecase struct {
	apps      ApplicationRepository
	jobs      JobReader
	companies CompanyReader
	users     UserReader
	publisher EventPublisher
	now       func() time.Time
}

// NewApplicationUsecase はapplicationUsecaseの新しいインスタンスを生成します。
func NewApplicationUsecase(apps ApplicationRepository, jobs JobReader, companies CompanyReader, users UserReader, publisher EventPublisher) *applicationUsecase {
	return &applicationUsecase{
		apps:      apps,
		jobs:      jobs,
		companies: companies,
		users:     users,
		publisher: publisher,
		now:       time.Now,
	}
}

// ApplyForJob はユーザーを求人に応募させます。
// 既存の応募を先に確認しますが、同時リクエストによる重複はストアの一意制約で検出され、同じErrAlreadyAppliedになります。
func (u *applicationUsecase) ApplyForJob(ctx context.Context, userID, jobID string) (*entity.JobApplication, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return nil, ErrJobIDRequired
	}

	applied, err := u.apps.Exists(ctx, userID, jobID)
	if err != nil {
		return nil, fmt.Errorf("check existing application: %w", err)
	}
	if applied {
		return nil, ErrAlreadyApplied
	}

	job, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindNotFound {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	app := &entity.JobApplication{
		ID:        uuid.NewString(),
		UserID:    userID,
		JobID:     job.ID,
		CompanyID: job.CompanyID,
		Status:    entity.StatusPending,
		Date:      u.now(),
	}
	if err := u.apps.Create(ctx, app); err != nil {
		return nil, err
	}

	slog.Info("application created", "application_id", app.ID, "user_id", userID, "job_id", jobID)
	u.publish(ctx, events.SubjectApplicationCreated, app)
	return app, nil
}

// ListUserApplications はユーザーの応募を求人・企業情報付きで返します。
func (u *applicationUsecase) ListUserApplications(ctx context.Context, userID string) ([]UserApplication, error) {
	apps, err := u.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	jobs, err := u.jobsByID(ctx, apps)
	if err != nil {
		return nil, err
	}

	companyIDs := uniqueIDs(apps, func(a entity.JobApplication) string { return a.CompanyID })
	companies, err := u.companies.FindByIDs(ctx, companyIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve companies: %w", err)
	}
	companyByID := make(map[string]*companyentity.Company, len(companies))
	for i := range companies {
		companyByID[companies[i].ID] = &companies[i]
	}

	out := make([]UserApplication, 0, len(apps))
	for _, a := range apps {
		out = append(out, UserApplication{Application: a, Job: jobs[a.JobID], Company: companyByID[a.CompanyID]})
	}
	return out, nil
}

// ListCompanyApplicants は企業宛ての応募を応募者・求人情報付きで返します。
func (u *applicationUsecase) ListCompanyApplicants(ctx context.Context, companyID string) ([]Applicant, error) {
	apps, err := u.apps.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	jobs, err := u.jobsByID(ctx, apps)
	if err != nil {
		return nil, err
	}

	userIDs := uniqueIDs(apps, func(a entity.JobApplication) string { return a.UserID })
	users, err := u.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve users: %w", err)
	}
	userByID := make(map[string]*userentity.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	out := make([]Applicant, 0, len(apps))
	for _, a := range apps {
		out = append(out, Applicant{Application: a, User: userByID[a.UserID], Job: jobs[a.JobID]})
	}
	return out, nil
}

// ChangeStatus は応募の選考状態を変更します。他社宛ての応募は存在しないものとして扱います。
func (u *applicationUsecase) ChangeStatus(ctx context.Context, companyID, applicationID string, status entity.Status) (*entity.JobApplication, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	app, err := u.apps.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.CompanyID != companyID {
		slog.Warn("status change on foreign application", "application_id", applicationID, "company_id", companyID)
		return nil, ErrApplicationNotFound
	}

	if err := u.apps.UpdateStatus(ctx, app.ID, status); err != nil {
		return nil, err
	}
	app.Status = status

	u.publish(ctx, events.SubjectApplicationStatusChanged, app)
	return app, nil
}

func (u *applicationUsecase) jobsByID(ctx context.Context, apps []entity.JobApplication) (map[string]*jobentity.Job, error) {
	jobIDs := uniqueIDs(apps, func(a entity.JobApplication) string { return a.JobID })
	jobs, err := u.jobs.FindByIDs(ctx, jobIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve jobs: %w", err)
	}
	byID := make(map[string]*jobentity.Job, len(jobs))
	for i := range jobs {
		byID[jobs[i].ID] = &jobs[i]
	}
	return byID, nil
}

func (u *applicationUsecase) publish(ctx context.Context, subject string, app *entity.JobApplication) {
	err := u.publisher.Publish(ctx, subject, applicationEvent{
		ApplicationID: app.ID,
		UserID:        app.UserID,
		JobID:         app.JobID,
		CompanyID:     app.CompanyID,
		Status:        app.Status,
	})
	if err != nil {
		slog.Warn("application event publish failed", "error", err, "subject", subject, "application_id", app.ID)
	}
}

func uniqueIDs(apps []entity.JobApplication, key func(entity.JobApplication) string) []string {
	seen := make(map[string]struct{}, len(apps))
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		id := key(a)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
