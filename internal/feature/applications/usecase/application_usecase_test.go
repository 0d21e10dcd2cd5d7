package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard_backend/internal/feature/applications/domain/entity"
	companyentity "jobboard_backend/internal/feature/company/domain/entity"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
	userentity "jobboard_backend/internal/feature/users/domain/entity"
	"jobboard_backend/internal/platform/apperror"
	"jobboard_backend/internal/platform/events"
)

// memoryApplications は一意制約を持つインメモリのApplicationRepositoryです。
type memoryApplications struct {
	mu        sync.Mutex
	apps      map[string]entity.JobApplication
	existsErr error
	// beforeCreate は Exists と Create の間に割り込む処理です（競合の再現用）。
	beforeCreate func()
}

func newMemoryApplications() *memoryApplications {
	return &memoryApplications{apps: map[string]entity.JobApplication{}}
}

func (m *memoryApplications) Create(ctx context.Context, app *entity.JobApplication) error {
	if m.beforeCreate != nil {
		m.beforeCreate()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.UserID == app.UserID && a.JobID == app.JobID {
			return ErrAlreadyApplied
		}
	}
	m.apps[app.ID] = *app
	return nil
}

func (m *memoryApplications) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.apps {
		if a.UserID == userID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryApplications) FindByID(ctx context.Context, id string) (*entity.JobApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return nil, ErrApplicationNotFound
	}
	return &a, nil
}

func (m *memoryApplications) list(match func(entity.JobApplication) bool) []entity.JobApplication {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.JobApplication
	for _, a := range m.apps {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryApplications) ListByUser(ctx context.Context, userID string) ([]entity.JobApplication, error) {
	return m.list(func(a entity.JobApplication) bool { return a.UserID == userID }), nil
}

func (m *memoryApplications) ListByCompany(ctx context.Context, companyID string) ([]entity.JobApplication, error) {
	return m.list(func(a entity.JobApplication) bool { return a.CompanyID == companyID }), nil
}

func (m *memoryApplications) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.apps[id]
	if !ok {
		return ErrApplicationNotFound
	}
	a.Status = status
	m.apps[id] = a
	return nil
}

func (m *memoryApplications) CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int{}
	for _, a := range m.apps {
		for _, id := range jobIDs {
			if a.JobID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

var jobNotFound = apperror.New(apperror.KindNotFound, "Job Not found")

// fakeJobs はテスト用のJobReader実装です。
type fakeJobs struct {
	jobs map[string]jobentity.Job
	err  error
}

func (f *fakeJobs) FindByID(ctx context.Context, id string) (*jobentity.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	j, ok := f.jobs[id]
	if !ok {
		return nil, jobNotFound
	}
	return &j, nil
}

func (f *fakeJobs) FindByIDs(ctx context.Context, ids []string) ([]jobentity.Job, error) {
	var out []jobentity.Job
	for _, id := range ids {
		if j, ok := f.jobs[id]; ok {
			out = append(out, j)
		}
	}
	return out, nil
}

// fakeCompanies はテスト用のCompanyReader実装です。
type fakeCompanies struct{ companies []companyentity.Company }

func (f *fakeCompanies) FindByIDs(ctx context.Context, ids []string) ([]companyentity.Company, error) {
	return f.companies, nil
}

// fakeUsers はテスト用のUserReader実装です。
type fakeUsers struct{ users []userentity.User }

func (f *fakeUsers) FindByIDs(ctx context.Context, ids []string) ([]userentity.User, error) {
	return f.users, nil
}

// recordingPublisher は発行されたイベントを記録します。
type recordingPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads []any
	err      error
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, payload)
	return p.err
}

func newTestUsecase(apps *memoryApplications, pub *recordingPublisher) *applicationUsecase {
	jobs := &fakeJobs{jobs: map[string]jobentity.Job{
		"j1": {ID: "j1", Title: "Go Dev", CompanyID: "c1"},
		"j2": {ID: "j2", Title: "SRE", CompanyID: "c2"},
	}}
	companies := &fakeCompanies{companies: []companyentity.Company{
		{ID: "c1", Name: "Acme"},
		{ID: "c2", Name: "Globex"},
	}}
	users := &fakeUsers{users: []userentity.User{
		{ID: "u1", Name: "Ada", Resume: "https://files/resumes/ada.pdf"},
	}}
	uc := NewApplicationUsecase(apps, jobs, companies, users, pub)
	uc.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	return uc
}

// TestApplicationUsecase_ApplyForJob は応募の作成と重複・存在しない求人の扱いを検証します。
func TestApplicationUsecase_ApplyForJob(t *testing.T) {
	t.Run("creates pending application for the job's company", func(t *testing.T) {
		apps := newMemoryApplications()
		pub := &recordingPublisher{}
		uc := newTestUsecase(apps, pub)

		app, err := uc.ApplyForJob(context.Background(), "u1", "j1")

		require.NoError(t, err)
		assert.NotEmpty(t, app.ID)
		assert.Equal(t, "u1", app.UserID)
		assert.Equal(t, "j1", app.JobID)
		assert.Equal(t, "c1", app.CompanyID)
		assert.Equal(t, entity.StatusPending, app.Status)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), app.Date)
		assert.Equal(t, []string{events.SubjectApplicationCreated}, pub.subjects)
	})

	t.Run("second apply is rejected and count stays one", func(t *testing.T) {
		apps := newMemoryApplications()
		uc := newTestUsecase(apps, &recordingPublisher{})

		_, err := uc.ApplyForJob(context.Background(), "u1", "j1")
		require.NoError(t, err)
		_, err = uc.ApplyForJob(context.Background(), "u1", "j1")

		assert.ErrorIs(t, err, ErrAlreadyApplied)
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
		counts, _ := apps.CountByJobIDs(context.Background(), []string{"j1"})
		assert.Equal(t, 1, counts["j1"])
	})

	t.Run("racing duplicate caught by the store", func(t *testing.T) {
		apps := newMemoryApplications()
		uc := newTestUsecase(apps, &recordingPublisher{})
		apps.beforeCreate = func() {
			apps.beforeCreate = nil
			_ = apps.Create(context.Background(), &entity.JobApplication{ID: "winner", UserID: "u1", JobID: "j1", CompanyID: "c1"})
		}

		_, err := uc.ApplyForJob(context.Background(), "u1", "j1")

		assert.ErrorIs(t, err, ErrAlreadyApplied)
		counts, _ := apps.CountByJobIDs(context.Background(), []string{"j1"})
		assert.Equal(t, 1, counts["j1"])
	})

	t.Run("nonexistent job creates nothing", func(t *testing.T) {
		apps := newMemoryApplications()
		pub := &recordingPublisher{}
		uc := newTestUsecase(apps, pub)

		_, err := uc.ApplyForJob(context.Background(), "u1", "missing")

		assert.ErrorIs(t, err, ErrJobNotFound)
		assert.Empty(t, apps.apps)
		assert.Empty(t, pub.subjects)
	})

	t.Run("missing job id", func(t *testing.T) {
		uc := newTestUsecase(newMemoryApplications(), &recordingPublisher{})
		_, err := uc.ApplyForJob(context.Background(), "u1", "  ")
		assert.ErrorIs(t, err, ErrJobIDRequired)
	})

	t.Run("job lookup failure is not reported as not found", func(t *testing.T) {
		apps := newMemoryApplications()
		dbErr := errors.New("db down")
		uc := NewApplicationUsecase(apps, &fakeJobs{err: dbErr}, &fakeCompanies{}, &fakeUsers{}, &recordingPublisher{})

		_, err := uc.ApplyForJob(context.Background(), "u1", "j1")

		assert.ErrorIs(t, err, dbErr)
		assert.Empty(t, apps.apps)
	})

	t.Run("existence check failure", func(t *testing.T) {
		apps := newMemoryApplications()
		apps.existsErr = errors.New("timeout")
		uc := newTestUsecase(apps, &recordingPublisher{})

		_, err := uc.ApplyForJob(context.Background(), "u1", "j1")

		assert.ErrorContains(t, err, "timeout")
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		apps := newMemoryApplications()
		uc := newTestUsecase(apps, &recordingPublisher{err: errors.New("nats down")})

		_, err := uc.ApplyForJob(context.Background(), "u1", "j1")

		require.NoError(t, err)
		assert.Len(t, apps.apps, 1)
	})
}

// TestApplicationUsecase_ListUserApplications は求人と企業が解決されることを検証します。
func TestApplicationUsecase_ListUserApplications(t *testing.T) {
	apps := newMemoryApplications()
	uc := newTestUsecase(apps, &recordingPublisher{})
	_, err := uc.ApplyForJob(context.Background(), "u1", "j1")
	require.NoError(t, err)
	_, err = uc.ApplyForJob(context.Background(), "u1", "j2")
	require.NoError(t, err)
	_, err = uc.ApplyForJob(context.Background(), "u2", "j1")
	require.NoError(t, err)

	got, err := uc.ListUserApplications(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, got, 2)
	byJob := map[string]UserApplication{}
	for _, a := range got {
		byJob[a.Application.JobID] = a
	}
	assert.Equal(t, "Go Dev", byJob["j1"].Job.Title)
	assert.Equal(t, "Acme", byJob["j1"].Company.Name)
	assert.Equal(t, "SRE", byJob["j2"].Job.Title)
	assert.Equal(t, "Globex", byJob["j2"].Company.Name)
}

// TestApplicationUsecase_ListCompanyApplicants は応募者と求人が解決され、他社宛ての応募が含まれないことを検証します。
func TestApplicationUsecase_ListCompanyApplicants(t *testing.T) {
	apps := newMemoryApplications()
	uc := newTestUsecase(apps, &recordingPublisher{})
	_, err := uc.ApplyForJob(context.Background(), "u1", "j1")
	require.NoError(t, err)
	_, err = uc.ApplyForJob(context.Background(), "u1", "j2")
	require.NoError(t, err)

	got, err := uc.ListCompanyApplicants(context.Background(), "c1")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].User.Name)
	assert.Equal(t, "https://files/resumes/ada.pdf", got[0].User.Resume)
	assert.Equal(t, "Go Dev", got[0].Job.Title)
}

// TestApplicationUsecase_ChangeStatus は所有企業のみが選考状態を変更できることを検証します。
func TestApplicationUsecase_ChangeStatus(t *testing.T) {
	setup := func(t *testing.T) (*applicationUsecase, *recordingPublisher, string) {
		apps := newMemoryApplications()
		pub := &recordingPublisher{}
		uc := newTestUsecase(apps, pub)
		app, err := uc.ApplyForJob(context.Background(), "u1", "j1")
		require.NoError(t, err)
		return uc, pub, app.ID
	}

	t.Run("owner accepts", func(t *testing.T) {
		uc, pub, id := setup(t)

		app, err := uc.ChangeStatus(context.Background(), "c1", id, entity.StatusAccepted)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusAccepted, app.Status)
		stored, err := uc.apps.FindByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAccepted, stored.Status)
		assert.Equal(t, events.SubjectApplicationStatusChanged, pub.subjects[len(pub.subjects)-1])
	})

	t.Run("other company gets not found", func(t *testing.T) {
		uc, _, id := setup(t)

		_, err := uc.ChangeStatus(context.Background(), "c2", id, entity.StatusRejected)

		assert.ErrorIs(t, err, ErrApplicationNotFound)
		stored, _ := uc.apps.FindByID(context.Background(), id)
		assert.Equal(t, entity.StatusPending, stored.Status)
	})

	t.Run("invalid status", func(t *testing.T) {
		uc, _, id := setup(t)
		_, err := uc.ChangeStatus(context.Background(), "c1", id, "Hired")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("missing application", func(t *testing.T) {
		uc, _, _ := setup(t)
		_, err := uc.ChangeStatus(context.Background(), "c1", "nope", entity.StatusRejected)
		assert.ErrorIs(t, err, ErrApplicationNotFound)
	})
}
