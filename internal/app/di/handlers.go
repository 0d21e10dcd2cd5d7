package di

import (
	"jobboard_backend/internal/app/router"
	apphandler "jobboard_backend/internal/feature/applications/transport/handler"
	appusecase "jobboard_backend/internal/feature/applications/usecase"
	companyhandler "jobboard_backend/internal/feature/company/transport/handler"
	companyusecase "jobboard_backend/internal/feature/company/usecase"
	identityhandler "jobboard_backend/internal/feature/identity/transport/handler"
	identityusecase "jobboard_backend/internal/feature/identity/usecase"
	jobhandler "jobboard_backend/internal/feature/jobs/transport/handler"
	jobusecase "jobboard_backend/internal/feature/jobs/usecase"
	userhandler "jobboard_backend/internal/feature/users/transport/handler"
	userusecase "jobboard_backend/internal/feature/users/usecase"
	platformhandler "jobboard_backend/internal/platform/http/handler"
)

// Deps はハンドラーの組み立てに必要な依存です。
type Deps struct {
	Repositories *Repositories
	// Jobs はキャッシュで包んだ求人リポジトリです。nilの場合はRepositories.Jobsを使います。
	Jobs      jobusecase.JobRepository
	Uploader  Uploader
	Publisher Publisher
	Tokens    companyusecase.TokenGenerator
	Verifier  identityhandler.EventVerifier
	Checks    map[string]platformhandler.Check
}

// NewHandlers はユースケースとハンドラーを組み立てます。
func NewHandlers(d Deps) router.Handlers {
	repos := d.Repositories
	jobs := d.Jobs
	if jobs == nil {
		jobs = repos.Jobs
	}

	// Usecase
	reconciler := identityusecase.NewReconciler(repos.Users, d.Publisher)
	userUC := userusecase.NewUserUsecase(repos.Users, d.Uploader)
	companyUC := companyusecase.NewCompanyUsecase(repos.Companies, d.Tokens, d.Uploader)
	jobUC := jobusecase.NewJobUsecase(jobs, repos.Companies, repos.Applications)
	appUC := appusecase.NewApplicationUsecase(repos.Applications, jobs, repos.Companies, repos.Users, d.Publisher)

	// Handler
	return router.Handlers{
		Health:       platformhandler.NewHealthHandler(d.Checks),
		Webhook:      identityhandler.NewWebhookHandler(d.Verifier, reconciler),
		Users:        userhandler.NewUserHandler(userUC),
		Companies:    companyhandler.NewCompanyHandler(companyUC),
		Jobs:         jobhandler.NewJobHandler(jobUC),
		Applications: apphandler.NewApplicationHandler(appUC),
	}
}
