// Package router はHTTPルーティングを組み立てます。
package router

import (
	"crypto/rsa"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apphandler "jobboard_backend/internal/feature/applications/transport/handler"
	companyhandler "jobboard_backend/internal/feature/company/transport/handler"
	identityhandler "jobboard_backend/internal/feature/identity/transport/handler"
	jobhandler "jobboard_backend/internal/feature/jobs/transport/handler"
	userhandler "jobboard_backend/internal/feature/users/transport/handler"
	platformhandler "jobboard_backend/internal/platform/http/handler"
	jwtmw "jobboard_backend/internal/platform/jwt"
	"jobboard_backend/internal/platform/logger"
	"jobboard_backend/internal/shared/ratelimiter"
)

// Handlers はルーターに登録するハンドラーです。
type Handlers struct {
	Health       *platformhandler.HealthHandler
	Webhook      *identityhandler.WebhookHandler
	Users        *userhandler.UserHandler
	Companies    *companyhandler.CompanyHandler
	Jobs         *jobhandler.JobHandler
	Applications *apphandler.ApplicationHandler
}

// Options は認証とミドルウェアの設定です。
type Options struct {
	CORSOrigins []string
	// TrustedProxies は X-Forwarded-For を信頼するプロキシです。nilの場合は接続元アドレスのみをクライアントIPとします。
	TrustedProxies []string
	// CompanySecret は企業トークンの署名鍵です。
	CompanySecret string
	// UserKey はユーザーのBearerトークンを検証する公開鍵です。
	UserKey *rsa.PublicKey
	// Limiter はWebhookと応募に適用するレートリミッターです。nilの場合は制限しません。
	Limiter *ratelimiter.KeyedLimiter
	// UploadDir が設定されている場合、/uploads で静的配信します。
	UploadDir string
}

// NewRouter はルーターを生成します。
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		slog.Error("invalid trusted proxies, ignoring forwarded headers", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), logger.RequestID(), logger.Logging())

	corsCfg := cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", jwtmw.HeaderCompanyToken, logger.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", logger.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	// オリジン未指定の場合は全許可（資格情報は送らない）
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	var limit, limitPerUser gin.HandlerFunc = passThrough, passThrough
	if opts.Limiter != nil {
		limit = ratelimiter.Middleware(opts.Limiter)
		// 応募は認証済みユーザー単位で制限する
		limitPerUser = ratelimiter.KeyedMiddleware(opts.Limiter, func(c *gin.Context) string {
			if id := jwtmw.UserID(c); id != "" {
				return "user:" + id
			}
			return ""
		})
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)

	if opts.UploadDir != "" {
		r.Static("/uploads", opts.UploadDir)
	}

	// IDプロバイダーからのアカウント同期
	r.POST("/webhooks/clerk", limit, h.Webhook.Clerk)

	api := r.Group("/api")

	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.Jobs.ListJobs)
		jobs.GET("/:id", h.Jobs.GetJob)
	}

	// ユーザー向け（Bearerトークン必須）
	users := api.Group("/users", jwtmw.UserAuthRequired(opts.UserKey))
	{
		users.GET("/user", h.Users.GetUser)
		users.POST("/apply", limitPerUser, h.Applications.Apply)
		users.GET("/applications", h.Applications.ListUserApplications)
		users.POST("/update-resume", h.Users.UpdateResume)
	}

	// 企業向け
	company := api.Group("/company")
	{
		company.POST("/register", h.Companies.Register)
		company.POST("/login", h.Companies.Login)
	}
	recruiter := company.Group("", jwtmw.CompanyAuthRequired(opts.CompanySecret))
	{
		recruiter.GET("/company", h.Companies.GetCompany)
		recruiter.POST("/post-job", h.Jobs.PostJob)
		recruiter.GET("/applicants", h.Applications.ListCompanyApplicants)
		recruiter.GET("/list-jobs", h.Jobs.ListCompanyJobs)
		recruiter.POST("/change-status", h.Applications.ChangeStatus)
		// 既存クライアントが使うパス名をそのまま受け付ける
		recruiter.POST("/change-visiblity", h.Jobs.ChangeVisibility)
		recruiter.POST("/change-visibility", h.Jobs.ChangeVisibility)
	}

	return r
}

func passThrough(c *gin.Context) { c.Next() }
