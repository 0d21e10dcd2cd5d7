// Package handler はcompanyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard_backend/internal/feature/company/domain/entity"
	"jobboard_backend/internal/feature/company/transport/http/dto"
	"jobboard_backend/internal/feature/company/usecase"
	"jobboard_backend/internal/platform/apperror"
	jwtmw "jobboard_backend/internal/platform/jwt"
)

// CompanyUsecase は企業アカウント操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type CompanyUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.Company, string, error)
	Login(ctx context.Context, email, password string) (*entity.Company, string, error)
	GetCompany(ctx context.Context, id string) (*entity.Company, error)
}

// CompanyHandler は企業アカウントのHTTPリクエストを処理します。
type CompanyHandler struct {
	companies CompanyUsecase
}

// NewCompanyHandler はCompanyHandlerの新しいインスタンスを生成します。
func NewCompanyHandler(companies CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

// Register は企業登録APIエンドポイントを処理します。
// - multipartの name / email / password / image を受け取る
// - 必須項目やロゴの欠落は400、メール重複は409を返却
// - 成功時は企業情報とトークン付きで201を返却
func (h *CompanyHandler) Register(c *gin.Context) {
	in := usecase.RegisterInput{
		Name:     c.PostForm("name"),
		Email:    c.PostForm("email"),
		Password: c.PostForm("password"),
	}

	if fh, err := c.FormFile("image"); err == nil {
		f, err := fh.Open()
		if err != nil {
			apperror.Respond(c, apperror.Internal(err))
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				slog.Warn("failed to close logo file", "error", err)
			}
		}()
		in.Logo = f
		in.LogoFilename = fh.Filename
		in.LogoContentType = fh.Header.Get("Content-Type")
	}

	company, token, err := h.companies.Register(c.Request.Context(), in)
	if err != nil {
		slog.Warn("company register failed", "error", err, "email", in.Email, "remote_addr", c.ClientIP())
		apperror.Respond(c, err)
		return
	}

	slog.Info("company register successful", "company_id", company.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Company: dto.NewCompanyResponse(company),
		Token:   token,
	})
}

// Login は企業ログインAPIエンドポイントを処理します。
// 認証失敗時はメールアドレスの存在有無を区別せず401を返却します。
func (h *CompanyHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		apperror.Respond(c, apperror.Validation("Invalid email or password"))
		return
	}

	company, token, err := h.companies.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("company login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		apperror.Respond(c, err)
		return
	}

	slog.Info("company login successful", "company_id", company.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Company: dto.NewCompanyResponse(company),
		Token:   token,
	})
}

// GetCompany はトークンで認証された企業の情報を返します。
func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companies.GetCompany(c.Request.Context(), jwtmw.CompanyID(c))
	if err != nil {
		apperror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.GetCompanyResponse{Success: true, Company: dto.NewCompanyResponse(company)})
}
