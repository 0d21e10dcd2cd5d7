// Package usecase はcompanyフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"jobboard_backend/internal/feature/company/domain/entity"
	"jobboard_backend/internal/platform/storage"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// logoFolder はロゴ画像を保存するフォルダです。
	logoFolder = "logos"
)

// CompanyRepository は企業エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CompanyRepository interface {
	// Create は新しい企業を保存します。メールアドレスが重複する場合はErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, c *entity.Company) error
	// FindByEmail はメールアドレスで企業を取得します。存在しない場合はErrCompanyNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.Company, error)
	// FindByID はIDで企業を取得します。存在しない場合はErrCompanyNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Company, error)
	// FindByIDs は指定されたIDの企業をまとめて取得します。存在しないIDは無視します。
	FindByIDs(ctx context.Context, ids []string) ([]entity.Company, error)
}

// TokenGenerator は企業トークンを発行します。
type TokenGenerator interface {
	GenerateToken(companyID string) (string, error)
}

// FileUploader はアップロードファイルを外部ストレージに保存し、公開URLを返します。
type FileUploader interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// RegisterInput は企業登録の入力です。
type RegisterInput struct {
	Name     string
	Email    string
	Password string

	Logo            io.Reader
	LogoFilename    string
	LogoContentType string
}

// companyUsecase は企業アカウントの登録・ログイン・参照を扱います。
type companyUsecase struct {
	companies CompanyRepository
	tokens    TokenGenerator
	uploader  FileUploader
	now       func() time.Time
}

// NewCompanyUsecase はcompanyUsecaseの新しいインスタンスを生成します。
func NewCompanyUsecase(companies CompanyRepository, tokens TokenGenerator, uploader FileUploader) *companyUsecase {
	return &companyUsecase{
		companies: companies,
		tokens:    tokens,
		uploader:  uploader,
		now:       time.Now,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register は企業を登録し、登録した企業とトークンを返します。
// ロゴを保存する前にメールアドレスの重複を確認しますが、最終的な一意性はストアの制約で保証されます。
func (u *companyUsecase) Register(ctx context.Context, in RegisterInput) (*entity.Company, string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, "", ErrMissingDetails
	}
	if in.Logo == nil {
		return nil, "", ErrLogoRequired
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, "", err
	}

	if _, err := u.companies.FindByEmail(ctx, in.Email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if err != ErrCompanyNotFound {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	logoURL, err := u.uploader.Upload(ctx, storage.ObjectKey(logoFolder, in.LogoFilename), in.Logo, in.LogoContentType)
	if err != nil {
		return nil, "", fmt.Errorf("upload logo: %w", err)
	}

	company := &entity.Company{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Password:  string(hashed),
		Image:     logoURL,
		CreatedAt: u.now(),
	}
	if err := u.companies.Create(ctx, company); err != nil {
		return nil, "", err
	}

	token, err := u.tokens.GenerateToken(company.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("company registered", "company_id", company.ID)
	return company, token, nil
}

// Login は企業を認証し、成功時に企業とトークンを返します。
// タイミング攻撃を防止するため、企業が存在しない場合でもbcrypt比較を実行します。
func (u *companyUsecase) Login(ctx context.Context, email, password string) (*entity.Company, string, error) {
	company, err := u.companies.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil && err != ErrCompanyNotFound {
		return nil, "", err
	}

	// 企業が存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = company.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.tokens.GenerateToken(company.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return company, token, nil
}

// GetCompany は企業を取得します。
func (u *companyUsecase) GetCompany(ctx context.Context, id string) (*entity.Company, error) {
	return u.companies.FindByID(ctx, id)
}
