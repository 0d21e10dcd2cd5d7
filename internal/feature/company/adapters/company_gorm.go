// Package adapters はcompanyフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobboard_backend/internal/feature/company/domain/entity"
	"jobboard_backend/internal/feature/company/usecase"
	"jobboard_backend/internal/platform/db"
)

// companyGorm はCompanyRepositoryインターフェースのGORM実装です。
type companyGorm struct {
	db *gorm.DB
}

var _ usecase.CompanyRepository = (*companyGorm)(nil)

// NewCompanyGorm は指定されたgorm.DB接続でcompanyGormの新しいインスタンスを生成します。
func NewCompanyGorm(db *gorm.DB) *companyGorm {
	return &companyGorm{db: db}
}

// Create は企業をデータベースに追加します。
// メールアドレスが重複する場合、usecase.ErrEmailAlreadyExistsを返します。
func (r *companyGorm) Create(ctx context.Context, c *entity.Company) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスで企業を取得します。
func (r *companyGorm) FindByEmail(ctx context.Context, email string) (*entity.Company, error) {
	return r.first(ctx, "email = ?", email)
}

// FindByID はIDで企業を取得します。
func (r *companyGorm) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *companyGorm) first(ctx context.Context, query string, arg any) (*entity.Company, error) {
	var c entity.Company
	if err := r.db.WithContext(ctx).Where(query, arg).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByIDs は指定されたIDの企業をまとめて取得します。
func (r *companyGorm) FindByIDs(ctx context.Context, ids []string) ([]entity.Company, error) {
	if len(ids) == 0 {
		return []entity.Company{}, nil
	}
	var companies []entity.Company
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
