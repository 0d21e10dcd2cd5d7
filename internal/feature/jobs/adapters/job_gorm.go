// Package adapters はjobsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
)

// jobGorm はJobRepositoryインターフェースのGORM実装です。
type jobGorm struct {
	db *gorm.DB
}

var _ usecase.JobRepository = (*jobGorm)(nil)

// NewJobGorm は指定されたgorm.DB接続でjobGormの新しいインスタンスを生成します。
func NewJobGorm(db *gorm.DB) *jobGorm {
	return &jobGorm{db: db}
}

// Create は求人をデータベースに追加します。
func (r *jobGorm) Create(ctx context.Context, job *entity.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// FindByID はIDで求人を取得します。
func (r *jobGorm) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	var job entity.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindByIDs は指定されたIDの求人をまとめて取得します。
func (r *jobGorm) FindByIDs(ctx context.Context, ids []string) ([]entity.Job, error) {
	if len(ids) == 0 {
		return []entity.Job{}, nil
	}
	var jobs []entity.Job
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListVisible は公開中の求人を掲載日の新しい順に返します。
func (r *jobGorm) ListVisible(ctx context.Context) ([]entity.Job, error) {
	var jobs []entity.Job
	if err := r.db.WithContext(ctx).Where("visible = ?", true).Order("date DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListByCompany は企業の求人を掲載日の新しい順に返します。
func (r *jobGorm) ListByCompany(ctx context.Context, companyID string) ([]entity.Job, error) {
	var jobs []entity.Job
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("date DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// SetVisible は求人の公開状態を更新します。
func (r *jobGorm) SetVisible(ctx context.Context, id string, visible bool) error {
	res := r.db.WithContext(ctx).Model(&entity.Job{}).Where("id = ?", id).Update("visible", visible)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrJobNotFound
	}
	return nil
}
