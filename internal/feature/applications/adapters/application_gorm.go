// Package adapters はapplicationsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"jobboard_backend/internal/feature/applications/domain/entity"
	"jobboard_backend/internal/feature/applications/usecase"
	"jobboard_backend/internal/platform/db"
)

// applicationGorm はApplicationRepositoryインターフェースのGORM実装です。
type applicationGorm struct {
	db *gorm.DB
}

var _ usecase.ApplicationRepository = (*applicationGorm)(nil)

// NewApplicationGorm は指定されたgorm.DB接続でapplicationGormの新しいインスタンスを生成します。
func NewApplicationGorm(db *gorm.DB) *applicationGorm {
	return &applicationGorm{db: db}
}

// Create は応募を追加します。idx_user_job の一意制約違反はusecase.ErrAlreadyAppliedに変換します。
func (r *applicationGorm) Create(ctx context.Context, app *entity.JobApplication) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if db.IsDuplicateKey(err) {
			return usecase.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

// Exists はユーザーが求人に応募済みかどうかを返します。
func (r *applicationGorm) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entity.JobApplication{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID はIDで応募を取得します。
func (r *applicationGorm) FindByID(ctx context.Context, id string) (*entity.JobApplication, error) {
	var app entity.JobApplication
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// ListByUser はユーザーの応募を新しい順に返します。
func (r *applicationGorm) ListByUser(ctx context.Context, userID string) ([]entity.JobApplication, error) {
	return r.list(ctx, "user_id = ?", userID)
}

// ListByCompany は企業宛ての応募を新しい順に返します。
func (r *applicationGorm) ListByCompany(ctx context.Context, companyID string) ([]entity.JobApplication, error) {
	return r.list(ctx, "company_id = ?", companyID)
}

func (r *applicationGorm) list(ctx context.Context, query string, arg any) ([]entity.JobApplication, error) {
	var apps []entity.JobApplication
	if err := r.db.WithContext(ctx).Where(query, arg).Order("date DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatus は選考状態を更新します。
func (r *applicationGorm) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	res := r.db.WithContext(ctx).Model(&entity.JobApplication{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrApplicationNotFound
	}
	return nil
}

// CountByJobIDs は求人ごとの応募数を返します。応募の無い求人はマップに含まれません。
func (r *applicationGorm) CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		JobID string
		Count int
	}
	err := r.db.WithContext(ctx).Model(&entity.JobApplication{}).
		Select("job_id, COUNT(*) AS count").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.JobID] = row.Count
	}
	return counts, nil
}
