// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"io"

	"jobboard_backend/internal/feature/users/domain/entity"
	"jobboard_backend/internal/platform/storage"
)

// resumeFolder はレジュメを保存するフォルダです。
const resumeFolder = "resumes"

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを保存します。IDまたはメールアドレスが重複する場合はErrUserAlreadyExistsを返します。
	Create(ctx context.Context, u *entity.User) error
	// Update はEmail・Name・Imageを更新します。Resumeは変更しません。
	// Emailが空の場合は既存の値を保持します。存在しない場合はErrUserNotFoundを返します。
	Update(ctx context.Context, u *entity.User) error
	// Delete はユーザーを削除します。存在しない場合はErrUserNotFoundを返します。
	Delete(ctx context.Context, id string) error
	// FindByID はIDでユーザーを取得します。存在しない場合はErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByIDs は指定されたIDのユーザーをまとめて取得します。存在しないIDは無視します。
	FindByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	// UpdateResume はレジュメURLを更新します。存在しない場合はErrUserNotFoundを返します。
	UpdateResume(ctx context.Context, id, resumeURL string) error
}

// FileUploader はアップロードファイルを外部ストレージに保存し、公開URLを返します。
type FileUploader interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// userUsecase はユーザープロフィールの参照とレジュメ更新を扱います。
type userUsecase struct {
	repo     UserRepository
	uploader FileUploader
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(repo UserRepository, uploader FileUploader) *userUsecase {
	return &userUsecase{repo: repo, uploader: uploader}
}

// GetUser は認証済みユーザーのプロフィールを返します。
func (u *userUsecase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	return u.repo.FindByID(ctx, id)
}

// UpdateResume はレジュメをアップロードし、ユーザーのレジュメURLを更新します。
// ユーザーの存在を先に確認するため、存在しないユーザーのファイルは保存されません。
func (u *userUsecase) UpdateResume(ctx context.Context, id, filename string, r io.Reader, contentType string) (*entity.User, error) {
	if r == nil {
		return nil, ErrResumeRequired
	}

	user, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := u.uploader.Upload(ctx, storage.ObjectKey(resumeFolder, filename), r, contentType)
	if err != nil {
		return nil, fmt.Errorf("upload resume: %w", err)
	}

	if err := u.repo.UpdateResume(ctx, id, url); err != nil {
		return nil, err
	}
	user.Resume = url
	return user, nil
}
