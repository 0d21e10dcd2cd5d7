// Package usecase はIDプロバイダーのアカウントイベントをユーザーレコードに反映します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobboard_backend/internal/feature/identity/domain/entity"
	userentity "jobboard_backend/internal/feature/users/domain/entity"
	"jobboard_backend/internal/platform/apperror"
	"jobboard_backend/internal/platform/events"
)

// AccountStore はイベントの反映先となるユーザーストアです。
// 重複作成は衝突エラー、存在しないIDの更新・削除はnot foundエラーを返すこと。
type AccountStore interface {
	Create(ctx context.Context, u *userentity.User) error
	Update(ctx context.Context, u *userentity.User) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher はドメインイベントを外部に通知します。
type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// Outcome はイベント反映の結果です。
type Outcome struct {
	// Created は新しいユーザーが作成された場合にtrueです。
	Created bool
	Message string
}

// createdAccount は user.created の必須項目です。
// メールアドレスの書式はIDプロバイダー側の値をそのまま受け入れます。
type createdAccount struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// accountRef は user.updated / user.deleted の必須項目です。
type accountRef struct {
	ID string `json:"id" validate:"required"`
}

// accountEvent は発行するアカウントイベントのペイロードです。
type accountEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
}

// reconciler は検証済みのイベントをユーザーストアに適用します。
type reconciler struct {
	store     AccountStore
	publisher EventPublisher
	validate  *validator.Validate
}

// NewReconciler はreconcilerの新しいインスタンスを生成します。
func NewReconciler(store AccountStore, publisher EventPublisher) *reconciler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &reconciler{store: store, publisher: publisher, validate: v}
}

// Reconcile はイベント種別に応じてユーザーを作成・更新・削除します。
// 同じIDの user.created を再度受け取った場合は上書きせず衝突エラーを返します。
func (r *reconciler) Reconcile(ctx context.Context, evt entity.Event) (Outcome, error) {
	switch evt.Type {
	case entity.EventUserCreated:
		return r.create(ctx, evt.Data)
	case entity.EventUserUpdated:
		return r.update(ctx, evt.Data)
	case entity.EventUserDeleted:
		return r.delete(ctx, evt.Data)
	default:
		slog.Info("unhandled webhook event", "type", evt.Type)
		return Outcome{}, ErrUnhandledEvent
	}
}

func (r *reconciler) create(ctx context.Context, data entity.EventData) (Outcome, error) {
	in := createdAccount{ID: data.ID, Email: data.PrimaryEmail()}
	if err := r.check(entity.EventUserCreated, in); err != nil {
		return Outcome{}, err
	}

	u := &userentity.User{
		ID:     data.ID,
		Email:  in.Email,
		Name:   data.FullName(),
		Image:  data.ImageURL,
		Resume: "",
	}
	if err := r.store.Create(ctx, u); err != nil {
		return Outcome{}, err
	}

	slog.Info("user created from webhook", "user_id", u.ID)
	r.publish(ctx, events.SubjectAccountCreated, accountEvent{UserID: u.ID, Email: u.Email})
	return Outcome{Created: true, Message: "User created"}, nil
}

func (r *reconciler) update(ctx context.Context, data entity.EventData) (Outcome, error) {
	if err := r.check(entity.EventUserUpdated, accountRef{ID: data.ID}); err != nil {
		return Outcome{}, err
	}

	u := &userentity.User{
		ID:    data.ID,
		Email: data.PrimaryEmail(),
		Name:  data.FullName(),
		Image: data.ImageURL,
	}
	if err := r.store.Update(ctx, u); err != nil {
		return Outcome{}, err
	}

	slog.Info("user updated from webhook", "user_id", u.ID)
	r.publish(ctx, events.SubjectAccountUpdated, accountEvent{UserID: u.ID, Email: u.Email})
	return Outcome{Message: "User updated"}, nil
}

func (r *reconciler) delete(ctx context.Context, data entity.EventData) (Outcome, error) {
	if err := r.check(entity.EventUserDeleted, accountRef{ID: data.ID}); err != nil {
		return Outcome{}, err
	}

	if err := r.store.Delete(ctx, data.ID); err != nil {
		return Outcome{}, err
	}

	slog.Info("user deleted from webhook", "user_id", data.ID)
	r.publish(ctx, events.SubjectAccountDeleted, accountEvent{UserID: data.ID})
	return Outcome{Message: "User deleted"}, nil
}

// check は必須項目を検証し、違反があればバリデーションエラーを返します。
func (r *reconciler) check(eventType string, in any) error {
	err := r.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.Internal(err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperror.Validation(fmt.Sprintf("Invalid %s payload: %s", eventType, strings.Join(fields, ", ")))
}

func (r *reconciler) publish(ctx context.Context, subject string, payload any) {
	if err := r.publisher.Publish(ctx, subject, payload); err != nil {
		slog.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
