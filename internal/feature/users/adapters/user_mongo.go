package adapters

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"jobboard_backend/internal/feature/users/domain/entity"
	"jobboard_backend/internal/feature/users/usecase"
	"jobboard_backend/internal/platform/mongodb"
)

// userDocument はusersコレクションのドキュメントです。
type userDocument struct {
	ID     string `bson:"_id"`
	Email  string `bson:"email"`
	Name   string `bson:"name"`
	Image  string `bson:"image"`
	Resume string `bson:"resume"`
}

func toUserDocument(u *entity.User) userDocument {
	return userDocument{ID: u.ID, Email: u.Email, Name: u.Name, Image: u.Image, Resume: u.Resume}
}

func (d userDocument) toEntity() entity.User {
	return entity.User{ID: d.ID, Email: d.Email, Name: d.Name, Image: d.Image, Resume: d.Resume}
}

// userMongo はUserRepositoryインターフェースのMongoDB実装です。
type userMongo struct {
	coll *mongo.Collection
}

var _ usecase.UserRepository = (*userMongo)(nil)

// NewUserMongo はuserMongoの新しいインスタンスを生成します。
func NewUserMongo(db *mongo.Database) *userMongo {
	return &userMongo{coll: db.Collection(mongodb.CollectionUsers)}
}

// Create はユーザードキュメントを挿入します。
func (r *userMongo) Create(ctx context.Context, u *entity.User) error {
	if _, err := r.coll.InsertOne(ctx, toUserDocument(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

// Update はメールアドレス・名前・画像を更新します。
func (r *userMongo) Update(ctx context.Context, u *entity.User) error {
	set := bson.M{"name": u.Name, "image": u.Image}
	if u.Email != "" {
		set["email"] = u.Email
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": u.ID}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrUserAlreadyExists
		}
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Delete はユーザードキュメントを削除します。
func (r *userMongo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// FindByID はIDでユーザーを取得します。
func (r *userMongo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var doc userDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	u := doc.toEntity()
	return &u, nil
}

// FindByIDs は指定されたIDのユーザーをまとめて取得します。
func (r *userMongo) FindByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return []entity.User{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]entity.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toEntity())
	}
	return users, nil
}

// UpdateResume はレジュメURLを更新します。
func (r *userMongo) UpdateResume(ctx context.Context, id, resumeURL string) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"resume": resumeURL}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}
