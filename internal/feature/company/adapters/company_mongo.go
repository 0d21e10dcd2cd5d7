package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"jobboard_backend/internal/feature/company/domain/entity"
	"jobboard_backend/internal/feature/company/usecase"
	"jobboard_backend/internal/platform/mongodb"
)

// companyDocument はcompaniesコレクションのドキュメントです。
type companyDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Image     string    `bson:"image"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d companyDocument) toEntity() entity.Company {
	return entity.Company{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		Password:  d.Password,
		Image:     d.Image,
		CreatedAt: d.CreatedAt,
	}
}

// companyMongo はCompanyRepositoryインターフェースのMongoDB実装です。
type companyMongo struct {
	coll *mongo.Collection
}

var _ usecase.CompanyRepository = (*companyMongo)(nil)

// NewCompanyMongo はcompanyMongoの新しいインスタンスを生成します。
func NewCompanyMongo(db *mongo.Database) *companyMongo {
	return &companyMongo{coll: db.Collection(mongodb.CollectionCompanies)}
}

// Create は企業ドキュメントを挿入します。
func (r *companyMongo) Create(ctx context.Context, c *entity.Company) error {
	doc := companyDocument{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Password:  c.Password,
		Image:     c.Image,
		CreatedAt: c.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// FindByEmail はメールアドレスで企業を取得します。
func (r *companyMongo) FindByEmail(ctx context.Context, email string) (*entity.Company, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByID はIDで企業を取得します。
func (r *companyMongo) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *companyMongo) findOne(ctx context.Context, filter bson.M) (*entity.Company, error) {
	var doc companyDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrCompanyNotFound
		}
		return nil, err
	}
	c := doc.toEntity()
	return &c, nil
}

// FindByIDs は指定されたIDの企業をまとめて取得します。
func (r *companyMongo) FindByIDs(ctx context.Context, ids []string) ([]entity.Company, error) {
	if len(ids) == 0 {
		return []entity.Company{}, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []companyDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	companies := make([]entity.Company, 0, len(docs))
	for _, d := range docs {
		companies = append(companies, d.toEntity())
	}
	return companies, nil
}
