package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
	"jobboard_backend/internal/platform/mongodb"
)

// jobDocument はjobsコレクションのドキュメントです。
type jobDocument struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Category    string    `bson:"category"`
	Location    string    `bson:"location"`
	Level       string    `bson:"level"`
	Salary      int       `bson:"salary"`
	CompanyID   string    `bson:"companyId"`
	Visible     bool      `bson:"visible"`
	Date        time.Time `bson:"date"`
}

func toJobDocument(j *entity.Job) jobDocument {
	return jobDocument{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Category:    j.Category,
		Location:    j.Location,
		Level:       j.Level,
		Salary:      j.Salary,
		CompanyID:   j.CompanyID,
		Visible:     j.Visible,
		Date:        j.Date,
	}
}

func (d jobDocument) toEntity() entity.Job {
	return entity.Job{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Location:    d.Location,
		Level:       d.Level,
		Salary:      d.Salary,
		CompanyID:   d.CompanyID,
		Visible:     d.Visible,
		Date:        d.Date,
	}
}

// jobMongo はJobRepositoryインターフェースのMongoDB実装です。
type jobMongo struct {
	coll *mongo.Collection
}

var _ usecase.JobRepository = (*jobMongo)(nil)

// NewJobMongo はjobMongoの新しいインスタンスを生成します。
func NewJobMongo(db *mongo.Database) *jobMongo {
	return &jobMongo{coll: db.Collection(mongodb.CollectionJobs)}
}

// Create は求人ドキュメントを挿入します。
func (r *jobMongo) Create(ctx context.Context, job *entity.Job) error {
	_, err := r.coll.InsertOne(ctx, toJobDocument(job))
	return err
}

// FindByID はIDで求人を取得します。
func (r *jobMongo) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	var doc jobDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrJobNotFound
		}
		return nil, err
	}
	j := doc.toEntity()
	return &j, nil
}

// FindByIDs は指定されたIDの求人をまとめて取得します。
func (r *jobMongo) FindByIDs(ctx context.Context, ids []string) ([]entity.Job, error) {
	if len(ids) == 0 {
		return []entity.Job{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// ListVisible は公開中の求人を掲載日の新しい順に返します。
func (r *jobMongo) ListVisible(ctx context.Context) ([]entity.Job, error) {
	return r.find(ctx, bson.M{"visible": true})
}

// ListByCompany は企業の求人を掲載日の新しい順に返します。
func (r *jobMongo) ListByCompany(ctx context.Context, companyID string) ([]entity.Job, error) {
	return r.find(ctx, bson.M{"companyId": companyID})
}

func (r *jobMongo) find(ctx context.Context, filter bson.M) ([]entity.Job, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []jobDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	jobs := make([]entity.Job, 0, len(docs))
	for _, d := range docs {
		jobs = append(jobs, d.toEntity())
	}
	return jobs, nil
}

// SetVisible は求人の公開状態を更新します。
func (r *jobMongo) SetVisible(ctx context.Context, id string, visible bool) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"visible": visible}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrJobNotFound
	}
	return nil
}
