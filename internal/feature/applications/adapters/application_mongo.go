package adapters

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"jobboard_backend/internal/feature/applications/domain/entity"
	"jobboard_backend/internal/feature/applications/usecase"
	"jobboard_backend/internal/platform/mongodb"
)

// applicationDocument はjobapplicationsコレクションのドキュメントです。
type applicationDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"userId"`
	JobID     string    `bson:"jobId"`
	CompanyID string    `bson:"companyId"`
	Status    string    `bson:"status"`
	Date      time.Time `bson:"date"`
}

func (d applicationDocument) toEntity() entity.JobApplication {
	return entity.JobApplication{
		ID:        d.ID,
		UserID:    d.UserID,
		JobID:     d.JobID,
		CompanyID: d.CompanyID,
		Status:    entity.Status(d.Status),
		Date:      d.Date,
	}
}

// applicationMongo はApplicationRepositoryインターフェースのMongoDB実装です。
// (userId, jobId) の一意インデックスは mongodb.EnsureIndexes で作成されます。
type applicationMongo struct {
	coll *mongo.Collection
}

var _ usecase.ApplicationRepository = (*applicationMongo)(nil)

// NewApplicationMongo はapplicationMongoの新しいインスタンスを生成します。
func NewApplicationMongo(db *mongo.Database) *applicationMongo {
	return &applicationMongo{coll: db.Collection(mongodb.CollectionApplications)}
}

// Create は応募ドキュメントを挿入します。
func (r *applicationMongo) Create(ctx context.Context, app *entity.JobApplication) error {
	doc := applicationDocument{
		ID:        app.ID,
		UserID:    app.UserID,
		JobID:     app.JobID,
		CompanyID: app.CompanyID,
		Status:    string(app.Status),
		Date:      app.Date,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usecase.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

// Exists はユーザーが求人に応募済みかどうかを返します。
func (r *applicationMongo) Exists(ctx context.Context, userID, jobID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"userId": userID, "jobId": jobID}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindByID はIDで応募を取得します。
func (r *applicationMongo) FindByID(ctx context.Context, id string) (*entity.JobApplication, error) {
	var doc applicationDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrApplicationNotFound
		}
		return nil, err
	}
	app := doc.toEntity()
	return &app, nil
}

// ListByUser はユーザーの応募を新しい順に返します。
func (r *applicationMongo) ListByUser(ctx context.Context, userID string) ([]entity.JobApplication, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

// ListByCompany は企業宛ての応募を新しい順に返します。
func (r *applicationMongo) ListByCompany(ctx context.Context, companyID string) ([]entity.JobApplication, error) {
	return r.find(ctx, bson.M{"companyId": companyID})
}

func (r *applicationMongo) find(ctx context.Context, filter bson.M) ([]entity.JobApplication, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []applicationDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	apps := make([]entity.JobApplication, 0, len(docs))
	for _, d := range docs {
		apps = append(apps, d.toEntity())
	}
	return apps, nil
}

// UpdateStatus は選考状態を更新します。
func (r *applicationMongo) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return usecase.ErrApplicationNotFound
	}
	return nil
}

// CountByJobIDs は求人ごとの応募数を集計パイプラインで返します。
func (r *applicationMongo) CountByJobIDs(ctx context.Context, jobIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"jobId": bson.M{"$in": jobIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$jobId", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		JobID string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.JobID] = row.Count
	}
	return counts, nil
}
