// Package mongodb はドキュメントストア（MongoDB）への接続とインデックス作成を提供します。
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// コレクション名。
const (
	CollectionUsers        = "users"
	CollectionCompanies    = "companies"
	CollectionJobs         = "jobs"
	CollectionApplications = "jobapplications"
)

// Config はMongoDBの接続設定です。
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// LoadConfigFromEnv は環境変数からMongoDBの接続設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		URI:      os.Getenv("MONGODB_URI"),
		Database: os.Getenv("MONGODB_DATABASE"),
		Timeout:  10 * time.Second,
	}
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "job-portal"
	}
	return cfg
}

// Connect はMongoDBに接続し、Pingで疎通を確認します。
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	slog.Info("MongoDB connection successful", "database", cfg.Database)
	return client, nil
}

// EnsureIndexes はストアが一意性を保証するためのインデックスを作成します。
// 応募は (userId, jobId) の組、企業はメールアドレスで一意です。
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{
			collection: CollectionApplications,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "jobId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("user_job_unique"),
			},
		},
		{
			collection: CollectionApplications,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "companyId", Value: 1}},
			},
		},
		{
			collection: CollectionCompanies,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_unique"),
			},
		},
		{
			collection: CollectionUsers,
			model: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_unique"),
			},
		},
		{
			collection: CollectionJobs,
			model: mongo.IndexModel{
				Keys: bson.D{{Key: "companyId", Value: 1}},
			},
		},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return fmt.Errorf("create index on %s: %w", idx.collection, err)
		}
	}
	return nil
}
