// Package di はアプリケーションの構成要素を設定に応じて組み立てるファクトリーを提供します。
package di

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"

	appadapters "jobboard_backend/internal/feature/applications/adapters"
	appentity "jobboard_backend/internal/feature/applications/domain/entity"
	appusecase "jobboard_backend/internal/feature/applications/usecase"
	companyadapters "jobboard_backend/internal/feature/company/adapters"
	companyentity "jobboard_backend/internal/feature/company/domain/entity"
	companyusecase "jobboard_backend/internal/feature/company/usecase"
	jobadapters "jobboard_backend/internal/feature/jobs/adapters"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
	jobusecase "jobboard_backend/internal/feature/jobs/usecase"
	useradapters "jobboard_backend/internal/feature/users/adapters"
	userentity "jobboard_backend/internal/feature/users/domain/entity"
	userusecase "jobboard_backend/internal/feature/users/usecase"
	"jobboard_backend/internal/platform/config"
	"jobboard_backend/internal/platform/db"
	"jobboard_backend/internal/platform/mongodb"
)

// connectTimeout はストア接続を待つ最大時間です。
const connectTimeout = 30 * time.Second

// Repositories はレコードストアの各リポジトリです。
// どのドライバーでも同じ一意性（企業メール、ユーザーと求人の組）を保証します。
type Repositories struct {
	Users        userusecase.UserRepository
	Companies    companyusecase.CompanyRepository
	Jobs         jobusecase.JobRepository
	Applications appusecase.ApplicationRepository
}

// Models はgormで管理するエンティティの一覧です。
func Models() []any {
	return []any{
		&userentity.User{},
		&companyentity.Company{},
		&jobentity.Job{},
		&appentity.JobApplication{},
	}
}

// NewGormRepositories はgorm（PostgreSQL / SQLite）のリポジトリを生成します。
func NewGormRepositories(gdb *gorm.DB) *Repositories {
	return &Repositories{
		Users:        useradapters.NewUserGorm(gdb),
		Companies:    companyadapters.NewCompanyGorm(gdb),
		Jobs:         jobadapters.NewJobGorm(gdb),
		Applications: appadapters.NewApplicationGorm(gdb),
	}
}

// NewMongoRepositories はMongoDBのリポジトリを生成します。
func NewMongoRepositories(mdb *mongo.Database) *Repositories {
	return &Repositories{
		Users:        useradapters.NewUserMongo(mdb),
		Companies:    companyadapters.NewCompanyMongo(mdb),
		Jobs:         jobadapters.NewJobMongo(mdb),
		Applications: appadapters.NewApplicationMongo(mdb),
	}
}

// Store は開いたレコードストアです。Pingはヘルスチェックに使います。
type Store struct {
	Repositories *Repositories
	Ping         func(ctx context.Context) error
	Close        func()
}

// OpenStore はcfg.StoreDriverに応じてストアに接続し、スキーマとインデックスを準備します。
func OpenStore(ctx context.Context, cfg config.Config) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, mongodb.LoadConfigFromEnv())
	case config.DriverSQLite:
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return openGorm(gdb)
	case config.DriverPostgres:
		gdb, err := db.ConnectWithRetry(db.BuildDSN(db.LoadConfigFromEnv()), connectTimeout, db.OpenPostgres)
		if err != nil {
			return nil, err
		}
		return openGorm(gdb)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func openGorm(gdb *gorm.DB) (*Store, error) {
	if err := db.Migrate(gdb, Models()...); err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Store{
		Repositories: NewGormRepositories(gdb),
		Ping:         sqlDB.PingContext,
		Close: func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		},
	}, nil
}

func openMongo(ctx context.Context, cfg mongodb.Config) (*Store, error) {
	client, err := mongodb.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mdb := client.Database(cfg.Database)
	if err := mongodb.EnsureIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Store{
		Repositories: NewMongoRepositories(mdb),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Error("failed to disconnect MongoDB", "error", err)
			}
		},
	}, nil
}
