package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	jobusecase "jobboard_backend/internal/feature/jobs/usecase"
	"jobboard_backend/internal/platform/cache"
)

// NewJobRepository はRedisが利用可能ならキャッシュ付きの求人リポジトリを返します。
// 利用できない場合はストアのリポジトリをそのまま返します。
func NewJobRepository(rdb *redis.Client, ttl time.Duration, inner jobusecase.JobRepository) jobusecase.JobRepository {
	if rdb != nil {
		return cache.NewCachingJobRepository(rdb, ttl, inner, "jobs")
	}
	return inner
}
