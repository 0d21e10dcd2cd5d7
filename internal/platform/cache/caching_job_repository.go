// Package cache はリポジトリインターフェースに対するRedisキャッシュ実装を提供します。
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
)

// CachingJobRepository はJobRepositoryにRedisキャッシュを付与するデコレーターです。
// 公開求人一覧と求人詳細をキャッシュし、掲載・公開状態の変更時に無効化します。
type CachingJobRepository struct {
	inner     usecase.JobRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.JobRepository = (*CachingJobRepository)(nil)

// NewCachingJobRepository はJobRepositoryをRedisキャッシュでラップします。
// ttlが0以下の場合は5分、namespaceが空の場合は"jobs"を使用します。rdbがnilの場合はキャッシュしません。
func NewCachingJobRepository(rdb *redis.Client, ttl time.Duration, inner usecase.JobRepository, namespace string) *CachingJobRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "jobs"
	}
	return &CachingJobRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create は求人を保存し、一覧キャッシュを無効化します。
func (c *CachingJobRepository) Create(ctx context.Context, job *entity.Job) error {
	if err := c.inner.Create(ctx, job); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	c.invalidateLists(ctx)
	return nil
}

// SetVisible は公開状態を更新し、一覧と該当求人のキャッシュを無効化します。
func (c *CachingJobRepository) SetVisible(ctx context.Context, id string, visible bool) error {
	if err := c.inner.SetVisible(ctx, id, visible); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	c.invalidateLists(ctx)
	if err := c.rdb.Del(ctx, c.jobKey(id)).Err(); err != nil {
		slog.Warn("job cache invalidation failed", "error", err, "job_id", id)
	}
	return nil
}

// ListVisible はキャッシュを優先し、ミス時はDBから取得してキャッシュします。
func (c *CachingJobRepository) ListVisible(ctx context.Context) ([]entity.Job, error) {
	if c.rdb == nil {
		return c.inner.ListVisible(ctx)
	}
	return readThrough(ctx, c, c.listKey("visible"), func() ([]entity.Job, error) {
		return c.inner.ListVisible(ctx)
	})
}

// FindByID はキャッシュを優先し、ミス時はDBから取得してキャッシュします。
func (c *CachingJobRepository) FindByID(ctx context.Context, id string) (*entity.Job, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}
	return readThrough(ctx, c, c.jobKey(id), func() (*entity.Job, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// FindByIDs はキャッシュを使わずにDBから取得します。
func (c *CachingJobRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Job, error) {
	return c.inner.FindByIDs(ctx, ids)
}

// ListByCompany は応募数と合わせて表示されるため、キャッシュを使わずにDBから取得します。
func (c *CachingJobRepository) ListByCompany(ctx context.Context, companyID string) ([]entity.Job, error) {
	return c.inner.ListByCompany(ctx, companyID)
}

// readThrough はkeyのキャッシュを返し、無ければloadの結果を保存して返します。
func readThrough[T any](ctx context.Context, c *CachingJobRepository, key string, load func() (T, error)) (T, error) {
	// 1) キャッシュを確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// 破損したキャッシュを削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DBにフォールバック
	out, err := load()
	if err != nil {
		return out, err
	}

	// 3) キャッシュに保存（ベストエフォート）
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

func (c *CachingJobRepository) invalidateLists(ctx context.Context) {
	if err := c.deleteByPattern(ctx, c.namespace+":list:*"); err != nil {
		slog.Warn("job list cache invalidation failed", "error", err)
	}
}

func (c *CachingJobRepository) listKey(name string) string {
	return fmt.Sprintf("%s:list:%s", c.namespace, safe(name))
}

func (c *CachingJobRepository) jobKey(id string) string {
	return fmt.Sprintf("%s:job:%s", c.namespace, safe(id))
}

// deleteByPattern はSCANでパターンに一致するキーを削除します。
func (c *CachingJobRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe はRedisキーで問題となる文字を置き換えます。
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	s = strings.ReplaceAll(s, "*", "_")
	return s
}
