// README: Catalog service; read-through Redis cache over the Postgres store plus selection tracking.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"manitas/internal/types"
)

const (
	cacheVersionKey = "catalog:ver"
	cacheKeyPrefix  = "catalog:active:v%d:%s:%d"
	cacheTTL        = 5 * time.Minute
)

// Service fronts the Postgres store with a short-lived Redis cache. The
// catalog is read-mostly; selection tracking bumps a version stamp so stale
// listings age out without key scans.
type Service struct {
	store *Store
	redis *redis.Client
}

func NewService(store *Store, redisClient *redis.Client) *Service {
	return &Service{store: store, redis: redisClient}
}

// ListActive returns active services ordered by popularity, served from the
// cache when possible. Cache failures fall through to Postgres silently.
func (s *Service) ListActive(ctx context.Context, category string, limit int) ([]Entry, error) {
	key := s.cacheKey(ctx, category, limit)
	if key != "" {
		if raw, err := s.redis.Get(ctx, key).Result(); err == nil {
			var cached []Entry
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return cached, nil
			}
		}
	}

	entries, err := s.store.ListActive(ctx, category, limit)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if raw, err := json.Marshal(entries); err == nil {
			if err := s.redis.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				log.Printf("catalog: cache set failed: %v", err)
			}
		}
	}
	return entries, nil
}

// GetByNameAndCategory is a direct store pass-through; exact lookups are cheap
// and too sparse to be worth caching.
func (s *Service) GetByNameAndCategory(ctx context.Context, name, category string) (*Entry, error) {
	return s.store.GetByNameAndCategory(ctx, name, category)
}

// TrackSelection records that a user picked a service (the popularity signal
// consumed by every matching tier) and advances the cache version.
func (s *Service) TrackSelection(ctx context.Context, id types.ID) error {
	if err := s.store.IncrementPopularity(ctx, id); err != nil {
		return err
	}
	if s.redis != nil {
		if err := s.redis.Incr(ctx, cacheVersionKey).Err(); err != nil {
			log.Printf("catalog: cache version bump failed: %v", err)
		}
	}
	return nil
}

// cacheKey builds the versioned listing key, or "" when Redis is unavailable
// so callers skip the cache entirely.
func (s *Service) cacheKey(ctx context.Context, category string, limit int) string {
	if s.redis == nil {
		return ""
	}
	ver, err := s.redis.Get(ctx, cacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return ""
	}
	return fmt.Sprintf(cacheKeyPrefix, ver, category, limit)
}
