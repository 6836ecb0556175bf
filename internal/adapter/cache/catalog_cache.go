package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"repair_quotes/internal/domain/entities"
	"repair_quotes/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

const (
	deviceKeyPrefix = "catalog:device:"
	issueKeyPrefix  = "catalog:issue:"
)

// Store is the subset of *redis.Client used by the catalog cache.
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedCatalogRepository is a read-through cache in front of the catalog.
//
// Only found entries are cached. Any cache failure falls back to the source
// repository, so Redis being down never fails a quote.
type CachedCatalogRepository struct {
	source interfaces.ICatalogRepository
	store  Store
	ttl    time.Duration
}

var _ interfaces.ICatalogRepository = (*CachedCatalogRepository)(nil)

func NewCachedCatalogRepository(source interfaces.ICatalogRepository, store Store, ttl time.Duration) *CachedCatalogRepository {
	return &CachedCatalogRepository{source: source, store: store, ttl: ttl}
}

func (r *CachedCatalogRepository) GetDevice(ctx context.Context, id string) (entities.Device, error) {
	key := deviceKeyPrefix + id
	cached, err := r.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		var d entities.Device
		if jsonErr := json.Unmarshal([]byte(cached), &d); jsonErr == nil {
			return d, nil
		}
		log.Printf("[catalog][cache] corrupt device entry key=%s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("[catalog][cache] get failed key=%s err=%v", key, err)
	}

	d, err := r.source.GetDevice(ctx, id)
	if err != nil {
		return entities.Device{}, err
	}
	if d.ID != "" {
		r.put(ctx, key, d)
	}
	return d, nil
}

func (r *CachedCatalogRepository) GetIssues(ctx context.Context, ids []string) ([]entities.Issue, error) {
	if len(ids) == 0 {
		return []entities.Issue{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = issueKeyPrefix + id
	}

	issues := make([]entities.Issue, 0, len(ids))
	misses := ids
	vals, err := r.store.MGet(ctx, keys...).Result()
	if err != nil {
		log.Printf("[catalog][cache] mget failed keys=%d err=%v", len(keys), err)
	} else {
		misses = make([]string, 0)
		for i, v := range vals {
			s, ok := v.(string)
			if !ok {
				misses = append(misses, ids[i])
				continue
			}
			var issue entities.Issue
			if err := json.Unmarshal([]byte(s), &issue); err != nil {
				misses = append(misses, ids[i])
				continue
			}
			issues = append(issues, issue)
		}
	}
	if len(misses) == 0 {
		return issues, nil
	}

	loaded, err := r.source.GetIssues(ctx, misses)
	if err != nil {
		return nil, err
	}
	for _, issue := range loaded {
		r.put(ctx, issueKeyPrefix+issue.ID, issue)
	}
	return append(issues, loaded...), nil
}

func (r *CachedCatalogRepository) put(ctx context.Context, key string, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.store.Set(ctx, key, b, r.ttl).Err(); err != nil {
		log.Printf("[catalog][cache] set failed key=%s err=%v", key, err)
	}
}
