package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vikask011/react-native/internal/domain"
	"github.com/vikask011/react-native/pkg/logger"
	"github.com/vikask011/react-native/pkg/redis"
)

const (
	eventKeyPrefix     = "event:"
	eventListKeyPrefix = "events:list:"
	// eventListVersionKey is bumped on invalidation so every cached listing goes stale at once
	eventListVersionKey = "events:list:version"
)

// CacheClient is the subset of pkg/redis used for the event cache
type CacheClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
	GetJSON(ctx context.Context, key string, dst interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// CachedEventRepositoryConfig holds cache TTLs
type CachedEventRepositoryConfig struct {
	ListTTL  time.Duration
	EventTTL time.Duration
}

// CachedEventRepository wraps an EventRepository with a Redis read cache.
// Concurrent misses for the same key share one database read.
type CachedEventRepository struct {
	EventRepository
	cache  CacheClient
	config CachedEventRepositoryConfig
	group  singleflight.Group
	log    *logger.Logger
}

// NewCachedEventRepository creates a cache in front of repo
func NewCachedEventRepository(repo EventRepository, cache CacheClient, config CachedEventRepositoryConfig) *CachedEventRepository {
	if config.ListTTL <= 0 {
		config.ListTTL = 30 * time.Second
	}
	if config.EventTTL <= 0 {
		config.EventTTL = time.Minute
	}
	return &CachedEventRepository{
		EventRepository: repo,
		cache:           cache,
		config:          config,
		log:             logger.Get(),
	}
}

// List serves listings from cache when possible
func (r *CachedEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	filter = filter.Normalize()
	key := r.listKey(ctx, filter)

	var events []*domain.Event
	if err := r.cache.GetJSON(ctx, key, &events); err == nil {
		return events, nil
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		r.log.Warn("event cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		events, err := r.EventRepository.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		if err := r.cache.SetJSON(ctx, key, events, r.config.ListTTL); err != nil {
			r.log.Warn("event cache write failed", zap.String("key", key), zap.Error(err))
		}
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Event), nil
}

// GetByID serves a single event from cache when possible. Not-found is not cached.
func (r *CachedEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	key := eventKey(id)

	var event domain.Event
	if err := r.cache.GetJSON(ctx, key, &event); err == nil {
		return &event, nil
	} else if !errors.Is(err, redis.ErrCacheMiss) {
		r.log.Warn("event cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := r.group.Do(key, func() (interface{}, error) {
		event, err := r.EventRepository.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.cache.SetJSON(ctx, key, event, r.config.EventTTL); err != nil {
			r.log.Warn("event cache write failed", zap.String("key", key), zap.Error(err))
		}
		return event, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Event), nil
}

// DecrementSeat writes through and drops the stale entries
func (r *CachedEventRepository) DecrementSeat(ctx context.Context, id int64) error {
	if err := r.EventRepository.DecrementSeat(ctx, id); err != nil {
		return err
	}
	r.Invalidate(ctx, id)
	return nil
}

// Invalidate drops the cached event and every cached listing
func (r *CachedEventRepository) Invalidate(ctx context.Context, eventID int64) {
	if err := r.cache.Del(ctx, eventKey(eventID)).Err(); err != nil {
		r.log.Warn("event cache invalidation failed", zap.Int64("event_id", eventID), zap.Error(err))
	}
	if err := r.cache.Incr(ctx, eventListVersionKey).Err(); err != nil {
		r.log.Warn("event list cache invalidation failed", zap.Error(err))
	}
}

func (r *CachedEventRepository) listKey(ctx context.Context, filter domain.EventFilter) string {
	version, err := r.cache.Get(ctx, eventListVersionKey).Result()
	if err != nil {
		version = "0"
	}
	return eventListKeyPrefix + version + ":" + filterDigest(filter)
}

// filterDigest length-prefixes each part so no two filters share a digest
func filterDigest(filter domain.EventFilter) string {
	category := strings.ToLower(filter.Category)
	search := strings.ToLower(filter.Search)
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s%d:%s", len(category), category, len(search), search)))
	return hex.EncodeToString(sum[:16])
}

func eventKey(id int64) string {
	return fmt.Sprintf("%s%d", eventKeyPrefix, id)
}
