package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"ete-kpi/pkg/redis"
)

// Observer is notified of cache lookups.
type Observer interface {
	CacheHit()
	CacheMiss()
}

// Store caches computed reports. Lookup errors are never fatal to the
// caller: a failing store behaves as a miss.
type Store interface {
	// Get decodes the entry at key into dst and reports whether it was found.
	Get(ctx context.Context, key string, dst interface{}) bool
	Set(ctx context.Context, key string, v interface{})
	// Invalidate drops every cached report, for use after new production
	// is registered.
	Invalidate(ctx context.Context)
}

// Noop caches nothing.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) bool { return false }
func (Noop) Set(context.Context, string, interface{})      {}
func (Noop) Invalidate(context.Context)                    {}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	obs    Observer
	logger *zap.Logger
}

// NewRedisStore returns a Store backed by Redis with entries expiring after ttl.
func NewRedisStore(client *redis.Client, ttl time.Duration, obs Observer, logger *zap.Logger) Store {
	return &redisStore{client: client, ttl: ttl, obs: obs, logger: logger}
}

func (s *redisStore) Get(ctx context.Context, key string, dst interface{}) bool {
	err := s.client.GetJSON(ctx, key, dst)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		if s.obs != nil {
			s.obs.CacheMiss()
		}
		return false
	}
	if s.obs != nil {
		s.obs.CacheHit()
	}
	return true
}

func (s *redisStore) Set(ctx context.Context, key string, v interface{}) {
	if err := s.client.SetJSON(ctx, key, v, s.ttl); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *redisStore) Invalidate(ctx context.Context) {
	n, err := s.client.DeleteByPrefix(ctx, keyPrefix)
	if err != nil {
		s.logger.Warn("report cache invalidation failed", zap.Error(err))
		return
	}
	s.logger.Debug("report cache invalidated", zap.Int("keys", n))
}
