package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/Payphone-Digital/instruments/internal/dto"
	"github.com/Payphone-Digital/instruments/pkg/cache"
	"github.com/Payphone-Digital/instruments/pkg/circuit"
	"github.com/Payphone-Digital/instruments/pkg/logger"
	"github.com/Payphone-Digital/instruments/pkg/redis"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PageLoader reads a listing page from storage.
type PageLoader func(ctx context.Context, q dto.ListingQuery) (*dto.ListingPage, error)

type CacheConfig struct {
	Enabled bool
	// Local allows the in-process cache when redis is disabled. It must only
	// be set when this process is the sole writer of the store, otherwise a
	// write made by another process stays invisible here until the TTL.
	Local   bool
	TTL     time.Duration
	Breaker circuit.Config
}

// CacheService caches listing pages. Redis is used when it is enabled and
// the local cache when Local is set; otherwise pages load from storage. Keys
// embed a generation number that every mutation bumps. If the bump cannot
// reach redis, pages written before the mutation live until their TTL expires.
type CacheService struct {
	cfg     CacheConfig
	redis   redis.Client
	local   *cache.Cache[dto.ListingPage]
	breaker *circuit.Breaker
	group   singleflight.Group

	localGeneration atomic.Int64
}

func NewCacheService(client redis.Client, cfg CacheConfig) *CacheService {
	if cfg.TTL <= 0 {
		cfg.TTL = constants.DefaultCacheTTL
	}
	return &CacheService{
		cfg:     cfg,
		redis:   client,
		local:   cache.New[dto.ListingPage](cfg.TTL),
		breaker: circuit.New("redis", cfg.Breaker, logger.GetLogger()),
	}
}

func (s *CacheService) usesRedis() bool {
	return s.redis != nil && s.redis.IsEnabled()
}

// Listing returns the page selected by q, calling load on a miss.
// Concurrent misses for the same key share one load.
func (s *CacheService) Listing(ctx context.Context, q dto.ListingQuery, load PageLoader) (*dto.ListingPage, error) {
	if !s.cfg.Enabled {
		return load(ctx, q)
	}
	if s.usesRedis() {
		return s.redisListing(ctx, q, load)
	}
	if s.cfg.Local {
		return s.localListing(ctx, q, load)
	}
	return load(ctx, q)
}

func (s *CacheService) localListing(ctx context.Context, q dto.ListingQuery, load PageLoader) (*dto.ListingPage, error) {
	key := strconv.FormatInt(s.localGeneration.Load(), 10) + ":" + q.CacheKey()
	if page, ok := s.local.Get(key); ok {
		return &page, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		page, err := load(ctx, q)
		if err != nil {
			return nil, err
		}
		s.local.Set(key, *page, s.cfg.TTL)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.ListingPage), nil
}

func (s *CacheService) redisListing(ctx context.Context, q dto.ListingQuery, load PageLoader) (*dto.ListingPage, error) {
	generation, err := s.generation(ctx)
	if err != nil {
		// Shared cache unavailable: serve straight from storage.
		return load(ctx, q)
	}
	key := constants.CacheKeyListing + generation + ":" + q.CacheKey()

	var data []byte
	err = s.breaker.Do(ctx, func(ctx context.Context) error {
		var getErr error
		data, getErr = s.redis.Get(ctx, key)
		return getErr
	})
	if err == nil && data != nil {
		var page dto.ListingPage
		if jsonErr := json.Unmarshal(data, &page); jsonErr == nil {
			logger.DebugWithContext(ctx, "Listing cache hit").
				String("cache_key", key).
				Log()
			return &page, nil
		}
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		page, err := load(ctx, q)
		if err != nil {
			return nil, err
		}
		s.store(ctx, key, page)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dto.ListingPage), nil
}

func (s *CacheService) store(ctx context.Context, key string, page *dto.ListingPage) {
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	err = s.breaker.Do(ctx, func(ctx context.Context) error {
		return s.redis.Set(ctx, key, data, s.cfg.TTL)
	})
	if err != nil && !errors.Is(err, circuit.ErrOpen) {
		logger.WarnWithContext(ctx, "Failed to cache listing page").
			String("cache_key", key).
			Err(err).
			Log()
	}
}

// generation reads the current listing generation from redis. A missing
// key is generation 0.
func (s *CacheService) generation(ctx context.Context) (string, error) {
	var data []byte
	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		var getErr error
		data, getErr = s.redis.Get(ctx, constants.CacheKeyGeneration)
		return getErr
	})
	if err != nil {
		return "", err
	}
	if data == nil {
		return "0", nil
	}
	return string(data), nil
}

// Invalidate makes every cached listing page unreachable.
func (s *CacheService) Invalidate(ctx context.Context) {
	s.localGeneration.Add(1)
	s.local.Flush()

	if !s.cfg.Enabled || !s.usesRedis() {
		return
	}

	err := s.breaker.Do(ctx, func(ctx context.Context) error {
		_, incrErr := s.redis.Incr(ctx, constants.CacheKeyGeneration)
		return incrErr
	})
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to invalidate listing cache").
			Err(err).
			Log()
	}
}

// Status reports the cache backend for the health endpoint.
func (s *CacheService) Status(ctx context.Context) map[string]any {
	status := map[string]any{
		"enabled": s.cfg.Enabled,
		"backend": "local",
		"ttl":     s.cfg.TTL.String(),
	}
	if !s.usesRedis() {
		if !s.cfg.Local {
			status["backend"] = "none"
			return status
		}
		status["entries"] = s.local.Len()
		return status
	}

	status["backend"] = "redis"
	status["breaker"] = s.breaker.Stats()
	if err := s.redis.Ping(ctx); err != nil {
		status["redis"] = "unreachable"
		status["error"] = err.Error()
	} else {
		status["redis"] = "ok"
	}
	return status
}

func (s *CacheService) Close() {
	s.local.Close()
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			logger.GetLogger().Warn("Failed to close redis client", zap.Error(err))
		}
	}
}
