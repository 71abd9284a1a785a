package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrDisabled is returned by every operation of a disabled client.
var ErrDisabled = errors.New("redis: disabled")

// Config holds connection settings.
type Config struct {
	Host         string
	Port         int
	Password     string
	DB           int
	Enabled      bool
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Client is the subset of Redis used by the listing cache.
type Client interface {
	IsEnabled() bool
	Ping(ctx context.Context) error
	// Get returns (nil, nil) on a cache miss.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
	Close() error
}

type client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

type disabledClient struct{}

// NewClient returns a Redis backed client, or a disabled client when
// cfg.Enabled is false. An unreachable server is logged but not fatal.
func NewClient(cfg Config, logger *zap.Logger) Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		return disabledClient{}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Address(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
	})

	c := &client{rdb: rdb, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		logger.Warn("Redis is not reachable, continuing without shared cache",
			zap.String("address", cfg.Address()),
			zap.Error(err),
		)
	} else {
		logger.Info("Successfully connected to Redis",
			zap.String("address", cfg.Address()),
			zap.Int("database", cfg.DB),
		)
	}

	return c
}

func (c *client) IsEnabled() bool {
	return true
}

func (c *client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *client) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	c.logger.Debug("Cache hit", zap.String("key", key), zap.Int("size", len(data)))
	return data, nil
}

func (c *client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

func (c *client) Incr(ctx context.Context, key string) (int64, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	return n, nil
}

func (c *client) Close() error {
	return c.rdb.Close()
}

func (disabledClient) IsEnabled() bool {
	return false
}

func (disabledClient) Ping(context.Context) error {
	return ErrDisabled
}

func (disabledClient) Get(context.Context, string) ([]byte, error) {
	return nil, ErrDisabled
}

func (disabledClient) Set(context.Context, string, []byte, time.Duration) error {
	return ErrDisabled
}

func (disabledClient) Incr(context.Context, string) (int64, error) {
	return 0, ErrDisabled
}

func (disabledClient) Close() error {
	return nil
}
