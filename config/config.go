package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Payphone-Digital/instruments/internal/constants"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name          string        `mapstructure:"name"`
	Environment   string        `mapstructure:"environment"`
	Port          string        `mapstructure:"port"`
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	StorageDriver string        `mapstructure:"storage_driver"`
	SeedFile      string        `mapstructure:"seed_file"`
	LogsPath      string        `mapstructure:"logs_path"`
	Timeout       time.Duration `mapstructure:"timeout"`
	HealthEvery   time.Duration `mapstructure:"health_interval"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Name            string        `mapstructure:"name"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	Database     int           `mapstructure:"database"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	PoolTimeout  time.Duration `mapstructure:"pool_timeout"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"rps"`
	Burst             int     `mapstructure:"burst"`
}

// defaults maps every environment variable to its default value.
var defaults = map[string]any{
	"APP_NAME":        "instrument-catalog",
	"APP_ENV":         constants.DefaultEnvironment,
	"APP_PORT":        constants.DefaultPort,
	"APP_TIMEOUT":     "30s",
	"HEALTH_INTERVAL": "30s",
	"BASE_URL":        constants.DefaultBaseURL,
	"API_KEY":         "",
	"STORAGE_DRIVER":  constants.StorageDriverPostgres,
	"SEED_FILE":       "",
	"LOGS_PATH":       "./logs",

	"DB_HOST":               "localhost",
	"DB_PORT":               5432,
	"DB_NAME":               "instruments",
	"DB_USER":               "postgres",
	"DB_PASSWORD":           "postgres",
	"DB_SSL_MODE":           "disable",
	"DB_MAX_IDLE_CONNS":     10,
	"DB_MAX_OPEN_CONNS":     50,
	"DB_CONN_MAX_LIFETIME":  "1h",
	"DB_CONN_MAX_IDLE_TIME": "10m",
	"DB_CONNECT_TIMEOUT":    "30s",

	"REDIS_ENABLED":        false,
	"REDIS_HOST":           "localhost",
	"REDIS_PORT":           6379,
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"REDIS_POOL_SIZE":      10,
	"REDIS_MIN_IDLE_CONNS": 2,
	"REDIS_DIAL_TIMEOUT":   "5s",
	"REDIS_READ_TIMEOUT":   "3s",
	"REDIS_WRITE_TIMEOUT":  "3s",
	"REDIS_POOL_TIMEOUT":   "4s",

	"CACHE_ENABLED": true,
	"CACHE_TTL":     "60s",

	"RATE_LIMIT_RPS":   0,
	"RATE_LIMIT_BURST": 20,
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:          v.GetString("APP_NAME"),
			Environment:   v.GetString("APP_ENV"),
			Port:          v.GetString("APP_PORT"),
			BaseURL:       strings.TrimRight(v.GetString("BASE_URL"), "/"),
			APIKey:        v.GetString("API_KEY"),
			StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
			SeedFile:      v.GetString("SEED_FILE"),
			LogsPath:      v.GetString("LOGS_PATH"),
			Timeout:       v.GetDuration("APP_TIMEOUT"),
			HealthEvery:   v.GetDuration("HEALTH_INTERVAL"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			Name:            v.GetString("DB_NAME"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			ConnMaxIdleTime: v.GetDuration("DB_CONN_MAX_IDLE_TIME"),
			ConnectTimeout:  v.GetDuration("DB_CONNECT_TIMEOUT"),
		},
		Redis: RedisConfig{
			Enabled:      v.GetBool("REDIS_ENABLED"),
			Host:         v.GetString("REDIS_HOST"),
			Port:         v.GetInt("REDIS_PORT"),
			Password:     v.GetString("REDIS_PASSWORD"),
			Database:     v.GetInt("REDIS_DB"),
			PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
			DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolTimeout:  v.GetDuration("REDIS_POOL_TIMEOUT"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("CACHE_ENABLED"),
			TTL:     v.GetDuration("CACHE_TTL"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.App.StorageDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: unsupported STORAGE_DRIVER %q", c.App.StorageDriver)
	}
	if c.App.BaseURL == "" {
		return fmt.Errorf("config: BASE_URL must not be empty")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("config: RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

// ListingURL is the absolute URL of the listing endpoint used in navigation
// links.
func (c *Config) ListingURL() string {
	return c.App.BaseURL + "/api"
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
