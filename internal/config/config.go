// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	Forecast   ForecastConfig
	Artifacts  ArtifactConfig
	Training   TrainingConfig
	Categories CategoryConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// MaxConcurrentTx bounds the number of transactions in flight.
	MaxConcurrentTx int64
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	MetricsTTLSeconds int
}

// ForecastConfig controls the demand forecasting engine.
type ForecastConfig struct {
	Horizon         int
	MinHistoryDays  int
	ReuseWithinDays int
	MaxIterations   int
}

// ArtifactConfig selects where fitted model parameters are written.
// Backend is either "fs" (one file per product under Dir) or "s3".
type ArtifactConfig struct {
	Backend     string
	Dir         string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3Prefix    string
	S3UseSSL    bool
}

type TrainingConfig struct {
	Enabled  bool
	Interval time.Duration
	Workers  int
}

type CategoryConfig struct {
	// MappingFile is an optional CSV (name,category) replacing the built-in table.
	MappingFile string
}

// DSN returns the lib/pq connection string for the database.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the database as a postgres:// URL, used by the CLI tools.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// Load reads the configuration from the environment (and .env when present).
// Every call builds a fresh Config; callers pass it down explicitly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConcurrentTx: v.GetInt64("DB_MAX_CONCURRENT_TX"),
		},
		Cache: CacheConfig{
			Enabled:           v.GetBool("CACHE_ENABLED"),
			RedisURL:          v.GetString("REDIS_URL"),
			RedisHost:         v.GetString("REDIS_HOST"),
			RedisPort:         v.GetString("REDIS_PORT"),
			RedisPassword:     v.GetString("REDIS_PASSWORD"),
			RedisDB:           v.GetInt("REDIS_DB"),
			MetricsTTLSeconds: v.GetInt("CACHE_METRICS_TTL_SECONDS"),
		},
		Forecast: ForecastConfig{
			Horizon:         v.GetInt("FORECAST_HORIZON"),
			MinHistoryDays:  v.GetInt("FORECAST_MIN_HISTORY_DAYS"),
			ReuseWithinDays: v.GetInt("FORECAST_REUSE_WITHIN_DAYS"),
			MaxIterations:   v.GetInt("FORECAST_MAX_ITERATIONS"),
		},
		Artifacts: ArtifactConfig{
			Backend:     v.GetString("ARTIFACT_BACKEND"),
			Dir:         v.GetString("ARTIFACT_DIR"),
			S3Endpoint:  v.GetString("ARTIFACT_S3_ENDPOINT"),
			S3AccessKey: v.GetString("ARTIFACT_S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("ARTIFACT_S3_SECRET_KEY"),
			S3Bucket:    v.GetString("ARTIFACT_S3_BUCKET"),
			S3Region:    v.GetString("ARTIFACT_S3_REGION"),
			S3Prefix:    v.GetString("ARTIFACT_S3_PREFIX"),
			S3UseSSL:    v.GetBool("ARTIFACT_S3_USE_SSL"),
		},
		Training: TrainingConfig{
			Enabled:  v.GetBool("TRAINING_ENABLED"),
			Interval: v.GetDuration("TRAINING_INTERVAL"),
			Workers:  v.GetInt("TRAINING_WORKERS"),
		},
		Categories: CategoryConfig{
			MappingFile: v.GetString("CATEGORY_MAPPING_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Artifacts.Backend == "fs" {
		if err := ensureDir(cfg.Artifacts.Dir); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 30)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 120)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "inventory_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONCURRENT_TX", 10)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_METRICS_TTL_SECONDS", 60)
	v.SetDefault("FORECAST_HORIZON", 14)
	v.SetDefault("FORECAST_MIN_HISTORY_DAYS", 10)
	v.SetDefault("FORECAST_REUSE_WITHIN_DAYS", 0)
	v.SetDefault("FORECAST_MAX_ITERATIONS", 500)
	v.SetDefault("ARTIFACT_BACKEND", "fs")
	v.SetDefault("ARTIFACT_DIR", "./data/models")
	v.SetDefault("ARTIFACT_S3_REGION", "us-east-1")
	v.SetDefault("ARTIFACT_S3_PREFIX", "models/")
	v.SetDefault("ARTIFACT_S3_USE_SSL", true)
	v.SetDefault("TRAINING_ENABLED", false)
	v.SetDefault("TRAINING_INTERVAL", "6h")
	v.SetDefault("TRAINING_WORKERS", 4)
	v.SetDefault("CATEGORY_MAPPING_FILE", "")
}

// Validate rejects configurations the services cannot run with.
func (c *Config) Validate() error {
	if c.Forecast.Horizon < 1 {
		return fmt.Errorf("FORECAST_HORIZON must be at least 1, got %d", c.Forecast.Horizon)
	}
	if c.Forecast.MinHistoryDays < 3 {
		return fmt.Errorf("FORECAST_MIN_HISTORY_DAYS must be at least 3, got %d", c.Forecast.MinHistoryDays)
	}
	switch c.Artifacts.Backend {
	case "fs":
		if c.Artifacts.Dir == "" {
			return fmt.Errorf("ARTIFACT_DIR must be set for the fs artifact backend")
		}
	case "s3":
		if c.Artifacts.S3Endpoint == "" || c.Artifacts.S3Bucket == "" {
			return fmt.Errorf("ARTIFACT_S3_ENDPOINT and ARTIFACT_S3_BUCKET must be set for the s3 artifact backend")
		}
	default:
		return fmt.Errorf("unknown ARTIFACT_BACKEND %q", c.Artifacts.Backend)
	}
	if c.Training.Workers < 1 {
		c.Training.Workers = 1
	}
	return nil
}

func ensureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
