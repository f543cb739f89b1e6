package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

type DatabaseConfig struct {
	URI             string        `yaml:"uri"`
	DatabaseName    string        `yaml:"database"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"`
	RetryWrites     bool          `yaml:"retry_writes"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type MetadataConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
	MaxBytes  int64         `yaml:"max_bytes"`
}

type Config struct {
	Environment    string         `yaml:"environment"`
	Port           string         `yaml:"port"`
	LogLevel       string         `yaml:"log_level"`
	AllowedOrigins []string       `yaml:"allowed_origins"`
	MaxBodyBytes   int64          `yaml:"max_body_bytes"`
	RedisURL       string         `yaml:"redis_url"`
	Database       DatabaseConfig `yaml:"database"`
	Auth           AuthConfig     `yaml:"auth"`
	Metadata       MetadataConfig `yaml:"metadata"`
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Defaults returns the configuration used when neither a file nor the environment set a value.
func Defaults() *Config {
	return &Config{
		Environment: "development",
		Port:        "5000",
		LogLevel:    "info",
		AllowedOrigins: []string{
			"http://localhost:5173",
		},
		MaxBodyBytes: 1 << 20,
		Database: DatabaseConfig{
			URI:             "mongodb://localhost:27017",
			DatabaseName:    "notes-bookmarks",
			MaxPoolSize:     100,
			MinPoolSize:     5,
			MaxConnIdleTime: 60 * time.Second,
			ConnectTimeout:  10 * time.Second,
			RetryWrites:     true,
		},
		Metadata: MetadataConfig{
			Timeout:   5 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			MaxBytes:  2 << 20,
		},
	}
}

// Load reads .env (when present), the optional YAML file named by CONFIG_FILE and
// finally the process environment, later sources overriding earlier ones.
func Load() (*Config, error) {
	// A missing .env is fine: deployments set real environment variables.
	_ = godotenv.Load()

	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Environment = GetEnvAsString("APP_ENV", cfg.Environment)
	cfg.Port = GetEnvAsString("PORT", cfg.Port)
	cfg.LogLevel = GetEnvAsString("LOG_LEVEL", cfg.LogLevel)
	cfg.AllowedOrigins = GetEnvAsSlice("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)
	cfg.MaxBodyBytes = GetEnvAsInt64("MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.RedisURL = GetEnvAsString("REDIS_URL", cfg.RedisURL)

	cfg.Database.URI = GetEnvAsString("MONGO_URI", GetEnvAsString("MONGODB_URI", cfg.Database.URI))
	cfg.Database.DatabaseName = GetEnvAsString("MONGO_DB", cfg.Database.DatabaseName)
	cfg.Database.MaxPoolSize = GetEnvAsUint64("MONGO_MAX_POOL_SIZE", cfg.Database.MaxPoolSize)
	cfg.Database.MinPoolSize = GetEnvAsUint64("MONGO_MIN_POOL_SIZE", cfg.Database.MinPoolSize)
	cfg.Database.MaxConnIdleTime = GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", cfg.Database.MaxConnIdleTime)
	cfg.Database.ConnectTimeout = GetEnvAsDuration("MONGO_CONNECT_TIMEOUT", cfg.Database.ConnectTimeout)
	cfg.Database.RetryWrites = GetEnvAsBool("MONGO_RETRY_WRITES", cfg.Database.RetryWrites)

	cfg.Auth.JWTSecret = GetEnvAsString("JWT_SECRET", cfg.Auth.JWTSecret)

	cfg.Metadata.Timeout = GetEnvAsDuration("METADATA_TIMEOUT", cfg.Metadata.Timeout)
	cfg.Metadata.UserAgent = GetEnvAsString("METADATA_USER_AGENT", cfg.Metadata.UserAgent)
	cfg.Metadata.MaxBytes = GetEnvAsInt64("METADATA_MAX_BYTES", cfg.Metadata.MaxBytes)
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Database.URI == "" {
		return errors.New("MONGO_URI is not set")
	}
	if c.Metadata.Timeout <= 0 {
		return fmt.Errorf("metadata timeout must be positive, got %s", c.Metadata.Timeout)
	}
	return nil
}
