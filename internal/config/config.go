package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds all application configuration
type Config struct {
	BotToken        string
	BotPassword     string
	LogLevel        string
	NotificationTTL time.Duration

	Storage  StorageConfig
	Database DatabaseConfig
	S3       S3Config
}

// StorageConfig selects where the dictionary is persisted
type StorageConfig struct {
	Backend string
	DataDir string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host           string
	Port           string
	Name           string
	User           string
	Password       string
	MigrationsPath string
}

// S3Config holds bucket settings for the s3 backend
type S3Config struct {
	Bucket string
	Prefix string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("NOTIFICATION_TTL", "3s"))
	if err != nil {
		return nil, fmt.Errorf("NOTIFICATION_TTL: %w", err)
	}

	cfg := &Config{
		BotToken:        os.Getenv("BOT_TOKEN"),
		BotPassword:     os.Getenv("BOT_PASSWORD"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		NotificationTTL: ttl,
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", BackendFile),
			DataDir: getEnv("DATA_DIR", ".dictionary"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			Name:           getEnv("DB_NAME", "dictionary"),
			User:           getEnv("DB_USER", "dictionary"),
			Password:       os.Getenv("DB_PASSWORD"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		},
		S3: S3Config{
			Bucket: os.Getenv("S3_BUCKET"),
			Prefix: getEnv("S3_PREFIX", "dictionary/"),
		},
	}

	return cfg, nil
}

// Validate checks the settings needed by the selected storage backend
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.DataDir == "" {
			return fmt.Errorf("DATA_DIR is required for the file backend")
		}
	case BackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}
	if c.NotificationTTL <= 0 {
		return fmt.Errorf("NOTIFICATION_TTL must be positive")
	}
	return nil
}

// ValidateBot additionally checks the Telegram bot credentials
func (c *Config) ValidateBot() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.BotPassword == "" {
		return fmt.Errorf("BOT_PASSWORD is required")
	}
	return c.Validate()
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
