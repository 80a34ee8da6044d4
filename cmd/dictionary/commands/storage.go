package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dictionary/internal/config"
	"dictionary/internal/repository"
	"dictionary/internal/repository/file"
	"dictionary/internal/repository/postgres"
	s3slot "dictionary/internal/repository/s3"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// openSlotStorage opens the backend selected in cfg.
// The returned func releases its resources.
func openSlotStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SlotStorage, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		slots, err := file.NewSlotStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Using file storage", zap.String("dir", cfg.Storage.DataDir))
		return slots, func() {}, nil

	case config.BackendPostgres:
		db, err := connectDatabase(ctx, cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Database connection established")

		if err := runMigrations(db, cfg.Database.MigrationsPath, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewSlotRepo(db), func() { db.Close() }, nil

	case config.BackendS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load aws config: %w", err)
		}
		logger.Debug("Using s3 storage",
			zap.String("bucket", cfg.S3.Bucket),
			zap.String("prefix", cfg.S3.Prefix),
		)
		return s3slot.NewSlotStore(s3.NewFromConfig(awsCfg), cfg.S3.Bucket, cfg.S3.Prefix), func() {}, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			continue
		}

		// Test connection
		if err = db.PingContext(ctx); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			continue
		}

		db.SetMaxOpenConns(5)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations creates the slots table
func runMigrations(db *sql.DB, migrationsPath string, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
