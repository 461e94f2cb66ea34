package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	connectAttempts  = 5
	connectBaseDelay = 2 * time.Second
)

// ConnectPostgres establishes a connection to PostgreSQL, retrying with
// exponential backoff while the database comes up. Every attempt is logged.
func ConnectPostgres(dsn string, logger zerolog.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	var lastErr error
	delay := connectBaseDelay

	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
			}
			if pingErr == nil {
				logger.Info().Int("attempt", attempt).Msg("connected to postgres")
				return db, nil
			}
			err = pingErr
		}

		lastErr = err
		logger.Warn().Err(err).
			Int("attempt", attempt).
			Int("max_attempts", connectAttempts).
			Dur("retry_in", delay).
			Msg("postgres connection attempt failed")

		if attempt < connectAttempts {
			time.Sleep(delay)
			delay *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect to postgres after %d attempts: %w", connectAttempts, lastErr)
}
