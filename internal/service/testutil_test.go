package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Domain{},
		&models.DomainUser{},
		&models.ProblemSet{},
		&models.Problem{},
		&models.ProblemGroup{},
		&models.Record{},
	))
	return db
}

func testValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// recordingPublisher captures emitted events for assertions.
type recordingPublisher struct {
	events []DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event DomainEvent) {
	p.events = append(p.events, event)
}
