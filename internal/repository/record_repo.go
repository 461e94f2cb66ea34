package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
)

// RecordRepository exposes the submission record queries the scoreboard
// needs. Record creation belongs to the judging pipeline, not this service.
type RecordRepository interface {
	LatestTried(ctx context.Context, userID, problemID uint, since time.Time) (models.Record, bool, error)
}

type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository instantiates a GORM-backed repository.
func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

// LatestTried returns the most recent terminal record for the (user, problem)
// pair submitted at or after since. The id is a secondary sort key so that
// submit_at ties resolve deterministically.
func (r *recordRepository) LatestTried(ctx context.Context, userID, problemID uint, since time.Time) (models.Record, bool, error) {
	var record models.Record
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("problem_id = ?", problemID).
		Where("submit_at >= ?", since).
		Where("status NOT IN ?", models.NonTerminalStatuses).
		Order("submit_at DESC").
		Order("id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Record{}, false, nil
		}
		return models.Record{}, false, err
	}

	return record, true, nil
}
