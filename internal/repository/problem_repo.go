package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
)

// ProblemRepository defines read operations for problems. Problem editing is
// handled elsewhere; the scoreboard path only lists.
type ProblemRepository interface {
	ListByProblemSet(ctx context.Context, problemSetID uint) ([]models.Problem, error)
}

type problemRepository struct {
	db *gorm.DB
}

// NewProblemRepository instantiates a GORM-backed repository.
func NewProblemRepository(db *gorm.DB) ProblemRepository {
	return &problemRepository{db: db}
}

func (r *problemRepository) ListByProblemSet(ctx context.Context, problemSetID uint) ([]models.Problem, error) {
	var problems []models.Problem
	if err := r.db.WithContext(ctx).
		Where("problem_set_id = ?", problemSetID).
		Order("id ASC").
		Find(&problems).Error; err != nil {
		return nil, err
	}

	return problems, nil
}
