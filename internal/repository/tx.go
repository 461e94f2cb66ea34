package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
)

// Problems are read in fixed-size batches so a large set never loads at once.
const problemBatchSize = 100

// Store is the write surface available inside a transaction. Every call made
// through one Store instance runs on the same database session, so a
// multi-step write sequence either commits as a whole or not at all.
type Store interface {
	CreateProblemSet(ctx context.Context, set *models.ProblemSet) error
	UpdateProblemSet(ctx context.Context, set *models.ProblemSet) error
	CreateProblem(ctx context.Context, problem *models.Problem) error
	GetProblemGroup(ctx context.Context, groupID uint) (models.ProblemGroup, error)
	// EachProblemBySet visits the problems of a set in id order, loading
	// them in bounded batches. Each batch query finishes before fn runs, so
	// fn may issue writes on the same session; the connection carries no
	// open result set at that point. Returning an error from fn stops the
	// iteration and fails the surrounding transaction.
	EachProblemBySet(ctx context.Context, problemSetID uint, fn func(models.Problem) error) error
}

// TxManager runs a function inside a single database transaction. A non-nil
// error from fn rolls back everything written through the Store.
type TxManager interface {
	WithTx(ctx context.Context, fn func(tx Store) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager builds a GORM-backed transaction manager.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) CreateProblemSet(ctx context.Context, set *models.ProblemSet) error {
	return s.db.WithContext(ctx).Create(set).Error
}

func (s *gormStore) UpdateProblemSet(ctx context.Context, set *models.ProblemSet) error {
	return s.db.WithContext(ctx).Save(set).Error
}

func (s *gormStore) CreateProblem(ctx context.Context, problem *models.Problem) error {
	return s.db.WithContext(ctx).Create(problem).Error
}

func (s *gormStore) GetProblemGroup(ctx context.Context, groupID uint) (models.ProblemGroup, error) {
	var group models.ProblemGroup
	if err := s.db.WithContext(ctx).First(&group, groupID).Error; err != nil {
		return models.ProblemGroup{}, err
	}
	return group, nil
}

func (s *gormStore) EachProblemBySet(ctx context.Context, problemSetID uint, fn func(models.Problem) error) error {
	var batch []models.Problem
	result := s.db.WithContext(ctx).
		Where("problem_set_id = ?", problemSetID).
		FindInBatches(&batch, problemBatchSize, func(_ *gorm.DB, _ int) error {
			for _, problem := range batch {
				if err := fn(problem); err != nil {
					return err
				}
			}
			return nil
		})

	return result.Error
}
