package repository

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
)

// ProblemSetFilter narrows and paginates problem set listings.
type ProblemSetFilter struct {
	OwnerID  *uint
	DomainID *uint
	Page     int
	PageSize int
}

// ProblemSetRepository defines persistence operations for problem sets.
type ProblemSetRepository interface {
	List(ctx context.Context, filter ProblemSetFilter) ([]models.ProblemSet, int64, error)
	GetByID(ctx context.Context, id uint) (models.ProblemSet, error)
	GetByRef(ctx context.Context, domainID uint, ref string) (models.ProblemSet, error)
	Create(ctx context.Context, set *models.ProblemSet) error
	Update(ctx context.Context, set *models.ProblemSet) error
	Delete(ctx context.Context, id uint) error
}

type problemSetRepository struct {
	db *gorm.DB
}

// NewProblemSetRepository instantiates a GORM-backed repository.
func NewProblemSetRepository(db *gorm.DB) ProblemSetRepository {
	return &problemSetRepository{db: db}
}

func (r *problemSetRepository) List(ctx context.Context, filter ProblemSetFilter) ([]models.ProblemSet, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ProblemSet{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	if filter.DomainID != nil {
		query = query.Where("domain_id = ?", *filter.DomainID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var sets []models.ProblemSet
	if err := query.Order("id ASC").Find(&sets).Error; err != nil {
		return nil, 0, err
	}

	return sets, total, nil
}

func (r *problemSetRepository) GetByID(ctx context.Context, id uint) (models.ProblemSet, error) {
	var set models.ProblemSet
	if err := r.db.WithContext(ctx).First(&set, id).Error; err != nil {
		return models.ProblemSet{}, err
	}

	return set, nil
}

// GetByRef resolves a set within a domain by numeric id or url. Numeric refs
// are reserved for ids, which is why caller-supplied urls may not be all
// digits.
func (r *problemSetRepository) GetByRef(ctx context.Context, domainID uint, ref string) (models.ProblemSet, error) {
	var set models.ProblemSet
	query := r.db.WithContext(ctx).Where("domain_id = ?", domainID)

	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if err := query.First(&set, uint(id)).Error; err != nil {
			return models.ProblemSet{}, err
		}
		return set, nil
	}

	if err := query.Where("url = ?", ref).First(&set).Error; err != nil {
		return models.ProblemSet{}, err
	}

	return set, nil
}

func (r *problemSetRepository) Create(ctx context.Context, set *models.ProblemSet) error {
	return r.db.WithContext(ctx).Create(set).Error
}

func (r *problemSetRepository) Update(ctx context.Context, set *models.ProblemSet) error {
	return r.db.WithContext(ctx).Save(set).Error
}

// Delete removes the set only; child problems are left in place.
func (r *problemSetRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ProblemSet{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
