package repository

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
)

// DomainRepository defines persistence operations for domains and their
// memberships.
type DomainRepository interface {
	GetByRef(ctx context.Context, ref string) (models.Domain, error)
	ListMembers(ctx context.Context, domainID uint) ([]models.DomainUser, error)
	GetMember(ctx context.Context, domainID, userID uint) (models.DomainUser, error)
}

type domainRepository struct {
	db *gorm.DB
}

// NewDomainRepository instantiates a GORM-backed repository.
func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{db: db}
}

// GetByRef resolves a domain by its numeric id or, failing that, its url.
func (r *domainRepository) GetByRef(ctx context.Context, ref string) (models.Domain, error) {
	var domain models.Domain
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		if err := r.db.WithContext(ctx).First(&domain, uint(id)).Error; err != nil {
			return models.Domain{}, err
		}
		return domain, nil
	}

	if err := r.db.WithContext(ctx).Where("url = ?", ref).First(&domain).Error; err != nil {
		return models.Domain{}, err
	}

	return domain, nil
}

// ListMembers returns the domain's memberships in join order with the user
// row preloaded.
func (r *domainRepository) ListMembers(ctx context.Context, domainID uint) ([]models.DomainUser, error) {
	var members []models.DomainUser
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("domain_id = ?", domainID).
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}

	return members, nil
}

func (r *domainRepository) GetMember(ctx context.Context, domainID, userID uint) (models.DomainUser, error) {
	var member models.DomainUser
	if err := r.db.WithContext(ctx).
		Where("domain_id = ?", domainID).
		Where("user_id = ?", userID).
		First(&member).Error; err != nil {
		return models.DomainUser{}, err
	}

	return member, nil
}
