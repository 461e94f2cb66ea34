package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
	"github.com/openjudge-io/judge-api/internal/repository"
)

// PermissionChecker authorizes a user's domain-scoped action before the
// operation begins.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID, domainID uint, permission string) (bool, error)
}

type domainPermissionChecker struct {
	domains repository.DomainRepository
	logger  zerolog.Logger
}

// NewDomainPermissionChecker resolves permissions from domain membership
// roles.
func NewDomainPermissionChecker(domains repository.DomainRepository, logger zerolog.Logger) PermissionChecker {
	return &domainPermissionChecker{
		domains: domains,
		logger:  logger.With().Str("component", "permission_checker").Logger(),
	}
}

func (c *domainPermissionChecker) HasPermission(ctx context.Context, userID, domainID uint, permission string) (bool, error) {
	member, err := c.domains.GetMember(ctx, domainID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return models.RoleHasPermission(member.Role, permission), nil
}
