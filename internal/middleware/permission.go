package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
	"github.com/openjudge-io/judge-api/internal/repository"
	"github.com/openjudge-io/judge-api/internal/service"
	"github.com/openjudge-io/judge-api/internal/utils"
)

const domainLocalsKey = "domain"

// DomainContext resolves the :domain path parameter (id or url) and binds the
// domain row to the request for downstream handlers.
func DomainContext(domains repository.DomainRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ref := c.Params("domain")
		if ref == "" {
			return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain reference missing")
		}

		domain, err := domains.GetByRef(c.Context(), ref)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not found")
			}
			return utils.SendErrorCode(c, utils.CodeInternalServerError, "internal server error")
		}

		c.Locals(domainLocalsKey, domain)
		return c.Next()
	}
}

// DomainFromContext returns the domain bound by DomainContext.
func DomainFromContext(c *fiber.Ctx) (models.Domain, bool) {
	domain, ok := c.Locals(domainLocalsKey).(models.Domain)
	return domain, ok
}

// EnsurePermission authorizes the acting user for one domain-scoped
// permission before the guarded handler runs.
func EnsurePermission(checker service.PermissionChecker, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(uint)
		if !ok || userID == 0 {
			return utils.SendErrorCode(c, utils.CodeUnauthorized, "authentication required")
		}

		domain, ok := DomainFromContext(c)
		if !ok {
			return utils.SendErrorCode(c, utils.CodeDomainNotFound, "domain not resolved")
		}

		allowed, err := checker.HasPermission(c.Context(), userID, domain.ID, permission)
		if err != nil {
			return utils.SendErrorCode(c, utils.CodeInternalServerError, "internal server error")
		}
		if !allowed {
			return utils.SendErrorCode(c, utils.CodePermissionDenied, "insufficient permissions")
		}

		return c.Next()
	}
}
