package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openjudge-io/judge-api/internal/config"
	"github.com/openjudge-io/judge-api/internal/handler"
	"github.com/openjudge-io/judge-api/internal/middleware"
	"github.com/openjudge-io/judge-api/internal/observability"
	"github.com/openjudge-io/judge-api/internal/repository"
	"github.com/openjudge-io/judge-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProblemSetHandler *handler.ProblemSetHandler
	DomainRepo        repository.DomainRepository
	PermissionChecker service.PermissionChecker
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.ProblemSetHandler != nil {
		gate := func(permission string) fiber.Handler {
			return middleware.EnsurePermission(deps.PermissionChecker, permission)
		}

		domain := api.Group("/domains/:domain",
			jwtMiddleware,
			middleware.DomainContext(deps.DomainRepo),
		)

		sets := domain.Group("/problem_sets")
		scoreboardLimit := middleware.RateLimit("scoreboard", cfg.ScoreboardRateMax, cfg.ScoreboardRateWin)
		deps.ProblemSetHandler.Register(sets, gate, scoreboardLimit)
	}
}
