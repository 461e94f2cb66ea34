package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openjudge-io/judge-api/internal/config"
	"github.com/openjudge-io/judge-api/internal/utils"
)

var processStart = time.Now()

// HealthResponse is the payload returned by the health endpoint. Uptime is a
// human-readable duration since the process came up, which makes flapping
// deployments visible from the probe alone.
type HealthResponse struct {
	Status      string    `json:"status"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime"`
	Timestamp   time.Time `json:"timestamp"`
}

// HealthCheck reports liveness for load balancers and deploy probes.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return utils.SendData(c, HealthResponse{
			Status:      "ok",
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Uptime:      time.Since(processStart).Round(time.Second).String(),
			Timestamp:   time.Now().UTC(),
		})
	}
}
