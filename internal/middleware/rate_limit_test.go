package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/openjudge-io/judge-api/internal/utils"
)

func TestRateLimitRepliesWithEnvelopeWhenExceeded(t *testing.T) {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", uint(7))
		return c.Next()
	})
	app.Get("/limited", RateLimit("test", 1, time.Minute), func(c *fiber.Ctx) error {
		return utils.SendEmpty(c)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope utils.StandardResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.Equal(t, utils.CodeTooManyRequests, envelope.ErrorCode)
}

func TestRateLimitKeysUsersSeparately(t *testing.T) {
	userID := uint(1)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/limited", RateLimit("test", 1, time.Minute), func(c *fiber.Ctx) error {
		return utils.SendEmpty(c)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A different user gets their own window.
	userID = 2
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
