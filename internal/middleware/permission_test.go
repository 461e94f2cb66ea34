package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openjudge-io/judge-api/internal/models"
)

type stubDomainRepo struct {
	domains map[string]models.Domain
}

func (s *stubDomainRepo) GetByRef(_ context.Context, ref string) (models.Domain, error) {
	domain, ok := s.domains[ref]
	if !ok {
		return models.Domain{}, gorm.ErrRecordNotFound
	}
	return domain, nil
}

func (s *stubDomainRepo) ListMembers(context.Context, uint) ([]models.DomainUser, error) {
	return nil, nil
}

func (s *stubDomainRepo) GetMember(context.Context, uint, uint) (models.DomainUser, error) {
	return models.DomainUser{}, gorm.ErrRecordNotFound
}

type stubChecker struct {
	allowed map[uint]bool
	calls   int
}

func (s *stubChecker) HasPermission(_ context.Context, userID, _ uint, _ string) (bool, error) {
	s.calls++
	return s.allowed[userID], nil
}

func newPermissionTestApp(checker *stubChecker, userID uint) *fiber.App {
	repo := &stubDomainRepo{domains: map[string]models.Domain{
		"algo-101": {ID: 1, URL: "algo-101", Name: "Algorithms"},
	}}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != 0 {
			c.Locals("user_id", userID)
		}
		return c.Next()
	})
	app.Get("/domains/:domain/guarded",
		DomainContext(repo),
		EnsurePermission(checker, models.PermDomainProblemView),
		func(c *fiber.Ctx) error {
			domain, _ := DomainFromContext(c)
			return c.JSON(fiber.Map{"domain_id": domain.ID})
		})
	return app
}

func TestEnsurePermissionAllowsAuthorizedUser(t *testing.T) {
	checker := &stubChecker{allowed: map[uint]bool{42: true}}
	app := newPermissionTestApp(checker, 42)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/algo-101/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, checker.calls)
}

func TestEnsurePermissionRejectsUnauthorizedUser(t *testing.T) {
	checker := &stubChecker{allowed: map[uint]bool{}}
	app := newPermissionTestApp(checker, 42)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/algo-101/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestEnsurePermissionRequiresAuthentication(t *testing.T) {
	checker := &stubChecker{allowed: map[uint]bool{42: true}}
	app := newPermissionTestApp(checker, 0)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/algo-101/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Zero(t, checker.calls, "permission check must not run for anonymous requests")
}

func TestDomainContextRejectsUnknownDomain(t *testing.T) {
	checker := &stubChecker{allowed: map[uint]bool{42: true}}
	app := newPermissionTestApp(checker, 42)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/domains/unknown/guarded", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
