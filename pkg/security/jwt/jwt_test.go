package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mkrivosheev/resume-scorer/pkg/auth"
)

func testApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("userId"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/recruiter", NewAuthMiddleware(secret, issuer), RequireRole(string(auth.RoleRecruiter)), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func issueToken(t *testing.T, secret, issuer string, role auth.Role) string {
	t.Helper()
	gen := NewGenerator(secret, issuer, time.Minute)
	token, err := gen.Generate(context.Background(), auth.User{ID: uuid.New(), Role: role})
	require.NoError(t, err)
	return token
}

func TestMiddlewareAcceptsToken(t *testing.T) {
	app := testApp("s3cret", "resume-scorer")
	token := issueToken(t, "s3cret", "resume-scorer", auth.RoleSeeker)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	app := testApp("s3cret", "resume-scorer")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsWrongIssuer(t *testing.T) {
	app := testApp("s3cret", "resume-scorer")
	token := issueToken(t, "s3cret", "someone-else", auth.RoleSeeker)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	app := testApp("s3cret", "resume-scorer")
	token := issueToken(t, "other-secret", "resume-scorer", auth.RoleSeeker)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRole(t *testing.T) {
	app := testApp("s3cret", "resume-scorer")

	recruiter := issueToken(t, "s3cret", "resume-scorer", auth.RoleRecruiter)
	req := httptest.NewRequest(http.MethodGet, "/recruiter", nil)
	req.Header.Set("Authorization", "Bearer "+recruiter)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	seeker := issueToken(t, "s3cret", "resume-scorer", auth.RoleSeeker)
	req = httptest.NewRequest(http.MethodGet, "/recruiter", nil)
	req.Header.Set("Authorization", "Bearer "+seeker)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
