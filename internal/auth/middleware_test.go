package auth

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkit/shop-service/internal/domain"
	"github.com/shopkit/shop-service/internal/repository"
	apperrors "github.com/shopkit/shop-service/pkg/util/errorutil"
)

func newProtectedApp(t *testing.T) (*fiber.App, *TokenManager, *domain.User) {
	t.Helper()

	users := repository.NewMemoryUserRepository()
	user := &domain.User{Firstname: "John", Lastname: "Doe", Email: "john@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(context.Background(), user))

	tokens := NewTokenManager("test-secret", time.Hour)
	mw := NewAuthMiddleware(tokens, users)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(apperrors.ToDomainError(err).HTTPStatus).SendString(err.Error())
		},
	})
	app.Get("/me", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(principal.User.Email + "|" + principal.Claims.ID)
	})
	return app, tokens, user
}

func TestAuthMiddleware_LoadsPrincipal(t *testing.T) {
	app, tokens, user := newProtectedApp(t)

	token, _, err := tokens.GenerateToken(user)
	require.NoError(t, err)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, user.Email+"|"+user.ID, string(body))
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	app, _, user := newProtectedApp(t)

	foreign, _, err := NewTokenManager("other-secret", time.Hour).GenerateToken(user)
	require.NoError(t, err)

	ghost := &domain.User{ID: "00000000-0000-0000-0000-000000000000", Email: "ghost@example.com"}
	_, tokens, _ := newProtectedApp(t)
	orphan, _, err := tokens.GenerateToken(ghost)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
		{"foreign signature", "Bearer " + foreign},
		{"unknown user", "Bearer " + orphan},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
