package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New()
	guard := NewGuard(tm)
	app.Get("/protected", guard.Handle, func(c *fiber.Ctx) error {
		userID, ok := UserIDFromContext(c)
		require.True(t, ok)
		return c.SendString(fmt.Sprintf("user %d", userID))
	})
	return app
}

func TestGuardMissingCookieRedirects(t *testing.T) {
	app := newGuardedApp(t, NewTokenManager("secret", 60))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestGuardInvalidCookieRedirects(t *testing.T) {
	app := newGuardedApp(t, NewTokenManager("secret", 60))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "garbage"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestGuardValidCookiePasses(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	app := newGuardedApp(t, tm)

	token, _, err := tm.Issue(9)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
