package auth

import (
	"github.com/gofiber/fiber/v2"
)

// CookieName is the transport slot for the session token.
const CookieName = "token"

const userIDKey = "auth_user_id"

// Guard redirects unauthenticated requests on protected routes to the login
// page. A missing cookie is rejected without attempting validation; expired
// and forged tokens both redirect the same way so the client never learns
// which check failed.
type Guard struct {
	tokens *TokenManager
}

// NewGuard constructs the middleware.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (g *Guard) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(CookieName)
	if cookie == "" {
		return c.Redirect("/login", fiber.StatusFound)
	}

	userID, err := g.tokens.Validate(cookie)
	if err != nil {
		return c.Redirect("/login", fiber.StatusFound)
	}

	c.Locals(userIDKey, userID)
	return c.Next()
}

// UserIDFromContext retrieves the authenticated user id set by the guard.
func UserIDFromContext(c *fiber.Ctx) (int64, bool) {
	val := c.Locals(userIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}
