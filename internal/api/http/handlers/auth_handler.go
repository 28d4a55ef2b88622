package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/auth"
	"github.com/spec-kit/shift-scheduler/internal/service"
	"github.com/spec-kit/shift-scheduler/internal/view"
)

// AuthHandler exposes registration, login, logout and the protected page.
type AuthHandler struct {
	auth  *service.AuthService
	views *view.Renderer
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, views *view.Renderer) *AuthHandler {
	return &AuthHandler{auth: authService, views: views}
}

// RegisterForm handles GET /register.
func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return h.views.Render(c, "register.html", nil)
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	if _, err := h.auth.Register(c.UserContext(), req.Username, req.Password); err != nil {
		return err
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// LoginForm handles GET /login.
func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return h.views.Render(c, "login.html", nil)
}

// Login handles POST /login. On success the signed session token is placed in
// the token cookie and the client is sent to the protected page.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	token, _, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:  auth.CookieName,
		Value: token,
	})
	return c.Redirect("/protected", fiber.StatusFound)
}

// Protected handles GET /protected behind the guard.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return c.Redirect("/login", fiber.StatusFound)
	}
	return h.views.Render(c, "protected.html", fiber.Map{"UserID": userID})
}

// Logout handles GET /logout. Only the client-held cookie is removed; an
// already issued token stays valid until it expires.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.ClearCookie(auth.CookieName)
	return c.Redirect("/login", fiber.StatusFound)
}
