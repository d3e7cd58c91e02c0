package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"go-inventory-qr/internal/middleware"
	"go-inventory-qr/internal/response"
	"go-inventory-qr/internal/service"
	"go-inventory-qr/pkg/config"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
)

type AuthHandler struct {
	authService service.AuthService
	cfg         config.AuthConfig
	logg        *logger.Logger
}

func NewAuthHandler(authService service.AuthService, cfg config.AuthConfig, logg *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg, logg: logg}
}

// RegisterRequest represents the registration body
type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Register creates a pending account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, h.logg, invalidBody())
	}
	user, err := h.authService.Register(c.UserContext(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		return response.Error(c, h.logg, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration received. An administrator must approve it before you can sign in.",
		"data":    user.ToResponse(),
	})
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, h.logg, invalidBody())
	}
	resp, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return response.Error(c, h.logg, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(resp)
}

// Logout always succeeds and clears the session cookie.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if user := middleware.CurrentUser(c); user != nil {
		if err := h.authService.Logout(c.UserContext(), user.ID); err != nil {
			h.logg.Warn(c.UserContext(), "failed to rotate session on logout", err)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the signed-in user.
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Error(c, h.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
	}
	return c.JSON(user.ToResponse())
}
