package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-inventory-qr/internal/model"
	"go-inventory-qr/internal/response"
	"go-inventory-qr/internal/service"
	"go-inventory-qr/pkg/config"
	pkgerrors "go-inventory-qr/pkg/errors"
	"go-inventory-qr/pkg/logger"
)

const localsUser = "user"

// CurrentUser returns the user resolved by the auth middleware, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(localsUser).(*model.User)
	return user
}

// tokenFrom reads "Authorization: Bearer <token>" first, then the session cookie.
func tokenFrom(c *fiber.Ctx, cookieName string) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(cookieName)
}

// Auth builds the session middlewares.
type Auth struct {
	authService service.AuthService
	cfg         config.AuthConfig
	logg        *logger.Logger
}

func NewAuth(authService service.AuthService, cfg config.AuthConfig, logg *logger.Logger) *Auth {
	return &Auth{authService: authService, cfg: cfg, logg: logg}
}

// resolve authenticates the request and stores the user in locals.
func (a *Auth) resolve(c *fiber.Ctx) error {
	token := tokenFrom(c, a.cfg.CookieName)
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authorization token")
	}
	user, err := a.authService.Authenticate(c.UserContext(), token)
	if err != nil {
		return err
	}
	c.Locals(localsUser, user)
	c.SetUserContext(a.logg.WithUserID(c.UserContext(), user.ID))
	return nil
}

// RequireAuth rejects requests without an active session.
func (a *Auth) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := a.resolve(c); err != nil {
			return response.Error(c, a.logg, err)
		}
		return c.Next()
	}
}

// Optional resolves the session when one is presented and never rejects.
func (a *Auth) Optional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		_ = a.resolve(c)
		return c.Next()
	}
}

// Inventory guards material and category routes according to the
// auth-required flag.
func (a *Auth) Inventory() fiber.Handler {
	if a.cfg.Required {
		return a.RequireAuth()
	}
	return a.Optional()
}

// RequireAdmin must run after RequireAuth.
func (a *Auth) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Error(c, a.logg, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
		}
		if !user.IsAdmin {
			return response.Error(c, a.logg, pkgerrors.New(pkgerrors.CodeForbidden, "administrator access required"))
		}
		return c.Next()
	}
}
