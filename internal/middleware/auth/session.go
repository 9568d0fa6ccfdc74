package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/usecase"
)

const identityContextKey = "authenticated_identity"

// SessionConfig holds the configuration for the session middleware
type SessionConfig struct {
	Sessions   usecase.SessionStore
	CookieName string
	Logger     *zap.Logger
	// SkipPaths are served without authentication.
	SkipPaths []string
}

// SessionMiddleware resolves the session cookie into an identity. A missing
// cookie and an unknown or expired token are treated identically:
// interactive routes are redirected to /login, /api routes get 401.
func SessionMiddleware(config SessionConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, skipPath := range config.SkipPaths {
				if path == skipPath {
					return next(c)
				}
			}

			token := ""
			if cookie, err := c.Cookie(config.CookieName); err == nil {
				token = cookie.Value
			}

			identity, ok := config.Sessions.Resolve(c.Request().Context(), token)
			if !ok {
				config.Logger.Debug("Unauthenticated request",
					zap.String("path", path),
					zap.String("method", c.Request().Method))
				if strings.HasPrefix(path, "/api/") {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "Não autorizado",
					})
				}
				return c.Redirect(http.StatusFound, "/login")
			}

			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// CurrentIdentity extracts the authenticated identity from the context.
func CurrentIdentity(c echo.Context) (*usecase.Identity, error) {
	identity, ok := c.Get(identityContextKey).(*usecase.Identity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("no authenticated identity in context")
	}
	return identity, nil
}

// RequirePermission returns the identity when it may perform action on
// resource, or replies 403 and returns an error the handler propagates.
func RequirePermission(c echo.Context, resource, action string) (*usecase.Identity, error) {
	identity, err := CurrentIdentity(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, echo.Map{
			"error": "Não autorizado",
		})
	}
	if !usecase.Allowed(identity.Role, resource, action) {
		return nil, c.JSON(http.StatusForbidden, echo.Map{
			"error": "Acesso negado",
		})
	}
	return identity, nil
}
