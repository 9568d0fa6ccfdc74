package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/config"
	domainErrors "github.com/crors-digital/calltrack/internal/domain/errors"
	"github.com/crors-digital/calltrack/internal/usecase"
)

type loginRequest struct {
	Username string `form:"username" validate:"required,max=50"`
	Password string `form:"password" validate:"required"`
}

// AuthHandler serves login and logout.
type AuthHandler struct {
	auth   *usecase.AuthUsecase
	cfg    config.SessionConfig
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *usecase.AuthUsecase, cfg config.SessionConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, cfg: cfg, logger: logger}
}

// LoginForm answers GET /login for clients that land there unauthenticated.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Informe usuário e senha em POST /login",
	})
}

// Login checks credentials, sets the session cookie and redirects home.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requisição inválida"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Usuário e senha são obrigatórios"})
	}

	token, identity, err := h.auth.Login(c.Request().Context(), req.Username, req.Password, c.RealIP())
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidCredentials) {
			h.logger.Info("Login rejected", zap.String("username", req.Username))
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Usuário ou senha incorretos",
			})
		}
		h.logger.Error("Login failed",
			zap.String("username", req.Username),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro interno"})
	}

	h.logger.Info("User logged in",
		zap.String("username", identity.Username),
		zap.String("role", string(identity.Role)))

	c.SetCookie(h.sessionCookie(token, 0))
	return c.Redirect(http.StatusFound, "/ligacoes")
}

// Logout invalidates the session and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cfg.CookieName); err == nil {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value, c.RealIP()); err != nil {
			h.logger.Warn("Logout failed", zap.Error(err))
		}
	}

	expired := h.sessionCookie("", -1)
	c.SetCookie(expired)
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
