package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/crors-digital/calltrack/internal/adapter/handler/http"
	"github.com/crors-digital/calltrack/internal/config"
	"github.com/crors-digital/calltrack/internal/infrastructure/database"
	"github.com/crors-digital/calltrack/internal/middleware/auth"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// formValidator adapts go-playground/validator to echo's Validator hook.
type formValidator struct {
	validate *validator.Validate
}

func (v *formValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	echo     *echo.Echo
	repos    *database.Repositories
	sessions usecase.SessionStore
	location *time.Location
}

func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, sessions usecase.SessionStore, location *time.Location) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &formValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Service.ClientURL},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE},
		AllowCredentials: true,
	}))

	return &Server{
		config:   cfg,
		logger:   logger,
		echo:     e,
		repos:    repos,
		sessions: sessions,
		location: location,
	}
}

func (s *Server) Start() error {
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.HTTP.Host, s.config.Server.HTTP.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Initialize usecases and handlers
	authUsecase := usecase.NewAuthUsecase(s.repos.User, s.repos.Audit, s.sessions, s.logger)
	callService := usecase.NewCallService(s.repos.Call, s.repos.Audit, s.logger)
	professionalService := usecase.NewProfessionalImportService(s.repos.Professional, s.logger)

	authHandler := handlers.NewAuthHandler(authUsecase, s.config.Session, s.logger)
	callHandler := handlers.NewCallHandler(callService, s.logger)
	reportHandler := handlers.NewReportHandler(s.repos.Call, s.location, s.logger)
	exportHandler := handlers.NewExportHandler(s.repos.Call, s.location, s.logger)
	professionalHandler := handlers.NewProfessionalHandler(professionalService, s.logger)
	auditHandler := handlers.NewAuditHandler(s.repos.Audit, s.logger)

	// Everything but the health check and the login flow requires a
	// valid session.
	s.echo.Use(auth.SessionMiddleware(auth.SessionConfig{
		Sessions:   s.sessions,
		CookieName: s.config.Session.CookieName,
		Logger:     s.logger,
		SkipPaths: []string{
			"/health",
			"/login",
		},
	}))

	// Authentication
	s.echo.GET("/login", authHandler.LoginForm)
	s.echo.POST("/login", authHandler.Login)
	s.echo.POST("/logout", authHandler.Logout)

	// Call records
	s.echo.GET("/ligacoes", callHandler.List)
	s.echo.GET("/ligacoes/:id", callHandler.Get)
	s.echo.POST("/cadastrar", callHandler.Create)
	s.echo.POST("/editar/:id", callHandler.Update)
	s.echo.POST("/excluir/:id", callHandler.Delete)

	// Aggregated statistics
	stats := s.echo.Group("/api/stats")
	stats.GET("/por_duvida", reportHandler.ByCategory)
	stats.GET("/por_dia", reportHandler.ByDay)
	stats.GET("/comparativo_periodo", reportHandler.ByPeriod)
	stats.GET("/pico_horarios", reportHandler.ByHour)
	stats.GET("/por_atendente", reportHandler.ByAttendant)

	// Report downloads
	export := s.echo.Group("/api/export")
	export.GET("/csv", exportHandler.CSV)
	export.GET("/pdf", exportHandler.PDF)

	// Professional registry
	s.echo.POST("/upload-csv-profissionais", professionalHandler.Import)
	s.echo.GET("/api/pesquisar-profissional", professionalHandler.Search)

	// Audit trail
	s.echo.GET("/api/historico", auditHandler.List)
}
