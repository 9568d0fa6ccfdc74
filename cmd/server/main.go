package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/config"
	"github.com/crors-digital/calltrack/internal/infrastructure/database"
	httpServer "github.com/crors-digital/calltrack/internal/infrastructure/http"
	"github.com/crors-digital/calltrack/internal/usecase"
	"github.com/crors-digital/calltrack/pkg/logger"
)

func main() {
	// Load .env if present; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	location, err := time.LoadLocation(cfg.Reports.Timezone)
	if err != nil {
		zapLogger.Fatal("Failed to load report time zone",
			zap.String("timezone", cfg.Reports.Timezone),
			zap.Error(err))
	}

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run database migrations and seed the staff roster on first boot
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db, zapLogger)

	if err := database.SeedRoster(context.Background(), repos.User, cfg.Auth, zapLogger); err != nil {
		zapLogger.Fatal("Failed to seed staff roster", zap.Error(err))
	}

	// Select the session backend
	var sessions usecase.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		sessions = usecase.NewRedisSessionStore(client, cfg.Session.TTL.Std(), zapLogger)
		zapLogger.Info("Using redis session store", zap.String("addr", cfg.Session.Redis.Addr))
	default:
		memStore := usecase.NewMemorySessionStore(cfg.Session.TTL.Std(), zapLogger)
		defer memStore.Close()
		sessions = memStore
		zapLogger.Info("Using in-memory session store")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	httpSrv := httpServer.NewServer(cfg, zapLogger, repos, sessions, location)

	go func() {
		if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down server...")

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Server shut down successfully")
}
