package database

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crors-digital/calltrack/internal/config"
	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// Migrate runs database migrations
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&model.Call{},
		&model.User{},
		&model.AuditEntry{},
		&model.Professional{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db, logger); err != nil {
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes covers the lookups GORM tags cannot express.
func createCustomIndexes(db *gorm.DB, logger *zap.Logger) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_ligacoes_duvida_created ON ligacoes (duvida, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_ligacoes_atendente ON ligacoes (atendente)`,
		`CREATE INDEX IF NOT EXISTS idx_profissionais_nome_lower ON profissionais_aptos (lower(nome))`,
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logger.Error("Failed to create index", zap.String("sql", index), zap.Error(err))
			return err
		}
	}
	return nil
}

// SeedRoster creates the configured staff accounts on a fresh database.
// An already-populated users table is left untouched so redeploys never
// reset passwords or roles.
func SeedRoster(ctx context.Context, users repository.UserRepository, cfg config.AuthConfig, logger *zap.Logger) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("User table already populated, skipping roster seed", zap.Int64("users", count))
		return nil
	}

	seed, err := usecase.RosterUsers(cfg)
	if err != nil {
		return err
	}
	if len(seed) == 0 {
		logger.Warn("Roster is empty, no users seeded")
		return nil
	}

	if err := users.CreateBatch(ctx, seed); err != nil {
		return err
	}

	logger.Info("Seeded staff roster", zap.Int("users", len(seed)))
	return nil
}
