package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
)

type auditRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAuditRepository creates a new audit trail repository
func NewAuditRepository(db *gorm.DB, logger *zap.Logger) repository.AuditRepository {
	return &auditRepository{db: db, logger: logger}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		r.logger.Error("Failed to create audit entry",
			zap.String("table", entry.Table),
			zap.String("action", entry.Action),
			zap.Error(err))
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		r.logger.Error("Failed to list audit entries", zap.Error(err))
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
