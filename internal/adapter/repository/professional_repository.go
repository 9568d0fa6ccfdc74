package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
)

type professionalRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewProfessionalRepository creates a new professional registry repository
func NewProfessionalRepository(db *gorm.DB, logger *zap.Logger) repository.ProfessionalRepository {
	return &professionalRepository{db: db, logger: logger}
}

// ReplaceAll deletes the previous import and inserts the new rows in a
// single transaction so search never observes a half-imported registry.
func (r *professionalRepository) ReplaceAll(ctx context.Context, professionals []model.Professional) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Professional{}).Error; err != nil {
			return err
		}
		if len(professionals) == 0 {
			return nil
		}
		return tx.CreateInBatches(&professionals, 500).Error
	})
	if err != nil {
		r.logger.Error("Failed to replace professional registry",
			zap.Int("count", len(professionals)),
			zap.Error(err))
		return fmt.Errorf("failed to replace professional registry: %w", err)
	}
	return nil
}

func (r *professionalRepository) SearchByRegistration(ctx context.Context, registration string, limit int) ([]model.Professional, error) {
	var results []model.Professional
	err := r.db.WithContext(ctx).
		Where("numero_cro = ?", registration).
		Limit(limit).
		Find(&results).Error
	if err != nil {
		r.logger.Error("Failed to search professionals by registration",
			zap.String("registration", registration),
			zap.Error(err))
		return nil, fmt.Errorf("failed to search professionals: %w", err)
	}
	return results, nil
}

func (r *professionalRepository) SearchFreeText(ctx context.Context, query string, limit int) ([]model.Professional, error) {
	var results []model.Professional
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("nome ILIKE ? OR numero_cro = ? OR categoria ILIKE ? OR cpf ILIKE ? OR email ILIKE ?",
			pattern, query, pattern, pattern, pattern).
		Limit(limit).
		Find(&results).Error
	if err != nil {
		r.logger.Error("Failed to search professionals",
			zap.String("query", query),
			zap.Error(err))
		return nil, fmt.Errorf("failed to search professionals: %w", err)
	}
	return results, nil
}

func (r *professionalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Professional{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count professionals: %w", err)
	}
	return count, nil
}
