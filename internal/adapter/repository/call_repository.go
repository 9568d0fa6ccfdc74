package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainErrors "github.com/crors-digital/calltrack/internal/domain/errors"
	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
)

type callRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCallRepository creates a new call repository
func NewCallRepository(db *gorm.DB, logger *zap.Logger) repository.CallRepository {
	return &callRepository{db: db, logger: logger}
}

func (r *callRepository) Create(ctx context.Context, call *model.Call) error {
	if err := r.db.WithContext(ctx).Create(call).Error; err != nil {
		r.logger.Error("Failed to create call",
			zap.String("cro", call.Registration),
			zap.Error(err))
		return fmt.Errorf("failed to create call: %w", err)
	}
	return nil
}

func (r *callRepository) GetByID(ctx context.Context, id int64) (*model.Call, error) {
	var call model.Call
	err := r.db.WithContext(ctx).First(&call, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainErrors.ErrNotFound
		}
		r.logger.Error("Failed to get call",
			zap.Int64("id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get call: %w", err)
	}
	return &call, nil
}

func (r *callRepository) ListRecent(ctx context.Context, limit int) ([]model.Call, error) {
	var calls []model.Call
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&calls).Error
	if err != nil {
		r.logger.Error("Failed to list calls", zap.Error(err))
		return nil, fmt.Errorf("failed to list calls: %w", err)
	}
	return calls, nil
}

func (r *callRepository) Samples(ctx context.Context) ([]model.CallSample, error) {
	var calls []model.Call
	err := r.db.WithContext(ctx).
		Select("created_at", "duvida", "atendente").
		Find(&calls).Error
	if err != nil {
		r.logger.Error("Failed to load call samples", zap.Error(err))
		return nil, fmt.Errorf("failed to load call samples: %w", err)
	}

	samples := make([]model.CallSample, 0, len(calls))
	for i := range calls {
		samples = append(samples, calls[i].Sample())
	}
	return samples, nil
}

func (r *callRepository) ListAll(ctx context.Context) ([]model.Call, error) {
	var calls []model.Call
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Find(&calls).Error
	if err != nil {
		r.logger.Error("Failed to list all calls", zap.Error(err))
		return nil, fmt.Errorf("failed to list all calls: %w", err)
	}
	return calls, nil
}

func (r *callRepository) Update(ctx context.Context, call *model.Call) error {
	result := r.db.WithContext(ctx).
		Model(&model.Call{}).
		Where("id = ?", call.ID).
		Updates(map[string]interface{}{
			"cro":           call.Registration,
			"nome_inscrito": call.RegistrantName,
			"duvida":        call.Category,
			"observacao":    call.Note,
			"atendente":     call.Attendant,
		})
	if result.Error != nil {
		r.logger.Error("Failed to update call",
			zap.Int64("id", call.ID),
			zap.Error(result.Error))
		return fmt.Errorf("failed to update call: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *callRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Call{}, id)
	if result.Error != nil {
		r.logger.Error("Failed to delete call",
			zap.Int64("id", id),
			zap.Error(result.Error))
		return fmt.Errorf("failed to delete call: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
