package repository

import (
	"context"

	"github.com/crors-digital/calltrack/internal/domain/model"
)

// ProfessionalRepository persists the imported professional registry.
type ProfessionalRepository interface {
	// ReplaceAll atomically swaps the registry contents for a new import.
	ReplaceAll(ctx context.Context, professionals []model.Professional) error
	// SearchByRegistration matches the registration number exactly.
	SearchByRegistration(ctx context.Context, registration string, limit int) ([]model.Professional, error)
	// SearchFreeText matches name, category, cpf or email, case-insensitive.
	SearchFreeText(ctx context.Context, query string, limit int) ([]model.Professional, error)
	Count(ctx context.Context) (int64, error)
}
