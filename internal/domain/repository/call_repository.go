package repository

import (
	"context"

	"github.com/crors-digital/calltrack/internal/domain/model"
)

// CallRepository persists call records.
type CallRepository interface {
	Create(ctx context.Context, call *model.Call) error
	GetByID(ctx context.Context, id int64) (*model.Call, error)
	// ListRecent returns the newest calls first, up to limit.
	ListRecent(ctx context.Context, limit int) ([]model.Call, error)
	// Samples returns the (timestamp, category, attendant) projection of
	// every call, for report aggregation.
	Samples(ctx context.Context) ([]model.CallSample, error)
	// ListAll returns every call, newest first, for detailed exports.
	ListAll(ctx context.Context) ([]model.Call, error)
	Update(ctx context.Context, call *model.Call) error
	Delete(ctx context.Context, id int64) error
}
