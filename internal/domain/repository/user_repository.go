package repository

import (
	"context"

	"github.com/crors-digital/calltrack/internal/domain/model"
)

// UserRepository persists staff identities.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, users []model.User) error
	TouchLastLogin(ctx context.Context, id int64) error
}
