package repository

import (
	"context"

	"github.com/crors-digital/calltrack/internal/domain/model"
)

// AuditRepository is the append-only audit trail. There is deliberately no
// update or delete.
type AuditRepository interface {
	Create(ctx context.Context, entry *model.AuditEntry) error
	ListRecent(ctx context.Context, limit int) ([]model.AuditEntry, error)
}
