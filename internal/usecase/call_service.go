package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
)

// CallInput is the mutable part of a call record, as submitted by forms.
type CallInput struct {
	Registration   string `form:"cro" validate:"required,max=50"`
	RegistrantName string `form:"nome_inscrito" validate:"required,max=255"`
	Category       string `form:"duvida" validate:"required"`
	Note           string `form:"observacao" validate:"max=1000"`
}

// CallService implements call record CRUD with audit mirroring.
type CallService struct {
	calls  repository.CallRepository
	audit  repository.AuditRepository
	logger *zap.Logger
}

// NewCallService creates a new call service
func NewCallService(calls repository.CallRepository, audit repository.AuditRepository, logger *zap.Logger) *CallService {
	return &CallService{calls: calls, audit: audit, logger: logger}
}

// Log records a new call. The category is coerced onto the fixed set, the
// attendant is taken from the authenticated identity.
func (s *CallService) Log(ctx context.Context, identity *Identity, input CallInput) (*model.Call, error) {
	call := &model.Call{
		Registration:   strings.TrimSpace(input.Registration),
		RegistrantName: strings.TrimSpace(input.RegistrantName),
		Category:       model.CoerceCategory(strings.TrimSpace(input.Category)),
		Note:           strings.TrimSpace(input.Note),
		Attendant:      identity.FullName,
	}

	if err := s.calls.Create(ctx, call); err != nil {
		return nil, err
	}

	s.mirrorAudit(ctx, identity, call.ID, model.AuditActionCreate, nil, call, "Nova ligação cadastrada")
	return call, nil
}

// Get returns one call by id.
func (s *CallService) Get(ctx context.Context, id int64) (*model.Call, error) {
	return s.calls.GetByID(ctx, id)
}

// ListRecent returns the newest calls, up to limit.
func (s *CallService) ListRecent(ctx context.Context, limit int) ([]model.Call, error) {
	return s.calls.ListRecent(ctx, limit)
}

// Update edits an existing call. Last write wins; concurrent editors are
// not detected.
func (s *CallService) Update(ctx context.Context, identity *Identity, id int64, input CallInput) (*model.Call, error) {
	prior, err := s.calls.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *prior
	updated.Registration = strings.TrimSpace(input.Registration)
	updated.RegistrantName = strings.TrimSpace(input.RegistrantName)
	updated.Category = model.CoerceCategory(strings.TrimSpace(input.Category))
	updated.Note = strings.TrimSpace(input.Note)

	if err := s.calls.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.mirrorAudit(ctx, identity, id, model.AuditActionUpdate, prior, &updated, "Ligação editada")
	return &updated, nil
}

// Delete removes a call permanently. There is no soft delete.
func (s *CallService) Delete(ctx context.Context, identity *Identity, id int64) error {
	prior, err := s.calls.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.calls.Delete(ctx, id); err != nil {
		return err
	}

	s.mirrorAudit(ctx, identity, id, model.AuditActionDelete, prior, nil, "Ligação excluída")
	return nil
}

// mirrorAudit appends an audit entry for a call mutation. Audit failures
// are logged, never propagated: the record write already succeeded.
func (s *CallService) mirrorAudit(ctx context.Context, identity *Identity, recordID int64, action string, prior, current *model.Call, description string) {
	entry := &model.AuditEntry{
		UserID:      identity.UserID,
		Table:       model.Call{}.TableName(),
		RecordID:    recordID,
		Action:      action,
		OldValues:   callSnapshot(prior),
		NewValues:   callSnapshot(current),
		Description: description,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to mirror call audit entry",
			zap.Int64("record_id", recordID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func callSnapshot(call *model.Call) string {
	if call == nil {
		return ""
	}
	snapshot, err := json.Marshal(map[string]string{
		"cro":           call.Registration,
		"nome_inscrito": call.RegistrantName,
		"duvida":        call.Category,
		"observacao":    call.Note,
		"atendente":     call.Attendant,
	})
	if err != nil {
		return ""
	}
	return string(snapshot)
}
