package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/repository"
	"github.com/crors-digital/calltrack/internal/middleware/auth"
	"github.com/crors-digital/calltrack/internal/usecase"
)

const auditListLimit = 200

// AuditHandler exposes the read side of the audit trail.
type AuditHandler struct {
	audit  repository.AuditRepository
	logger *zap.Logger
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit repository.AuditRepository, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, logger: logger}
}

// List answers GET /api/historico with the most recent audit entries.
func (h *AuditHandler) List(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceAudit, usecase.ActionRead)
	if identity == nil {
		return err
	}

	entries, err := h.audit.ListRecent(c.Request().Context(), auditListLimit)
	if err != nil {
		h.logger.Error("Failed to list audit entries", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao listar histórico"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"historico": entries,
		"total":     len(entries),
	})
}
