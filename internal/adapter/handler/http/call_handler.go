package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	domainErrors "github.com/crors-digital/calltrack/internal/domain/errors"
	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/middleware/auth"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// recentCallsLimit matches the landing page of the original system.
const recentCallsLimit = 50

// CallHandler serves call record CRUD.
type CallHandler struct {
	calls  *usecase.CallService
	logger *zap.Logger
}

// NewCallHandler creates a new call handler
func NewCallHandler(calls *usecase.CallService, logger *zap.Logger) *CallHandler {
	return &CallHandler{calls: calls, logger: logger}
}

// List answers GET /ligacoes with the latest calls and the category set.
func (h *CallHandler) List(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceCalls, usecase.ActionRead)
	if identity == nil {
		return err
	}

	calls, err := h.calls.ListRecent(c.Request().Context(), recentCallsLimit)
	if err != nil {
		h.logger.Error("Failed to list calls", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao listar ligações"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ligacoes":      calls,
		"duvida_opcoes": model.CategoryOptions,
	})
}

// Get answers GET /ligacoes/:id.
func (h *CallHandler) Get(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceCalls, usecase.ActionRead)
	if identity == nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identificador inválido"})
	}

	call, err := h.calls.Get(c.Request().Context(), id)
	if err != nil {
		return h.callError(c, id, err, "Erro ao buscar ligação")
	}
	return c.JSON(http.StatusOK, call)
}

// Create answers POST /cadastrar: logs a call and redirects back to the
// list, as the original form flow did.
func (h *CallHandler) Create(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceCalls, usecase.ActionCreate)
	if identity == nil {
		return err
	}

	var input usecase.CallInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requisição inválida"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Erro ao cadastrar ligação: campos obrigatórios ausentes"})
	}

	call, err := h.calls.Log(c.Request().Context(), identity, input)
	if err != nil {
		h.logger.Error("Failed to create call", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Erro ao cadastrar ligação"})
	}

	h.logger.Info("Call logged",
		zap.Int64("id", call.ID),
		zap.String("attendant", call.Attendant))

	return c.Redirect(http.StatusSeeOther, "/ligacoes")
}

// Update answers POST /editar/:id.
func (h *CallHandler) Update(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceCalls, usecase.ActionUpdate)
	if identity == nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identificador inválido"})
	}

	var input usecase.CallInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Requisição inválida"})
	}
	if err := c.Validate(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Erro ao editar ligação: campos obrigatórios ausentes"})
	}

	if _, err := h.calls.Update(c.Request().Context(), identity, id, input); err != nil {
		return h.callError(c, id, err, "Erro ao editar ligação")
	}

	return c.Redirect(http.StatusSeeOther, "/ligacoes")
}

// Delete answers POST /excluir/:id.
func (h *CallHandler) Delete(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceCalls, usecase.ActionDelete)
	if identity == nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Identificador inválido"})
	}

	if err := h.calls.Delete(c.Request().Context(), identity, id); err != nil {
		return h.callError(c, id, err, "Erro ao excluir ligação")
	}

	return c.Redirect(http.StatusSeeOther, "/ligacoes")
}

func (h *CallHandler) callError(c echo.Context, id int64, err error, message string) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Registro não encontrado"})
	}
	h.logger.Error(message, zap.Int64("id", id), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": message})
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
