package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
	"github.com/crors-digital/calltrack/internal/middleware/auth"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// ExportHandler serves report downloads under /api/export.
type ExportHandler struct {
	calls    repository.CallRepository
	location *time.Location
	logger   *zap.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(calls repository.CallRepository, location *time.Location, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{calls: calls, location: location, logger: logger}
}

func (h *ExportHandler) filteredCalls(c echo.Context) ([]model.Call, error) {
	calls, err := h.calls.ListAll(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return usecase.FilterCalls(calls, parseFilter(c), h.location), nil
}

// CSV answers GET /api/export/csv with a downloadable CSV report. The
// tipo query parameter selects the summary or detailed layout.
func (h *ExportHandler) CSV(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceReports, usecase.ActionExport)
	if identity == nil {
		return err
	}

	reportType := exportType(c)
	calls, err := h.filteredCalls(c)
	if err != nil {
		h.logger.Error("Failed to load calls for csv export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar exportação"})
	}

	data, err := usecase.BuildCSV(calls, reportType, h.location)
	if err != nil {
		h.logger.Error("Failed to build csv export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar exportação"})
	}

	filename := usecase.ExportFilename(reportType, "csv", time.Now())
	h.logger.Info("CSV export generated",
		zap.String("type", reportType),
		zap.Int("rows", len(calls)),
		zap.String("user", identity.Username))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}

// PDF answers GET /api/export/pdf with a downloadable PDF report.
func (h *ExportHandler) PDF(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceReports, usecase.ActionExport)
	if identity == nil {
		return err
	}

	reportType := exportType(c)
	calls, err := h.filteredCalls(c)
	if err != nil {
		h.logger.Error("Failed to load calls for pdf export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar exportação"})
	}

	data, err := usecase.BuildPDF(calls, reportType, parseFilter(c), h.location, time.Now())
	if err != nil {
		h.logger.Error("Failed to build pdf export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar exportação"})
	}

	filename := usecase.ExportFilename(reportType, "pdf", time.Now())
	h.logger.Info("PDF export generated",
		zap.String("type", reportType),
		zap.Int("rows", len(calls)),
		zap.String("user", identity.Username))

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func exportType(c echo.Context) string {
	if c.QueryParam("tipo") == usecase.ExportDetailed {
		return usecase.ExportDetailed
	}
	return usecase.ExportByCategory
}
