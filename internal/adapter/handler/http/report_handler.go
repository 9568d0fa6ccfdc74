package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
	"github.com/crors-digital/calltrack/internal/middleware/auth"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// ReportHandler serves the aggregation endpoints under /api/stats.
type ReportHandler struct {
	calls    repository.CallRepository
	location *time.Location
	logger   *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(calls repository.CallRepository, location *time.Location, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{calls: calls, location: location, logger: logger}
}

// parseFilter reads the shared start/end/tipos query parameters. Bad date
// values are ignored rather than rejected, keeping the charts usable.
func parseFilter(c echo.Context) usecase.ReportFilter {
	var filter usecase.ReportFilter

	if raw := c.QueryParam("start"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.Start = &t
		}
	}
	if raw := c.QueryParam("end"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			filter.End = &t
		}
	}
	if raw := c.QueryParam("tipos"); raw != "" {
		filter.Categories = make(map[string]struct{})
		for _, category := range strings.Split(raw, ",") {
			category = strings.TrimSpace(category)
			if category != "" {
				filter.Categories[category] = struct{}{}
			}
		}
	}
	return filter
}

// ByCategory answers GET /api/stats/por_duvida. Every category appears in
// the fixed order even when its count is zero.
func (h *ReportHandler) ByCategory(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceReports, usecase.ActionRead)
	if identity == nil {
		return err
	}

	samples, err := h.calls.Samples(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load samples for category report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar relatório"})
	}

	filtered := usecase.FilterLocalize(samples, parseFilter(c), h.location)
	labels, counts, total := usecase.CountByCategory(filtered, model.CategoryOptions)

	return c.JSON(http.StatusOK, echo.Map{
		"labels": labels,
		"counts": counts,
		"total":  total,
	})
}

// ByDay answers GET /api/stats/por_dia. Only dates with calls appear.
func (h *ReportHandler) ByDay(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceReports, usecase.ActionRead)
	if identity == nil {
		return err
	}

	samples, err := h.calls.Samples(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load samples for daily report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar relatório"})
	}

	filtered := usecase.FilterLocalize(samples, parseFilter(c), h.location)
	labels, counts := usecase.CountByDay(filtered)

	return c.JSON(http.StatusOK, echo.Map{
		"labels": labels,
		"counts": counts,
	})
}

// ByPeriod answers GET /api/stats/comparativo_periodo, grouping by the periodo
// query parameter (dia, semana, mes, ano).
func (h *ReportHandler) ByPeriod(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceReports, usecase.ActionRead)
	if identity == nil {
		return err
	}

	period := c.QueryParam("periodo")
	if period == "" {
		period = usecase.PeriodDay
	}

	samples, err := h.calls.Samples(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load samples for period report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar relatório"})
	}

	filtered := usecase.FilterLocalize(samples, parseFilter(c), h.location)
	labels, counts, total := usecase.CountByPeriod(filtered, period)

	return c.JSON(http.StatusOK, echo.Map{
		"labels":  labels,
		"counts":  counts,
		"total":   total,
		"periodo": period,
	})
}

// ByHour answers GET /api/stats/pico_horarios. The response always carries
// the full 24 hour slots; when the data cannot be loaded the chart gets
// the zeroed structure with HTTP 200 instead of an error payload.
func (h *ReportHandler) ByHour(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceReports, usecase.ActionRead)
	if identity == nil {
		return err
	}

	samples, err := h.calls.Samples(c.Request().Context())
	if err != nil {
		h.logger.Warn("Failed to load samples for hourly report, serving empty slots", zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{
			"labels": usecase.HourLabels(),
			"counts": make([]int, 24),
			"total":  0,
		})
	}

	labels, counts, total := usecase.CountByHourOfDay(samples, parseFilter(c), h.location)

	return c.JSON(http.StatusOK, echo.Map{
		"labels": labels,
		"counts": counts,
		"total":  total,
	})
}

// ByAttendant answers GET /api/stats/por_atendente, ordered by call count
// descending with unattributed calls grouped under a fallback name.
func (h *ReportHandler) ByAttendant(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceReports, usecase.ActionRead)
	if identity == nil {
		return err
	}

	samples, err := h.calls.Samples(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to load samples for attendant report", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao gerar relatório"})
	}

	filtered := usecase.FilterLocalize(samples, parseFilter(c), h.location)
	labels, counts, total := usecase.CountByAttendant(filtered)

	return c.JSON(http.StatusOK, echo.Map{
		"labels": labels,
		"counts": counts,
		"total":  total,
	})
}
