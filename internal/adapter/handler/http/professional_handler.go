package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/middleware/auth"
	"github.com/crors-digital/calltrack/internal/usecase"
)

// maxImportSize bounds registry uploads to 10 MiB.
const maxImportSize = 10 << 20

// ProfessionalHandler serves registry import and lookup.
type ProfessionalHandler struct {
	professionals *usecase.ProfessionalImportService
	logger        *zap.Logger
}

// NewProfessionalHandler creates a new professional registry handler
func NewProfessionalHandler(professionals *usecase.ProfessionalImportService, logger *zap.Logger) *ProfessionalHandler {
	return &ProfessionalHandler{professionals: professionals, logger: logger}
}

// Import answers POST /upload-csv-profissionais: replaces the registry
// with the uploaded CSV or Excel spreadsheet.
func (h *ProfessionalHandler) Import(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceProfessionals, usecase.ActionImport)
	if identity == nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Nenhum arquivo enviado"})
	}
	if fileHeader.Size > maxImportSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Arquivo muito grande"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded registry file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao processar arquivo"})
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		h.logger.Error("Failed to read uploaded registry file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao processar arquivo"})
	}

	count, batch, err := h.professionals.Import(c.Request().Context(), fileHeader.Filename, content)
	if err != nil {
		h.logger.Error("Failed to import professional registry",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Erro ao importar arquivo de profissionais"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("%d profissionais importados com sucesso", count),
		"total":   count,
		"lote":    batch.String(),
	})
}

// Search answers GET /api/pesquisar-profissional?q=. Numeric queries match
// the registration number, anything else searches name and free text.
func (h *ProfessionalHandler) Search(c echo.Context) error {
	identity, err := auth.RequirePermission(c, usecase.ResourceProfessionals, usecase.ActionRead)
	if identity == nil {
		return err
	}

	results, err := h.professionals.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		h.logger.Error("Failed to search professional registry", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao pesquisar profissionais"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"resultados": results,
		"total":      len(results),
	})
}
