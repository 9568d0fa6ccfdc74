package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/crors-digital/calltrack/internal/domain/model"
	"github.com/crors-digital/calltrack/internal/domain/repository"
)

// ProfessionalImportService loads registry spreadsheets and serves lookups.
type ProfessionalImportService struct {
	professionals repository.ProfessionalRepository
	logger        *zap.Logger
}

// NewProfessionalImportService creates a new import service
func NewProfessionalImportService(professionals repository.ProfessionalRepository, logger *zap.Logger) *ProfessionalImportService {
	return &ProfessionalImportService{professionals: professionals, logger: logger}
}

// Import parses the uploaded file (by extension) and replaces the registry
// contents. Returns how many rows were imported and the batch id.
func (s *ProfessionalImportService) Import(ctx context.Context, filename string, content []byte) (int, uuid.UUID, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = parseCSVRows(bytes.NewReader(content))
	case ".xls", ".xlsx":
		rows, err = parseExcelRows(bytes.NewReader(content))
	default:
		return 0, uuid.Nil, fmt.Errorf("unsupported file type %q: expected .csv, .xls or .xlsx", filepath.Ext(filename))
	}
	if err != nil {
		return 0, uuid.Nil, err
	}

	batch := uuid.New()
	professionals, err := mapRows(rows, batch)
	if err != nil {
		return 0, uuid.Nil, err
	}
	if len(professionals) == 0 {
		return 0, uuid.Nil, fmt.Errorf("spreadsheet has no data rows")
	}

	if err := s.professionals.ReplaceAll(ctx, professionals); err != nil {
		return 0, uuid.Nil, err
	}

	s.logger.Info("Imported professional registry",
		zap.Int("rows", len(professionals)),
		zap.String("batch", batch.String()),
		zap.String("filename", filename))

	return len(professionals), batch, nil
}

// Search returns registry matches for the query: numeric queries match the
// registration number exactly, anything else searches free text. Queries
// shorter than two characters return nothing.
func (s *ProfessionalImportService) Search(ctx context.Context, query string) ([]model.Professional, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < 2 {
		return []model.Professional{}, nil
	}
	if isDigits(query) {
		return s.professionals.SearchByRegistration(ctx, query, 50)
	}
	return s.professionals.SearchFreeText(ctx, query, 50)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func parseCSVRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return rows, nil
}

func parseExcelRows(r io.Reader) ([][]string, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// knownColumns maps normalized header names onto professional fields.
// Header variants seen across exported registry spreadsheets.
var knownColumns = map[string]string{
	"numero_cro":         "registration",
	"numero cro":         "registration",
	"cro":                "registration",
	"inscricao":          "registration",
	"nome":               "name",
	"nome completo":      "name",
	"categoria":          "category",
	"cpf":                "cpf",
	"email":              "email",
	"e-mail":             "email",
	"outros_emails":      "other_emails",
	"outros emails":      "other_emails",
	"celular":            "phone",
	"celular_atualizado": "phone",
	"celular atualizado": "phone",
	"telefone":           "other_phones",
	"outros_telefones":   "other_phones",
	"outros telefones":   "other_phones",
	"situacao":           "situation",
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(foldDiacritics(h)))
}

func mapRows(rows [][]string, batch uuid.UUID) ([]model.Professional, error) {
	if len(rows) < 1 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	header := rows[0]
	fieldByIndex := make(map[int]string, len(header))
	extraByIndex := make(map[int]string)
	for i, h := range header {
		normalized := normalizeHeader(h)
		if field, ok := knownColumns[normalized]; ok {
			fieldByIndex[i] = field
		} else if normalized != "" {
			extraByIndex[i] = strings.TrimSpace(h)
		}
	}
	if len(fieldByIndex) == 0 {
		return nil, fmt.Errorf("no recognized columns in header")
	}

	now := time.Now().UTC()
	professionals := make([]model.Professional, 0, len(rows)-1)
	for _, row := range rows[1:] {
		p := model.Professional{ImportBatch: batch, ImportedAt: now}
		extra := make(map[string]string)

		for i, value := range row {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			switch fieldByIndex[i] {
			case "registration":
				p.Registration = value
			case "name":
				p.Name = value
			case "category":
				p.Category = value
			case "cpf":
				p.CPF = value
			case "email":
				p.Email = value
			case "other_emails":
				p.OtherEmails = value
			case "phone":
				p.Phone = value
			case "other_phones":
				p.OtherPhones = value
			case "situation":
				p.Situation = value
			default:
				if name, ok := extraByIndex[i]; ok {
					extra[name] = value
				}
			}
		}

		// Rows without the two mandatory identifiers are skipped, not
		// fatal: exported spreadsheets often carry trailing footers.
		if p.Registration == "" || p.Name == "" {
			continue
		}

		if len(extra) > 0 {
			if encoded, err := json.Marshal(extra); err == nil {
				p.ExtraInfo = string(encoded)
			}
		}
		professionals = append(professionals, p)
	}
	return professionals, nil
}
