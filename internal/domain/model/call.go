package model

import "time"

// CategoryOptions is the canonical, fixed ordering of call resolution
// categories. Reports emit categories in exactly this order so zero-count
// labels remain visible, and clients depend on the literal strings.
var CategoryOptions = []string{
	"Dúvida sanada - Profissional apto ao voto",
	"Dúvida sanada - Profissional não apto ao voto",
	"Dúvida encaminhada ao jurídico",
	"Dúvida sanada - Profissional não apto ao voto (débitos)",
	"Dúvida sanada - Profissional não apto ao voto (atualização cadastral)",
	"Dúvida sanada - Profissional não apto ao voto (-60 dias)",
	"Dúvida sanada - Profissional não apto ao voto (militar exclusivo)",
}

// CoerceCategory maps free-form input onto the fixed category set.
// Unrecognized values fall back to the first option instead of being
// rejected.
func CoerceCategory(s string) string {
	for _, opt := range CategoryOptions {
		if s == opt {
			return opt
		}
	}
	return CategoryOptions[0]
}

// Call is one logged phone call from a registrant.
type Call struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Registration   string    `gorm:"column:cro;size:50;not null" json:"cro"`
	RegistrantName string    `gorm:"column:nome_inscrito;size:255;not null" json:"nome_inscrito"`
	Category       string    `gorm:"column:duvida;size:100;not null" json:"duvida"`
	Note           string    `gorm:"column:observacao;size:1000" json:"observacao"`
	Attendant      string    `gorm:"column:atendente;size:100" json:"atendente"`
	CreatedAt      time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Call) TableName() string {
	return "ligacoes"
}

// CallSample is the projection reports aggregate over. CreatedAt may be the
// zero value for legacy rows with a null timestamp; those are skipped.
type CallSample struct {
	CreatedAt time.Time
	Category  string
	Attendant string
}

// Sample projects a call onto its report tuple.
func (c *Call) Sample() CallSample {
	return CallSample{CreatedAt: c.CreatedAt, Category: c.Category, Attendant: c.Attendant}
}
