package model

import (
	"time"

	"github.com/google/uuid"
)

// Professional is one row of the imported professional registry, searched
// by registration number or free text.
type Professional struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Registration string    `gorm:"column:numero_cro;size:50;not null;index" json:"numero_cro"`
	Name         string    `gorm:"column:nome;size:500;not null;index" json:"nome"`
	Category     string    `gorm:"column:categoria;size:200" json:"categoria"`
	CPF          string    `gorm:"column:cpf;size:20" json:"cpf"`
	Email        string    `gorm:"size:200" json:"email"`
	OtherEmails  string    `gorm:"column:outros_emails;size:500" json:"outros_emails"`
	Phone        string    `gorm:"column:celular_atualizado;size:50" json:"celular_atualizado"`
	OtherPhones  string    `gorm:"column:outros_telefones;size:200" json:"outros_telefones"`
	Situation    string    `gorm:"column:situacao;size:200" json:"situacao"`
	ExtraInfo    string    `gorm:"column:outras_informacoes;size:2000" json:"outras_informacoes,omitempty"`
	ImportBatch  uuid.UUID `gorm:"column:import_batch;type:uuid;index" json:"import_batch"`
	ImportedAt   time.Time `gorm:"column:imported_at;not null;default:now()" json:"imported_at"`
}

// TableName specifies the table name for GORM
func (Professional) TableName() string {
	return "profissionais_aptos"
}
