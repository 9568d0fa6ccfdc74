package model

import "time"

// Audit actions.
const (
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionLogin  = "LOGIN"
	AuditActionLogout = "LOGOUT"
)

// AuditEntry is one append-only audit trail record. Entries are never
// updated or deleted.
type AuditEntry struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Table       string    `gorm:"column:table_name;size:100;not null;index:idx_audit_table_record" json:"table_name"`
	RecordID    int64     `gorm:"index:idx_audit_table_record" json:"record_id"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	OldValues   string    `gorm:"type:text" json:"old_values,omitempty"`
	NewValues   string    `gorm:"type:text" json:"new_values,omitempty"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	IPAddress   string    `gorm:"size:45" json:"ip_address,omitempty"`
	CreatedAt   time.Time `gorm:"not null;default:now();index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (AuditEntry) TableName() string {
	return "historico_alteracoes"
}
