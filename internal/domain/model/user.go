package model

import "time"

// Role is the authorization tier of a user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLawyer    Role = "advogado"
	RoleAssistant Role = "assistente"
	RoleIntern    Role = "estagiario"
	RoleSecretary Role = "secretario"
	RoleClient    Role = "cliente"
)

// ParseRole maps a config/database string onto a Role, defaulting to the
// least privileged staff tier.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleLawyer, RoleAssistant, RoleIntern, RoleSecretary, RoleClient:
		return Role(s)
	default:
		return RoleAssistant
	}
}

// User is an authenticated staff identity.
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	FullName     string     `gorm:"column:nome_completo;size:255;not null" json:"nome_completo"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:senha_hash;size:255;not null" json:"-"`
	Role         Role       `gorm:"column:tipo_usuario;size:50;not null;default:'assistente'" json:"tipo_usuario"`
	Active       bool       `gorm:"column:ativo;not null;default:true" json:"ativo"`
	Sector       string     `gorm:"column:setor;size:100" json:"setor"`
	LastLoginAt  *time.Time `gorm:"column:ultimo_login" json:"ultimo_login,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "usuarios"
}
