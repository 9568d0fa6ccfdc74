package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/crors-digital/calltrack/internal/adapter/repository"
	domainRepo "github.com/crors-digital/calltrack/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Call         domainRepo.CallRepository
	User         domainRepo.UserRepository
	Audit        domainRepo.AuditRepository
	Professional domainRepo.ProfessionalRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Call:         repository.NewCallRepository(db, logger),
		User:         repository.NewUserRepository(db, logger),
		Audit:        repository.NewAuditRepository(db, logger),
		Professional: repository.NewProfessionalRepository(db, logger),
	}
}
