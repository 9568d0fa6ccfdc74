package usecase

import "github.com/crors-digital/calltrack/internal/domain/model"

// Resources and actions of the capability matrix.
const (
	ResourceCalls         = "ligacoes"
	ResourceReports       = "relatorios"
	ResourceProfessionals = "profissionais"
	ResourceAudit         = "historico"

	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionExport = "export"
	ActionImport = "import"
)

// defaultPermissions is the capability matrix keyed by role. Administrators
// bypass the matrix entirely; every unknown (role, resource, action)
// combination denies.
var defaultPermissions = map[model.Role]map[string][]string{
	model.RoleLawyer: {
		ResourceCalls:         {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceReports:       {ActionRead, ActionExport},
		ResourceProfessionals: {ActionRead, ActionImport},
	},
	model.RoleSecretary: {
		ResourceCalls:         {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceReports:       {ActionRead, ActionExport},
		ResourceProfessionals: {ActionRead, ActionImport},
	},
	model.RoleAssistant: {
		ResourceCalls:         {ActionCreate, ActionRead},
		ResourceProfessionals: {ActionRead},
	},
	model.RoleIntern: {
		ResourceCalls:         {ActionCreate, ActionRead},
		ResourceProfessionals: {ActionRead},
	},
}

// Allowed reports whether the role may perform action on resource.
func Allowed(role model.Role, resource, action string) bool {
	if role == model.RoleAdmin {
		return true
	}
	actions, ok := defaultPermissions[role][resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
