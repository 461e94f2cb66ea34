package models

// Domain role constants. Root is reserved for site operators and bypasses
// per-permission checks entirely.
const (
	DomainRoleRoot  = "root"
	DomainRoleAdmin = "admin"
	DomainRoleUser  = "user"
	DomainRoleGuest = "guest"
)

// Domain-scoped permission identifiers checked by the permission gate.
const (
	PermDomainProblemView   = "domain_problem.view"
	PermDomainProblemCreate = "domain_problem.create"
	PermDomainProblemEdit   = "domain_problem.edit"
	PermDomainProblemDelete = "domain_problem.delete"
	PermDomainRecordView    = "domain_record.view"
)

var domainRolePermissions = map[string]map[string]struct{}{
	DomainRoleAdmin: {
		PermDomainProblemView:   {},
		PermDomainProblemCreate: {},
		PermDomainProblemEdit:   {},
		PermDomainProblemDelete: {},
		PermDomainRecordView:    {},
	},
	DomainRoleUser: {
		PermDomainProblemView: {},
		PermDomainRecordView:  {},
	},
	DomainRoleGuest: {
		PermDomainProblemView: {},
	},
}

// RoleHasPermission reports whether a domain role grants the given permission.
func RoleHasPermission(role, permission string) bool {
	if role == DomainRoleRoot {
		return true
	}

	grants, ok := domainRolePermissions[role]
	if !ok {
		return false
	}

	_, ok = grants[permission]
	return ok
}
