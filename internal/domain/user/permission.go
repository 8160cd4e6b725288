package user

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleTeknisi Role = "teknisi"
	RoleFinance Role = "finance"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	_, ok := RolePermissions[r]
	return ok
}

type Permission string

const (
	// Read access to every module
	PermissionRead Permission = "read"

	// Operational data: employees, inventory, KPI, customers, projects
	PermissionWrite Permission = "write"

	// Leave approval, salary slips
	PermissionApprove Permission = "approve"

	// Technician attendance
	PermissionCheckIn  Permission = "checkin"
	PermissionCheckOut Permission = "checkout"

	// Expenses, income, kasbon
	PermissionWriteFinance Permission = "write_finance"

	// Everything, including employee and role management
	PermissionAll Permission = "all"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionAll,
	},
	RoleManager: {
		PermissionRead,
		PermissionWrite,
		PermissionApprove,
	},
	RoleTeknisi: {
		PermissionRead,
		PermissionCheckIn,
		PermissionCheckOut,
	},
	RoleFinance: {
		PermissionRead,
		PermissionWriteFinance,
	},
}

// HasPermission checks if a role has a specific permission. PermissionAll
// grants everything.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission || p == PermissionAll {
			return true
		}
	}
	return false
}

// HasAnyPermission checks if a role has at least one of the permissions.
func HasAnyPermission(role Role, permissions ...Permission) bool {
	for _, p := range permissions {
		if HasPermission(role, p) {
			return true
		}
	}
	return false
}
