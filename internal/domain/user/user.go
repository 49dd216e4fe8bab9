package user

// Actor is the authenticated principal acting on a request, extracted
// from the verified token claims.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleSupervisor Role = "supervisor"
	RoleAdmin      Role = "admin"
	RoleSuperuser  Role = "superuser"
)

var RoleValues = []string{
	string(RoleEmployee),
	string(RoleSupervisor),
	string(RoleAdmin),
	string(RoleSuperuser),
}

// AtLeast reports whether r carries at least the privilege of required.
func (r Role) AtLeast(required Role) bool {
	return roleRank(r) >= roleRank(required)
}

func roleRank(r Role) int {
	switch r {
	case RoleEmployee:
		return 1
	case RoleSupervisor:
		return 2
	case RoleAdmin:
		return 3
	case RoleSuperuser:
		return 4
	default:
		return 0
	}
}
