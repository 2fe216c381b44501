package authorization

type UserRole string

const (
	RoleStaff      UserRole = "staff"
	RoleSupervisor UserRole = "supervisor"
	RoleAdmin      UserRole = "admin"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// CanOverride reports whether the role may bypass automatic assignment.
func (r UserRole) CanOverride() bool {
	return r == RoleSupervisor || r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleStaff || r == RoleSupervisor || r == RoleAdmin
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleStaff
}
