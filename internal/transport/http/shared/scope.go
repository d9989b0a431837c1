package shared

import "gearhr/internal/domain/auth"

// SelfOnly reports whether user may only see their own employee records.
// Credential user ids double as employee numbers.
func SelfOnly(user auth.UserContext) bool {
	return user.RoleName == auth.RoleEmployee
}

// CanAccess reports whether user may read or act on employeeID's records.
func CanAccess(user auth.UserContext, employeeID string) bool {
	return !SelfOnly(user) || user.UserID == employeeID
}
