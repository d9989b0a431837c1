package auth

import (
	"context"
	"strings"
)

const (
	RoleAdmin    = "Admin"
	RoleHR       = "HR"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

const (
	PermEmployeesRead   = "employees.read"
	PermEmployeesWrite  = "employees.write"
	PermPayrollRead     = "payroll.read"
	PermPayrollWrite    = "payroll.write"
	PermAttendanceRead  = "attendance.read"
	PermAttendanceWrite = "attendance.write"
	PermReportsRead     = "reports.read"
	PermSystemAdmin     = "admin.system"
)

var DefaultPermissions = []string{
	PermEmployeesRead,
	PermEmployeesWrite,
	PermPayrollRead,
	PermPayrollWrite,
	PermAttendanceRead,
	PermAttendanceWrite,
	PermReportsRead,
	PermSystemAdmin,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermEmployeesRead,
		PermPayrollRead,
		PermAttendanceRead,
		PermAttendanceWrite,
	},
	RoleManager: {
		PermEmployeesRead,
		PermPayrollRead,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermReportsRead,
	},
	RoleHR: {
		PermEmployeesRead,
		PermEmployeesWrite,
		PermPayrollRead,
		PermPayrollWrite,
		PermAttendanceRead,
		PermAttendanceWrite,
		PermReportsRead,
	},
	RoleAdmin: DefaultPermissions,
}

// NormalizeRole maps a stored role or position name onto an access role.
// Anything unrecognised is treated as a plain employee.
func NormalizeRole(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, role := range []string{RoleAdmin, RoleHR, RoleManager} {
		if strings.EqualFold(trimmed, role) {
			return role
		}
	}
	return RoleEmployee
}

func HasPermission(role, permission string) bool {
	for _, perm := range RolePermissions[NormalizeRole(role)] {
		if perm == permission {
			return true
		}
	}
	return false
}

// StaticPermissions answers permission checks from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	return HasPermission(role, permission), nil
}
