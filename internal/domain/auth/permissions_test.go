package auth

import "testing"

func TestRolePermissionsSubset(t *testing.T) {
	allowed := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		allowed[perm] = struct{}{}
	}

	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
		for _, perm := range perms {
			if _, ok := allowed[perm]; !ok {
				t.Fatalf("role %s has unknown permission %s", role, perm)
			}
		}
	}
}

func TestDefaultPermissionsUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for _, perm := range DefaultPermissions {
		if _, ok := seen[perm]; ok {
			t.Fatalf("duplicate permission %s", perm)
		}
		seen[perm] = struct{}{}
	}
}

func TestNormalizeRole(t *testing.T) {
	cases := map[string]string{
		"manager":   RoleManager,
		" HR ":      RoleHR,
		"Admin":     RoleAdmin,
		"Developer": RoleEmployee,
		"Guest":     RoleEmployee,
		"":          RoleEmployee,
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q): expected %s, got %s", in, want, got)
		}
	}
}

func TestHasPermission(t *testing.T) {
	if HasPermission(RoleEmployee, PermPayrollWrite) {
		t.Fatal("employees must not write payroll")
	}
	if !HasPermission(RoleHR, PermEmployeesWrite) {
		t.Fatal("HR must write employees")
	}
	if !HasPermission("Developer", PermAttendanceWrite) {
		t.Fatal("positions map to the employee role")
	}
	if HasPermission(RoleHR, PermSystemAdmin) {
		t.Fatal("HR is not a system admin")
	}
}
