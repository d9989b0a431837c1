package core

import "gearhr/internal/domain/auth"

// FilterEmployeeFields blanks government identifiers for viewers that may
// read the directory but not contribution numbers. Admin and HR see
// everything; employees see their own record in full.
func FilterEmployeeFields(emp *Employee, role string, isSelf bool) {
	if role == auth.RoleAdmin || role == auth.RoleHR {
		return
	}
	if isSelf {
		return
	}

	emp.SSSNumber = ""
	emp.PhilHealthNumber = ""
	emp.TIN = ""
	emp.PagIbigNumber = ""
}
