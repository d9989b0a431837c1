package core

import (
	"testing"

	"gearhr/internal/domain/auth"
)

func sampleEmployee() *Employee {
	return &Employee{
		EmployeeNumber:   "1001",
		SSSNumber:        "123456789",
		PhilHealthNumber: "123456789012",
		TIN:              "123-456-789",
		PagIbigNumber:    "123456789012",
	}
}

func TestFilterEmployeeFieldsHR(t *testing.T) {
	emp := sampleEmployee()

	FilterEmployeeFields(emp, auth.RoleHR, false)

	if emp.SSSNumber == "" || emp.TIN == "" || emp.PagIbigNumber == "" {
		t.Fatal("HR should retain government identifiers")
	}
}

func TestFilterEmployeeFieldsManager(t *testing.T) {
	emp := sampleEmployee()

	FilterEmployeeFields(emp, auth.RoleManager, false)

	if emp.SSSNumber != "" || emp.PhilHealthNumber != "" || emp.TIN != "" || emp.PagIbigNumber != "" {
		t.Fatal("Manager should not see another employee's identifiers")
	}
}

func TestFilterEmployeeFieldsEmployeeSelf(t *testing.T) {
	emp := sampleEmployee()

	FilterEmployeeFields(emp, auth.RoleEmployee, true)

	if emp.SSSNumber == "" || emp.TIN == "" {
		t.Fatal("Employee should see their own identifiers")
	}
}
