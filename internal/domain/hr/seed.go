package hr

import (
	"gearhr/internal/domain/core"
	"gearhr/internal/domain/payroll"
)

func SampleEmployees() []core.Employee {
	return []core.Employee{
		{
			EmployeeNumber:   "1001",
			LastName:         "Bactong",
			FirstName:        "Colin",
			SSSNumber:        "123456789",
			PhilHealthNumber: "123456789012",
			TIN:              "123-456-789",
			PagIbigNumber:    "123456789012",
			Email:            "Colin@MotorPH.com",
			Position:         "Developer",
			Address:          "Leyte, Palo",
			Phone:            "0960 270 7931",
		},
		{
			EmployeeNumber:   "1002",
			LastName:         "Bactong",
			FirstName:        "Charlize",
			SSSNumber:        "987654321",
			PhilHealthNumber: "210987654321",
			TIN:              "987-654-321",
			PagIbigNumber:    "210987654321",
			Email:            "Charlize@MotorPH.com",
			Position:         "Manager",
			Address:          "Negros Occidental Silay City",
			Phone:            "555-0202",
		},
	}
}

func SamplePayroll() []payroll.Record {
	return []payroll.Record{
		payroll.NewDefaultRecord("1001", "Developer", 35000),
		payroll.NewDefaultRecord("1002", "Manager", 60000),
	}
}
