package hr

import (
	"gearhr/internal/domain/attendance"
	"gearhr/internal/domain/core"
	"gearhr/internal/domain/payroll"
	"gearhr/internal/platform/recordstore"
)

// Backends are the persisted tables behind the three stores.
type Backends struct {
	Employees  recordstore.Backend
	Payroll    recordstore.Backend
	Attendance recordstore.Backend
}

type Options struct {
	SeedSampleData bool
}

type LoadReport struct {
	Employees       recordstore.LoadStats `json:"employees"`
	Payroll         recordstore.LoadStats `json:"payroll"`
	Attendance      recordstore.LoadStats `json:"attendance"`
	SeededEmployees bool                  `json:"seededEmployees"`
	SeededPayroll   bool                  `json:"seededPayroll"`
	MigratedPayroll int                   `json:"migratedPayroll"`
}

// Allowances override the position defaults when creating an employee.
type Allowances struct {
	RiceSubsidy       float64 `json:"riceSubsidy"`
	PhoneAllowance    float64 `json:"phoneAllowance"`
	ClothingAllowance float64 `json:"clothingAllowance"`
}

type DeleteResult struct {
	EmployeeRemoved   bool `json:"employeeRemoved"`
	PayrollRemoved    bool `json:"payrollRemoved"`
	AttendanceRemoved int  `json:"attendanceRemoved"`
}

type PayrollSummary struct {
	Employee core.Employee  `json:"employee"`
	Payroll  payroll.Totals `json:"payroll"`
}

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Employees  []core.Employee
	Payroll    []payroll.Record
	Attendance []attendance.Record
}
