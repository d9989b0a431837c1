package reports

import (
	"io"

	"github.com/gocarina/gocsv"

	"gearhr/internal/domain/hr"
)

// RegisterRow is one line of the payroll register export.
type RegisterRow struct {
	EmployeeID        string  `csv:"employee_id" json:"employeeId"`
	Name              string  `csv:"name" json:"name"`
	Position          string  `csv:"position" json:"position"`
	BaseSalary        float64 `csv:"base_salary" json:"baseSalary"`
	RiceSubsidy       float64 `csv:"rice_subsidy" json:"riceSubsidy"`
	PhoneAllowance    float64 `csv:"phone_allowance" json:"phoneAllowance"`
	ClothingAllowance float64 `csv:"clothing_allowance" json:"clothingAllowance"`
	SSS               float64 `csv:"sss" json:"sss"`
	PhilHealth        float64 `csv:"philhealth" json:"philHealth"`
	PagIbig           float64 `csv:"pagibig" json:"pagIbig"`
	WithholdingTax    float64 `csv:"withholding_tax" json:"withholdingTax"`
	TotalDeductions   float64 `csv:"total_deductions" json:"totalDeductions"`
	TotalAllowances   float64 `csv:"total_allowances" json:"totalAllowances"`
	NetSalary         float64 `csv:"net_salary" json:"netSalary"`
}

// BuildRegister computes one row per payroll record in employee order.
// Records without an employee keep an empty name.
func BuildRegister(snap hr.Snapshot) ([]RegisterRow, error) {
	type person struct{ name, position string }
	people := make(map[string]person, len(snap.Employees))
	for _, e := range snap.Employees {
		people[e.EmployeeNumber] = person{name: e.FullName(), position: e.Position}
	}

	rows := make([]RegisterRow, 0, len(snap.Payroll))
	for _, record := range snap.Payroll {
		t, err := record.Compute()
		if err != nil {
			return nil, err
		}
		p := people[record.EmployeeID]
		rows = append(rows, RegisterRow{
			EmployeeID:        record.EmployeeID,
			Name:              p.name,
			Position:          p.position,
			BaseSalary:        t.BaseSalary,
			RiceSubsidy:       t.RiceSubsidy,
			PhoneAllowance:    t.PhoneAllowance,
			ClothingAllowance: t.ClothingAllowance,
			SSS:               t.Deductions.SSS,
			PhilHealth:        t.Deductions.PhilHealth,
			PagIbig:           t.Deductions.PagIbig,
			WithholdingTax:    t.Deductions.WithholdingTax,
			TotalDeductions:   t.TotalDeductions,
			TotalAllowances:   t.TotalAllowances,
			NetSalary:         t.NetSalary,
		})
	}
	return rows, nil
}

func WriteRegisterCSV(w io.Writer, rows []RegisterRow) error {
	return gocsv.Marshal(rows, w)
}
