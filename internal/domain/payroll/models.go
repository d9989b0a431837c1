package payroll

import "gearhr/internal/domain/deductions"

// DeductionInputs selects how a record's statutory deductions are derived.
// BracketComputed is canonical; FlatRates only exists for rows written by
// older releases and is converted by Normalize.
type DeductionInputs interface {
	Mode() string
	isDeductionInputs()
}

type BracketComputed struct{}

func (BracketComputed) Mode() string       { return ModeBracketComputed }
func (BracketComputed) isDeductionInputs() {}

// FlatRates are fractions of base salary, one per deduction.
type FlatRates struct {
	SSSRate            float64 `json:"sssRate"`
	PhilHealthRate     float64 `json:"philHealthRate"`
	PagIbigRate        float64 `json:"pagIbigRate"`
	WithholdingTaxRate float64 `json:"withholdingTaxRate"`
}

func (FlatRates) Mode() string       { return ModeFlatRates }
func (FlatRates) isDeductionInputs() {}

// Record is the stored payroll snapshot for one employee. Derived totals are
// never stored; call Compute.
type Record struct {
	EmployeeID        string
	BaseSalary        float64
	RiceSubsidy       float64
	PhoneAllowance    float64
	ClothingAllowance float64
	Deductions        DeductionInputs
}

// Totals is the full computed view of a Record.
type Totals struct {
	EmployeeID             string               `json:"employeeId"`
	Mode                   string               `json:"mode"`
	BaseSalary             float64              `json:"baseSalary"`
	RiceSubsidy            float64              `json:"riceSubsidy"`
	PhoneAllowance         float64              `json:"phoneAllowance"`
	ClothingAllowance      float64              `json:"clothingAllowance"`
	Deductions             deductions.Breakdown `json:"deductions"`
	TotalDeductions        float64              `json:"totalDeductions"`
	TotalAllowances        float64              `json:"totalAllowances"`
	NetTaxableCompensation float64              `json:"netTaxableCompensation"`
	NetSalary              float64              `json:"netSalary"`
}
