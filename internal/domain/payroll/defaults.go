package payroll

import "gearhr/internal/domain/core"

// Defaults are the starting allowances and tax rate for a new payroll record.
// Bracket-computed records ignore WithholdingTaxRate; it only applies to the
// legacy flat-rate model.
type Defaults struct {
	WithholdingTaxRate float64 `json:"withholdingTaxRate"`
	RiceSubsidy        float64 `json:"riceSubsidy"`
	PhoneAllowance     float64 `json:"phoneAllowance"`
	ClothingAllowance  float64 `json:"clothingAllowance"`
}

// DefaultsFor applies the position rule: managers and HR get the reduced tax
// rate, managers alone get the lower phone and clothing allowances.
func DefaultsFor(position string) Defaults {
	d := Defaults{
		WithholdingTaxRate: DefaultWithholdingTaxRate,
		RiceSubsidy:        DefaultRiceSubsidy,
		PhoneAllowance:     DefaultPhoneAllowance,
		ClothingAllowance:  DefaultClothingAllowance,
	}
	if core.IsManagerPosition(position) || core.IsHRPosition(position) {
		d.WithholdingTaxRate = ReducedWithholdingTaxRate
	}
	if core.IsManagerPosition(position) {
		d.PhoneAllowance = ManagerPhoneAllowance
		d.ClothingAllowance = ManagerClothingAllowance
	}
	return d
}

// legacyRates are the flat rates older releases stored for these defaults.
func (d Defaults) legacyRates() FlatRates {
	return FlatRates{
		SSSRate:            legacySSSRate,
		PhilHealthRate:     legacyPhilHealthRate,
		PagIbigRate:        legacyPagIbigRate,
		WithholdingTaxRate: d.WithholdingTaxRate,
	}
}

func NewDefaultRecord(employeeID, position string, baseSalary float64) Record {
	d := DefaultsFor(position)
	return Record{
		EmployeeID:        employeeID,
		BaseSalary:        baseSalary,
		RiceSubsidy:       d.RiceSubsidy,
		PhoneAllowance:    d.PhoneAllowance,
		ClothingAllowance: d.ClothingAllowance,
		Deductions:        BracketComputed{},
	}
}
