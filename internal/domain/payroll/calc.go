package payroll

import (
	"math"

	"gearhr/internal/domain/apperr"
	"gearhr/internal/domain/deductions"
)

func (r Record) inputs() DeductionInputs {
	if r.Deductions == nil {
		return BracketComputed{}
	}
	return r.Deductions
}

func (r Record) Mode() string {
	return r.inputs().Mode()
}

func (r Record) TotalAllowances() float64 {
	return deductions.Round2(r.RiceSubsidy + r.PhoneAllowance + r.ClothingAllowance)
}

// Breakdown derives the four deductions from the record's current inputs.
func (r Record) Breakdown() (deductions.Breakdown, error) {
	if err := r.Validate(); err != nil {
		return deductions.Breakdown{}, err
	}
	switch in := r.inputs().(type) {
	case FlatRates:
		return deductions.Breakdown{
			SSS:            deductions.Round2(r.BaseSalary * in.SSSRate),
			PhilHealth:     deductions.Round2(r.BaseSalary * in.PhilHealthRate),
			PagIbig:        deductions.Round2(r.BaseSalary * in.PagIbigRate),
			WithholdingTax: deductions.Round2(r.BaseSalary * in.WithholdingTaxRate),
		}, nil
	default:
		return deductions.Compute(r.BaseSalary, r.RiceSubsidy, r.PhoneAllowance, r.ClothingAllowance)
	}
}

func (r Record) TotalDeductions() (float64, error) {
	b, err := r.Breakdown()
	if err != nil {
		return 0, err
	}
	return b.Total(), nil
}

// NetSalary is base salary minus total deductions plus total allowances.
func (r Record) NetSalary() (float64, error) {
	total, err := r.TotalDeductions()
	if err != nil {
		return 0, err
	}
	return deductions.Round2(r.BaseSalary - total + r.TotalAllowances()), nil
}

func (r Record) Compute() (Totals, error) {
	b, err := r.Breakdown()
	if err != nil {
		return Totals{}, err
	}
	total := b.Total()
	allowances := r.TotalAllowances()
	return Totals{
		EmployeeID:             r.EmployeeID,
		Mode:                   r.Mode(),
		BaseSalary:             r.BaseSalary,
		RiceSubsidy:            r.RiceSubsidy,
		PhoneAllowance:         r.PhoneAllowance,
		ClothingAllowance:      r.ClothingAllowance,
		Deductions:             b,
		TotalDeductions:        total,
		TotalAllowances:        allowances,
		NetTaxableCompensation: deductions.Round2(r.BaseSalary + allowances),
		NetSalary:              deductions.Round2(r.BaseSalary - total + allowances),
	}, nil
}

func (r Record) Validate() error {
	if r.EmployeeID == "" {
		return apperr.Invalid("employeeId", "is required")
	}
	amounts := []struct {
		field string
		value float64
	}{
		{"baseSalary", r.BaseSalary},
		{"riceSubsidy", r.RiceSubsidy},
		{"phoneAllowance", r.PhoneAllowance},
		{"clothingAllowance", r.ClothingAllowance},
	}
	for _, a := range amounts {
		if err := checkAmount(a.field, a.value); err != nil {
			return err
		}
	}
	if rates, ok := r.inputs().(FlatRates); ok {
		return rates.Validate()
	}
	return nil
}

func (f FlatRates) Validate() error {
	rates := []struct {
		field string
		value float64
	}{
		{"sssRate", f.SSSRate},
		{"philHealthRate", f.PhilHealthRate},
		{"pagIbigRate", f.PagIbigRate},
		{"withholdingTaxRate", f.WithholdingTaxRate},
	}
	for _, rate := range rates {
		if err := checkAmount(rate.field, rate.value); err != nil {
			return err
		}
		if rate.value > 1 {
			return apperr.Invalid(rate.field, "must be a fraction between 0 and 1")
		}
	}
	return nil
}

// Normalize converts legacy flat-rate inputs to bracket-computed ones. It
// reports whether the record changed.
func (r *Record) Normalize() bool {
	_, legacy := r.Deductions.(FlatRates)
	r.Deductions = BracketComputed{}
	return legacy
}

func checkAmount(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return apperr.Invalid(field, "must be a finite number")
	}
	if value < 0 {
		return apperr.Invalid(field, "must not be negative")
	}
	return nil
}
