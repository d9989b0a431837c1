package deductions

import (
	"math"

	"gearhr/internal/domain/apperr"
)

// Breakdown holds the four statutory deductions for one payroll snapshot.
type Breakdown struct {
	SSS            float64 `json:"sss"`
	PhilHealth     float64 `json:"philHealth"`
	PagIbig        float64 `json:"pagIbig"`
	WithholdingTax float64 `json:"withholdingTax"`
}

func (b Breakdown) Total() float64 {
	return Round2(b.SSS + b.PhilHealth + b.PagIbig + b.WithholdingTax)
}

// Round2 rounds a peso amount to centavos, half away from zero.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func SSS(baseSalary float64) (float64, error) {
	if err := checkAmount("baseSalary", baseSalary); err != nil {
		return 0, err
	}
	amount := SSSBrackets[0].Amount
	for _, bracket := range SSSBrackets {
		if baseSalary < bracket.Lower {
			break
		}
		amount = bracket.Amount
	}
	return amount, nil
}

func PhilHealth(baseSalary float64) (float64, error) {
	if err := checkAmount("baseSalary", baseSalary); err != nil {
		return 0, err
	}
	amount := Round2(baseSalary * philHealthRate)
	return math.Max(philHealthFloor, math.Min(amount, philHealthCap)), nil
}

func PagIbig(baseSalary float64) (float64, error) {
	if err := checkAmount("baseSalary", baseSalary); err != nil {
		return 0, err
	}
	return math.Min(Round2(baseSalary*pagIbigRate), pagIbigCap), nil
}

// NetTaxableCompensation is the withholding tax base: salary plus every allowance.
func NetTaxableCompensation(baseSalary float64, allowances ...float64) (float64, error) {
	if err := checkAmount("baseSalary", baseSalary); err != nil {
		return 0, err
	}
	total := baseSalary
	for _, allowance := range allowances {
		if err := checkAmount("allowance", allowance); err != nil {
			return 0, err
		}
		total += allowance
	}
	return total, nil
}

func WithholdingTax(baseSalary float64, allowances ...float64) (float64, error) {
	ntc, err := NetTaxableCompensation(baseSalary, allowances...)
	if err != nil {
		return 0, err
	}
	tier := TierFor(ntc)
	excess := math.Max(ntc-tier.Subtrahend, 0)
	return Round2(excess*tier.Rate + tier.Addend), nil
}

// TierFor returns the tax tier whose inclusive upper bound covers ntc.
func TierFor(ntc float64) TaxTier {
	for _, tier := range TaxTiers {
		if ntc <= tier.Upper {
			return tier
		}
	}
	return TaxTiers[len(TaxTiers)-1]
}

func Compute(baseSalary float64, allowances ...float64) (Breakdown, error) {
	sss, err := SSS(baseSalary)
	if err != nil {
		return Breakdown{}, err
	}
	philHealth, err := PhilHealth(baseSalary)
	if err != nil {
		return Breakdown{}, err
	}
	pagIbig, err := PagIbig(baseSalary)
	if err != nil {
		return Breakdown{}, err
	}
	tax, err := WithholdingTax(baseSalary, allowances...)
	if err != nil {
		return Breakdown{}, err
	}
	return Breakdown{SSS: sss, PhilHealth: philHealth, PagIbig: pagIbig, WithholdingTax: tax}, nil
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
