package payroll

import (
	"fmt"
	"strconv"
	"strings"

	"gearhr/internal/domain/deductions"
)

var payrollHeader = []string{
	"EmployeeID",
	"BaseSalary",
	"SSSAmount",
	"PhilHealthAmount",
	"PagIBIGAmount",
	"WithholdingTax",
	"RiceSubsidy",
	"PhoneAllowance",
	"ClothingAllowance",
}

// Codec maps records to payroll_records.csv. Rows are always written in the
// amounts layout; rows under the older rates header decode as FlatRates.
type Codec struct{}

func (Codec) Header() []string {
	return payrollHeader
}

func (Codec) Encode(r Record) []string {
	b, err := r.Breakdown()
	if err != nil {
		b = deductions.Breakdown{}
	}
	return []string{
		r.EmployeeID,
		FormatAmount(r.BaseSalary),
		FormatAmount(b.SSS),
		FormatAmount(b.PhilHealth),
		FormatAmount(b.PagIbig),
		strconv.FormatFloat(b.WithholdingTax, 'f', 2, 64),
		FormatAmount(r.RiceSubsidy),
		FormatAmount(r.PhoneAllowance),
		FormatAmount(r.ClothingAllowance),
	}
}

func (Codec) Decode(header, row []string) (Record, error) {
	r := Record{EmployeeID: strings.TrimSpace(row[0]), Deductions: BracketComputed{}}
	if r.EmployeeID == "" {
		return Record{}, fmt.Errorf("EmployeeID is empty")
	}

	fields := []struct {
		name string
		idx  int
		dst  *float64
	}{
		{"BaseSalary", 1, &r.BaseSalary},
		{"RiceSubsidy", 6, &r.RiceSubsidy},
		{"PhoneAllowance", 7, &r.PhoneAllowance},
		{"ClothingAllowance", 8, &r.ClothingAllowance},
	}
	for _, f := range fields {
		v, err := parseAmount(row[f.idx])
		if err != nil {
			return Record{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = v
	}

	if IsLegacyHeader(header) {
		var rates FlatRates
		rateFields := []struct {
			name string
			idx  int
			dst  *float64
		}{
			{"SSSRate", 2, &rates.SSSRate},
			{"PhilHealthRate", 3, &rates.PhilHealthRate},
			{"PagIBIGRate", 4, &rates.PagIbigRate},
			{"WithholdingTax", 5, &rates.WithholdingTaxRate},
		}
		for _, f := range rateFields {
			v, err := parseAmount(row[f.idx])
			if err != nil {
				return Record{}, fmt.Errorf("%s: %w", f.name, err)
			}
			*f.dst = v
		}
		r.Deductions = rates
	}

	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (Codec) Key(r Record) string {
	return r.EmployeeID
}

// IsLegacyHeader reports whether header is the older rates layout.
func IsLegacyHeader(header []string) bool {
	return len(header) > 2 && strings.EqualFold(strings.TrimSpace(header[2]), "SSSRate")
}

// FormatAmount renders a decimal the way the CSV files have always carried
// it: shortest representation, with a trailing ".0" for whole numbers.
func FormatAmount(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}
