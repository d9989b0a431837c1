package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"gearhr/internal/domain/core"
	"gearhr/internal/domain/payroll"
)

type Payslip struct {
	EmployeeID  string         `json:"employeeId"`
	Name        string         `json:"name"`
	Position    string         `json:"position"`
	Email       string         `json:"email"`
	Period      string         `json:"period"`
	Totals      payroll.Totals `json:"totals"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// BuildPayslip combines an employee with their payroll record. An empty
// period defaults to the month of now.
func BuildPayslip(emp core.Employee, record payroll.Record, period string, now time.Time) (Payslip, error) {
	totals, err := record.Compute()
	if err != nil {
		return Payslip{}, err
	}
	if period == "" {
		period = now.Format("January 2006")
	}
	return Payslip{
		EmployeeID:  emp.EmployeeNumber,
		Name:        emp.FullName(),
		Position:    emp.Position,
		Email:       emp.Email,
		Period:      period,
		Totals:      totals,
		GeneratedAt: now.UTC(),
	}, nil
}

func RenderPayslipPDF(w io.Writer, p Payslip) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", p.Name, p.EmployeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Position: %s", p.Position))
	pdf.Ln(7)
	if p.Email != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Email: %s", p.Email))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", p.Period))
	pdf.Ln(10)

	t := p.Totals
	type line struct {
		label  string
		amount float64
	}
	section := func(title string, lines []line) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range lines {
			pdf.CellFormat(90, 7, l.label, "", 0, "L", false, 0, "")
			pdf.CellFormat(50, 7, "PHP "+money(l.amount), "", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	section("Earnings", []line{
		{"Base salary", t.BaseSalary},
		{"Rice subsidy", t.RiceSubsidy},
		{"Phone allowance", t.PhoneAllowance},
		{"Clothing allowance", t.ClothingAllowance},
	})
	section("Deductions", []line{
		{"SSS", t.Deductions.SSS},
		{"PhilHealth", t.Deductions.PhilHealth},
		{"Pag-IBIG", t.Deductions.PagIbig},
		{"Withholding tax", t.Deductions.WithholdingTax},
		{"Total deductions", t.TotalDeductions},
	})
	section("Summary", []line{
		{"Total allowances", t.TotalAllowances},
		{"Net taxable compensation", t.NetTaxableCompensation},
		{"Net salary", t.NetSalary},
	})

	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", p.GeneratedAt.Format(time.RFC3339)))

	return pdf.Output(w)
}

// money formats an amount with thousands separators and two decimals.
func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	sign := ""
	if s[0] == '-' {
		sign, s = "-", s[1:]
	}
	whole, frac := s[:len(s)-3], s[len(s)-3:]
	var out []byte
	for i := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, whole[i])
	}
	return sign + string(out) + frac
}
