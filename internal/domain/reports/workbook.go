package reports

import (
	"io"

	"github.com/xuri/excelize/v2"

	"gearhr/internal/domain/hr"
)

const (
	sheetEmployees  = "Employees"
	sheetPayroll    = "Payroll"
	sheetAttendance = "Attendance"
)

// WriteWorkbook exports a snapshot as an xlsx workbook with one sheet per
// collection. The payroll sheet carries the computed totals.
func WriteWorkbook(w io.Writer, snap hr.Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	employees := [][]any{}
	for _, e := range snap.Employees {
		employees = append(employees, []any{
			e.EmployeeNumber, e.LastName, e.FirstName, e.SSSNumber, e.PhilHealthNumber,
			e.TIN, e.PagIbigNumber, e.Email, e.Position, e.Address, e.Phone,
		})
	}
	if err := writeSheet(f, sheetEmployees, []string{
		"Employee #", "Last Name", "First Name", "SSS", "PhilHealth", "TIN", "Pag-IBIG", "Email", "Position", "Address", "Phone",
	}, employees, headerStyle); err != nil {
		return err
	}

	rows, err := BuildRegister(snap)
	if err != nil {
		return err
	}
	payrollRows := [][]any{}
	for _, r := range rows {
		payrollRows = append(payrollRows, []any{
			r.EmployeeID, r.Name, r.Position, r.BaseSalary, r.RiceSubsidy, r.PhoneAllowance, r.ClothingAllowance,
			r.SSS, r.PhilHealth, r.PagIbig, r.WithholdingTax, r.TotalDeductions, r.TotalAllowances, r.NetSalary,
		})
	}
	if err := writeSheet(f, sheetPayroll, []string{
		"Employee #", "Name", "Position", "Base Salary", "Rice Subsidy", "Phone Allowance", "Clothing Allowance",
		"SSS", "PhilHealth", "Pag-IBIG", "Withholding Tax", "Total Deductions", "Total Allowances", "Net Salary",
	}, payrollRows, headerStyle); err != nil {
		return err
	}

	attendanceRows := [][]any{}
	for _, a := range snap.Attendance {
		attendanceRows = append(attendanceRows, []any{a.EmployeeID, a.Date, string(a.Status), a.TimeIn, a.TimeOut, a.HoursWorked()})
	}
	if err := writeSheet(f, sheetAttendance, []string{
		"Employee #", "Date", "Status", "Time In", "Time Out", "Hours Worked",
	}, attendanceRows, headerStyle); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	index, err := f.GetSheetIndex(sheetEmployees)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]any, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return err
	}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return err
	}
	return f.SetColWidth(name, "A", lastCol, 16)
}
