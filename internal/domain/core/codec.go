package core

var employeeHeader = []string{
	"EmployeeNumber",
	"LastName",
	"FirstName",
	"SSS",
	"PhilHealth",
	"TIN",
	"PagIBIG",
	"Email",
	"Position",
	"Address",
	"Phone",
}

// Codec maps employees to the employees.csv column layout.
type Codec struct{}

func (Codec) Header() []string {
	return employeeHeader
}

func (Codec) Encode(e Employee) []string {
	return []string{
		e.EmployeeNumber,
		e.LastName,
		e.FirstName,
		e.SSSNumber,
		e.PhilHealthNumber,
		e.TIN,
		e.PagIbigNumber,
		e.Email,
		e.Position,
		e.Address,
		e.Phone,
	}
}

func (Codec) Decode(_ []string, row []string) (Employee, error) {
	e := Employee{
		EmployeeNumber:   row[0],
		LastName:         row[1],
		FirstName:        row[2],
		SSSNumber:        row[3],
		PhilHealthNumber: row[4],
		TIN:              row[5],
		PagIbigNumber:    row[6],
		Email:            row[7],
		Position:         row[8],
		Address:          row[9],
		Phone:            row[10],
	}
	e.Normalize()
	if e.EmployeeNumber == "" {
		return Employee{}, errMissingEmployeeNumber
	}
	return e, nil
}

func (Codec) Key(e Employee) string {
	return e.EmployeeNumber
}
