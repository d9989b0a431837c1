package core

import (
	"strings"

	"gearhr/internal/domain/apperr"
)

// Normalize trims surrounding whitespace from every field.
func (e *Employee) Normalize() {
	for _, field := range e.fields() {
		*field = strings.TrimSpace(*field)
	}
}

func (e Employee) Validate() error {
	if e.EmployeeNumber == "" {
		return apperr.Invalid("employeeNumber", "is required")
	}
	if e.LastName == "" {
		return apperr.Invalid("lastName", "is required")
	}
	if e.FirstName == "" {
		return apperr.Invalid("firstName", "is required")
	}
	if e.Email != "" && !strings.Contains(e.Email, "@") {
		return apperr.Invalid("email", "must be a valid email address")
	}
	for _, field := range e.fields() {
		if strings.ContainsAny(*field, "\r\n") {
			return apperr.Invalid("employee", "fields must not contain line breaks")
		}
	}
	return nil
}

func (e *Employee) fields() []*string {
	return []*string{
		&e.EmployeeNumber,
		&e.LastName,
		&e.FirstName,
		&e.SSSNumber,
		&e.PhilHealthNumber,
		&e.TIN,
		&e.PagIbigNumber,
		&e.Email,
		&e.Position,
		&e.Address,
		&e.Phone,
	}
}
