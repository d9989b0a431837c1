package core

import "strings"

const (
	PositionManager = "Manager"
	PositionHR      = "HR"
)

type Employee struct {
	EmployeeNumber   string `json:"employeeNumber"`
	LastName         string `json:"lastName"`
	FirstName        string `json:"firstName"`
	SSSNumber        string `json:"sssNumber"`
	PhilHealthNumber string `json:"philHealthNumber"`
	TIN              string `json:"tin"`
	PagIbigNumber    string `json:"pagIbigNumber"`
	Email            string `json:"email"`
	Position         string `json:"position"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

func (e Employee) IsManager() bool {
	return IsManagerPosition(e.Position)
}

func (e Employee) IsHR() bool {
	return IsHRPosition(e.Position)
}

func IsManagerPosition(position string) bool {
	return strings.EqualFold(strings.TrimSpace(position), PositionManager)
}

func IsHRPosition(position string) bool {
	return strings.EqualFold(strings.TrimSpace(position), PositionHR)
}
