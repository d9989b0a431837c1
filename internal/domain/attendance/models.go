package attendance

import "strings"

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusLate    Status = "Late"
	StatusOnLeave Status = "On Leave"
	StatusHalfDay Status = "Half Day"
)

var Statuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusOnLeave, StatusHalfDay}

// ParseStatus matches case-insensitively and returns the canonical spelling.
func ParseStatus(raw string) (Status, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range Statuses {
		if strings.EqualFold(trimmed, string(s)) {
			return s, true
		}
	}
	return "", false
}

// Key identifies one attendance entry: an employee on a calendar day.
type Key struct {
	EmployeeID string
	Date       string
}

func (k Key) String() string {
	return k.EmployeeID + "|" + k.Date
}

type Record struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Status     Status `json:"status"`
	TimeIn     string `json:"timeIn"`
	TimeOut    string `json:"timeOut"`
}

func (r Record) Key() Key {
	return Key{EmployeeID: r.EmployeeID, Date: r.Date}
}
