package attendance

import (
	"errors"
	"strings"
)

var attendanceHeader = []string{"EmployeeID", "Date", "Status", "TimeIn", "TimeOut"}

// Codec maps records to attendance_records.csv. Stored rows are accepted as
// written; only the key fields must be present.
type Codec struct{}

func (Codec) Header() []string {
	return attendanceHeader
}

func (Codec) Encode(r Record) []string {
	return []string{r.EmployeeID, r.Date, string(r.Status), r.TimeIn, r.TimeOut}
}

func (Codec) Decode(_ []string, row []string) (Record, error) {
	r := Record{
		EmployeeID: strings.TrimSpace(row[0]),
		Date:       strings.TrimSpace(row[1]),
		Status:     Status(strings.TrimSpace(row[2])),
		TimeIn:     strings.TrimSpace(row[3]),
		TimeOut:    strings.TrimSpace(row[4]),
	}
	if r.EmployeeID == "" || r.Date == "" {
		return Record{}, errors.New("employee id and date are required")
	}
	if status, ok := ParseStatus(string(r.Status)); ok {
		r.Status = status
	}
	return r, nil
}

func (Codec) Key(r Record) Key {
	return r.Key()
}
