package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gearhr/internal/domain/apperr"
)

const NotApplicable = "N/A"

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// WorkedMinutes is TimeOut minus TimeIn. It is negative when TimeOut is
// earlier than TimeIn; no overnight wrap is applied.
func (r Record) WorkedMinutes() (int, bool) {
	in, ok := clockMinutes(r.TimeIn)
	if !ok {
		return 0, false
	}
	out, ok := clockMinutes(r.TimeOut)
	if !ok {
		return 0, false
	}
	return out - in, true
}

// HoursWorked renders WorkedMinutes as H:MM, or N/A when either time is
// missing or unreadable. Negative spans keep the sign on both parts, e.g.
// -90 minutes renders as "-1:-30".
func (r Record) HoursWorked() string {
	minutes, ok := r.WorkedMinutes()
	if !ok {
		return NotApplicable
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// clockMinutes reads the leading two colon separated integers of a stored
// time. It is lenient so rows written by older releases still render.
func clockMinutes(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	parts := strings.Split(raw, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hours*60 + minutes, true
}

// ParseClock validates a 24-hour HH:MM time for new entries.
func ParseClock(raw string) (time.Time, error) {
	t, err := time.Parse(clockLayout, raw)
	if err != nil {
		return time.Time{}, apperr.Invalid("time", "must be HH:MM in 24-hour format")
	}
	return t, nil
}

func ValidateDate(raw string) error {
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return apperr.Invalid("date", "must be yyyy-MM-dd")
	}
	return nil
}

// Validate checks a new entry. Times may be left empty.
func (r Record) Validate() error {
	if strings.TrimSpace(r.EmployeeID) == "" {
		return apperr.Invalid("employeeId", "is required")
	}
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if _, ok := ParseStatus(string(r.Status)); !ok {
		return apperr.Invalid("status", "must be one of Present, Absent, Late, On Leave, Half Day")
	}
	if r.TimeIn != "" {
		if _, err := ParseClock(r.TimeIn); err != nil {
			return apperr.Invalid("timeIn", "must be HH:MM in 24-hour format")
		}
	}
	if r.TimeOut != "" {
		if _, err := ParseClock(r.TimeOut); err != nil {
			return apperr.Invalid("timeOut", "must be HH:MM in 24-hour format")
		}
	}
	return nil
}
