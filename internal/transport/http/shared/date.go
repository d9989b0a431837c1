package shared

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar date.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, value)
}

// NormalizeDate returns value reformatted as YYYY-MM-DD.
func NormalizeDate(value string) (string, error) {
	parsed, err := ParseDate(value)
	if err != nil || parsed.IsZero() {
		return "", err
	}
	return parsed.Format(dateLayout), nil
}

// PeriodLabel turns a YYYY-MM month into a payslip period such as
// "January 2024". An empty month yields "".
func PeriodLabel(month string) (string, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return "", nil
	}
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return "", err
	}
	return parsed.Format("January 2006"), nil
}
