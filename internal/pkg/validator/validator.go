package validator

import (
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidMonth reports whether m is a calendar month number.
func IsValidMonth(m int) bool {
	return m >= 1 && m <= 12
}

// IsValidYear reports whether y falls in the range the payroll engine accepts.
func IsValidYear(y int) bool {
	return y >= 2000 && y <= 2200
}
