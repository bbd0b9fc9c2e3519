package settings

import "errors"

var (
	ErrSettingsNotFound        = errors.New("payroll settings not found")
	ErrSettingsVersionNotFound = errors.New("payroll settings version not found")
)
