package response

import (
	"errors"
	"net/http"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/employee"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/agrifarm/farmpay-backend-go/internal/domain/settings"
	"github.com/agrifarm/farmpay-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A slip conflict carries the colliding employee and period
	var conflict *payroll.SlipConflictError
	if errors.As(err, &conflict) {
		Conflict(w, conflict.Error())
		return
	}

	switch {
	// Payroll domain errors
	case errors.Is(err, payroll.ErrDraftNotFound):
		NotFound(w, "Draft not found or expired")
	case errors.Is(err, payroll.ErrSlipNotFound):
		NotFound(w, "Payment slip not found")
	case errors.Is(err, payroll.ErrCommitInProgress):
		Conflict(w, "Draft commit already in progress")
	case errors.Is(err, payroll.ErrDraftPeriodChanged):
		// A draft's period is fixed at creation, so a mismatched period on a
		// reused key is a bad request, not a state conflict.
		ValidationError(w, map[string]string{"period": "draft key is bound to a different period"})

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound),
		errors.Is(err, settings.ErrSettingsVersionNotFound):
		NotFound(w, "Payroll settings not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
