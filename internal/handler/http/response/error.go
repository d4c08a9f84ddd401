package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var storeErr *payroll.StoreError

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrInvalidEmployeeID):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPartialWrite):
		PartialWrite(w, err.Error())
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrEmptyEntries),
		errors.Is(err, payroll.ErrInvalidEmployeeID):
		BadRequest(w, err.Error(), nil)
	case errors.As(err, &storeErr):
		BadRequest(w, storeErr.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
