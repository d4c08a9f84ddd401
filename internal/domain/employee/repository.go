package employee

import "context"

type EmployeeRepository interface {
	// GetActivePayrollEmployees returns active, non-admin employees whose id is a canonical UUID.
	GetActivePayrollEmployees(ctx context.Context) ([]Employee, error)
	// GetByID returns ErrInvalidEmployeeID for a malformed id and ErrEmployeeNotFound
	// when the id does not resolve, whatever the status.
	GetByID(ctx context.Context, id string) (Employee, error)
}
