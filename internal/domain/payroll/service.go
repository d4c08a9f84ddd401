package payroll

import "context"

type PayrollService interface {
	// GetPayroll returns the committed run for the period, or a live preview when none exists.
	GetPayroll(ctx context.Context, year, month int) (PayrollResponse, error)
	// SavePayroll commits the edited sheet and returns it as GetPayroll would.
	SavePayroll(ctx context.Context, req SavePayrollRequest) (PayrollResponse, error)
	GetEmployeeHistory(ctx context.Context, employeeID string) ([]EmployeePayslipResponse, error)
	ExportPayroll(ctx context.Context, year, month int) (Document, error)
	GetPayslip(ctx context.Context, employeeID string, year, month int) (Document, error)
}
