package payroll

import "context"

type PayrollRepository interface {
	// FindRun returns nil without error when no run exists for the period.
	FindRun(ctx context.Context, year, month int) (*Run, error)
	// UpsertRunHeader inserts or updates the run for (year, month) and re-stamps processed_at.
	UpsertRunHeader(ctx context.Context, header RunHeader) (Run, error)
	// ReplaceEntries deletes the run's entries and inserts the given ones.
	// Returns ErrPartialWrite when the stored count does not match len(entries).
	ReplaceEntries(ctx context.Context, runID string, entries []Entry) error
	// LoadEntriesForRun returns the run's entries joined with directory fields.
	LoadEntriesForRun(ctx context.Context, runID string) ([]EntryView, error)
	// EmployeeHistory returns every entry for the employee, most recent period first.
	EmployeeHistory(ctx context.Context, employeeID string) ([]EmployeePayslipEntry, error)
}

// Transactor runs fn in one store transaction. Repositories called with txCtx join it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// EventPublisher announces committed runs to other services.
type EventPublisher interface {
	PublishRunProcessed(ctx context.Context, event RunProcessedEvent) error
}
