package payroll

import "errors"

var (
	ErrInvalidPeriod     = errors.New("year and month must be numeric and month must be between 1 and 12")
	ErrEmptyEntries      = errors.New("entries must contain at least one line")
	ErrInvalidEmployeeID = errors.New("invalid employee id")
	ErrPartialWrite      = errors.New("payroll entries were only partially written")
	ErrPayslipNotFound   = errors.New("no committed payroll entry for this employee and period")
)

// StoreError wraps a store read or write failure. Its message is the store's own.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError returns nil when err is nil.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
