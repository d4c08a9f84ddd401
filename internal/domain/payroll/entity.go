package payroll

import "time"

// UnknownEmployeeName is shown for committed entries whose employee no longer resolves in the directory.
const UnknownEmployeeName = "Unknown Employee"

// Run is the committed payroll header for one (Year, Month).
type Run struct {
	ID          string
	Year        int
	Month       int
	Notes       *string
	ProcessedBy *string
	ProcessedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RunHeader is the input to an upsert; ProcessedAt is always stamped by the store.
type RunHeader struct {
	Year        int
	Month       int
	ProcessedBy *string
	Notes       *string
}

// Entry is one employee's pay line within a run.
type Entry struct {
	ID         string
	RunID      string
	EmployeeID string
	Year       int
	Month      int
	DaysWorked int
	DailyRate  float64
	GrossPay   float64
	Deductions float64
	NetPay     float64
	Remarks    *string
}

// EmployeeProfile holds the directory fields displayed next to an entry.
type EmployeeProfile struct {
	Name       string
	Department string
	Position   string
}

// EmployeePayslipEntry is an entry annotated with its parent run details.
type EmployeePayslipEntry struct {
	Entry
	Period      string
	ProcessedAt time.Time
	Notes       *string
}

type Summary struct {
	TotalGross      float64 `json:"totalGross"`
	TotalDeductions float64 `json:"totalDeductions"`
	TotalNet        float64 `json:"totalNet"`
	EmployeeCount   int     `json:"employeeCount"`
}
