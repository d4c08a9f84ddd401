package payroll

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// ========== RESPONSES ==========

type PayrollResponse struct {
	Processed bool         `json:"processed"`
	Run       *RunResponse `json:"run"`
	Entries   []EntryView  `json:"entries"`
	Summary   Summary      `json:"summary"`
}

type RunResponse struct {
	ID          string    `json:"id"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Notes       *string   `json:"notes"`
	ProcessedBy *string   `json:"processedBy"`
	ProcessedAt time.Time `json:"processedAt"`
}

// EntryView is an entry as displayed: committed or preview, with directory fields attached.
type EntryView struct {
	ID           string  `json:"id,omitempty"`
	UserID       string  `json:"userId"`
	EmployeeName string  `json:"employeeName"`
	Department   string  `json:"department"`
	Position     string  `json:"position"`
	DaysWorked   int     `json:"daysWorked"`
	DailyRate    float64 `json:"dailyRate"`
	GrossPay     float64 `json:"grossPay"`
	Deductions   float64 `json:"deductions"`
	NetPay       float64 `json:"netPay"`
	Remarks      *string `json:"remarks"`
}

type EmployeePayslipResponse struct {
	ID          string    `json:"id"`
	RunID       string    `json:"runId"`
	Year        int       `json:"year"`
	Month       int       `json:"month"`
	Period      string    `json:"period"`
	DaysWorked  int       `json:"daysWorked"`
	DailyRate   float64   `json:"dailyRate"`
	GrossPay    float64   `json:"grossPay"`
	Deductions  float64   `json:"deductions"`
	NetPay      float64   `json:"netPay"`
	Remarks     *string   `json:"remarks"`
	ProcessedAt time.Time `json:"processedAt"`
	Notes       *string   `json:"notes"`
}

// Document is a rendered export ready to be streamed.
type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

func NewRunResponse(run Run) *RunResponse {
	return &RunResponse{
		ID:          run.ID,
		Year:        run.Year,
		Month:       run.Month,
		Notes:       run.Notes,
		ProcessedBy: run.ProcessedBy,
		ProcessedAt: run.ProcessedAt,
	}
}

func NewEmployeePayslipResponse(e EmployeePayslipEntry) EmployeePayslipResponse {
	return EmployeePayslipResponse{
		ID:          e.ID,
		RunID:       e.RunID,
		Year:        e.Year,
		Month:       e.Month,
		Period:      e.Period,
		DaysWorked:  e.DaysWorked,
		DailyRate:   Round2(e.DailyRate),
		GrossPay:    Round2(e.GrossPay),
		Deductions:  Round2(e.Deductions),
		NetPay:      Round2(e.NetPay),
		Remarks:     e.Remarks,
		ProcessedAt: e.ProcessedAt,
		Notes:       e.Notes,
	}
}

// ========== REQUESTS ==========

// SavePayrollRequest accepts year and month as JSON numbers or numeric strings.
type SavePayrollRequest struct {
	Year        json.Number        `json:"year"`
	Month       json.Number        `json:"month"`
	ProcessedBy *string            `json:"processedBy,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	Entries     []SaveEntryRequest `json:"entries"`

	// ActorID is the authenticated caller, set by the handler. It becomes
	// ProcessedBy when the body leaves that blank.
	ActorID string `json:"-"`
}

// SaveEntryRequest is one edited sheet line. Gross and net sent by clients are ignored.
type SaveEntryRequest struct {
	UserID     string   `json:"userId"`
	DaysWorked int      `json:"daysWorked"`
	DailyRate  float64  `json:"dailyRate"`
	Deductions *float64 `json:"deductions,omitempty"`
	Remarks    *string  `json:"remarks,omitempty"`
}

// Period returns the parsed year and month.
func (r *SavePayrollRequest) Period() (int, int, error) {
	return ParsePeriod(r.Year.String(), r.Month.String())
}

func (r *SavePayrollRequest) Validate() error {
	if _, _, err := r.Period(); err != nil {
		return err
	}
	if len(r.Entries) == 0 {
		return ErrEmptyEntries
	}

	var errs validator.ValidationErrors
	seen := make(map[string]int, len(r.Entries))
	for i, entry := range r.Entries {
		field := fmt.Sprintf("entries[%d]", i)
		if !validator.IsValidUUID(entry.UserID) {
			errs = append(errs, validator.ValidationError{Field: field + ".userId", Message: "must be a valid UUID"})
		} else if first, dup := seen[strings.ToLower(entry.UserID)]; dup {
			errs = append(errs, validator.ValidationError{Field: field + ".userId", Message: fmt.Sprintf("duplicates entries[%d]", first)})
		} else {
			seen[strings.ToLower(entry.UserID)] = i
		}
		if entry.DaysWorked < 0 || entry.DaysWorked > 31 {
			errs = append(errs, validator.ValidationError{Field: field + ".daysWorked", Message: "must be between 0 and 31"})
		}
		if entry.DailyRate < 0 {
			errs = append(errs, validator.ValidationError{Field: field + ".dailyRate", Message: "must be non-negative"})
		}
		if entry.Deductions != nil && *entry.Deductions < 0 {
			errs = append(errs, validator.ValidationError{Field: field + ".deductions", Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsePeriod parses query or body period values. Both must be plain digit strings.
func ParsePeriod(year, month string) (int, int, error) {
	year, month = strings.TrimSpace(year), strings.TrimSpace(month)
	if !validator.IsNumeric(year) || !validator.IsNumeric(month) {
		return 0, 0, ErrInvalidPeriod
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1 {
		return 0, 0, ErrInvalidPeriod
	}
	m, err := strconv.Atoi(month)
	if err != nil || !validator.IsValidMonth(m) {
		return 0, 0, ErrInvalidPeriod
	}
	return y, m, nil
}
