package payroll

import "time"

// RunProcessedEvent is emitted after a run has been committed.
type RunProcessedEvent struct {
	RunID           string    `json:"run_id"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	ProcessedBy     *string   `json:"processed_by"`
	EntryCount      int       `json:"entry_count"`
	TotalGross      float64   `json:"total_gross"`
	TotalDeductions float64   `json:"total_deductions"`
	TotalNet        float64   `json:"total_net"`
	OccurredAt      time.Time `json:"occurred_at"`
}

func NewRunProcessedEvent(run Run, summary Summary, occurredAt time.Time) RunProcessedEvent {
	return RunProcessedEvent{
		RunID:           run.ID,
		Year:            run.Year,
		Month:           run.Month,
		ProcessedBy:     run.ProcessedBy,
		EntryCount:      summary.EmployeeCount,
		TotalGross:      summary.TotalGross,
		TotalDeductions: summary.TotalDeductions,
		TotalNet:        summary.TotalNet,
		OccurredAt:      occurredAt.UTC(),
	}
}
