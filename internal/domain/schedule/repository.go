package schedule

import "context"

type ScheduleEntryRepository interface {
	// GetByPeriod returns the month's entries whose employee id is a canonical UUID.
	// A schedule table that has not been provisioned yields an empty result.
	GetByPeriod(ctx context.Context, year, month int) ([]ScheduleEntry, error)
}
