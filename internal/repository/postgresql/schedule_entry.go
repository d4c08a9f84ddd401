package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type scheduleEntryRepositoryImpl struct {
	db *database.DB
}

func NewScheduleEntryRepository(db *database.DB) schedule.ScheduleEntryRepository {
	return &scheduleEntryRepositoryImpl{db: db}
}

// GetByPeriod implements schedule.ScheduleEntryRepository.
func (s *scheduleEntryRepositoryImpl) GetByPeriod(ctx context.Context, year, month int) ([]schedule.ScheduleEntry, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT employee_id::text, year, month, day, COALESCE(shift_code, '')
		FROM schedule_entries
		WHERE year = $1 AND month = $2
	`

	rows, err := q.Query(ctx, query, year, month)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return []schedule.ScheduleEntry{}, nil
		}
		return nil, fmt.Errorf("failed to get schedule entries: %w", err)
	}
	defer rows.Close()

	entries := []schedule.ScheduleEntry{}
	for rows.Next() {
		var entry schedule.ScheduleEntry
		if err := rows.Scan(&entry.EmployeeID, &entry.Year, &entry.Month, &entry.Day, &entry.ShiftCode); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		if !validator.IsValidUUID(entry.EmployeeID) {
			continue
		}
		entry.EmployeeID = strings.ToLower(entry.EmployeeID)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		if database.IsUndefinedTable(err) {
			return []schedule.ScheduleEntry{}, nil
		}
		return nil, fmt.Errorf("failed to iterate schedule entries: %w", err)
	}

	return entries, nil
}
