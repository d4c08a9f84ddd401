package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// entryInsertBatchSize keeps a single INSERT well under the 65535 bind parameter limit.
const entryInsertBatchSize = 500

const entryColumnCount = 11

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

// FindRun implements payroll.PayrollRepository.
func (r *payrollRepository) FindRun(ctx context.Context, year, month int) (*payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id::text, year, month, notes, processed_by, processed_at, created_at, updated_at
		FROM payroll_runs
		WHERE year = $1 AND month = $2
	`

	var run payroll.Run
	err := q.QueryRow(ctx, query, year, month).Scan(
		&run.ID, &run.Year, &run.Month, &run.Notes, &run.ProcessedBy,
		&run.ProcessedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return &run, nil
}

// UpsertRunHeader implements payroll.PayrollRepository.
func (r *payrollRepository) UpsertRunHeader(ctx context.Context, header payroll.RunHeader) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (id, year, month, processed_by, notes, processed_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (year, month) DO UPDATE SET
			processed_by = EXCLUDED.processed_by,
			notes = EXCLUDED.notes,
			processed_at = NOW(),
			updated_at = NOW()
		RETURNING id::text, year, month, notes, processed_by, processed_at, created_at, updated_at
	`

	var run payroll.Run
	err := q.QueryRow(ctx, query,
		uuid.NewString(), header.Year, header.Month, header.ProcessedBy, header.Notes,
	).Scan(
		&run.ID, &run.Year, &run.Month, &run.Notes, &run.ProcessedBy,
		&run.ProcessedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to upsert payroll run: %w", err)
	}

	return run, nil
}

// ========== ENTRIES ==========

// ReplaceEntries implements payroll.PayrollRepository.
func (r *payrollRepository) ReplaceEntries(ctx context.Context, runID string, entries []payroll.Entry) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_entries WHERE run_id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete payroll entries: %w", err)
	}

	for start := 0; start < len(entries); start += entryInsertBatchSize {
		end := min(start+entryInsertBatchSize, len(entries))
		if err := insertEntries(ctx, q, runID, entries[start:end]); err != nil {
			return err
		}
	}

	var stored int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_entries WHERE run_id = $1`, runID).Scan(&stored); err != nil {
		return fmt.Errorf("failed to count payroll entries: %w", err)
	}
	if stored != len(entries) {
		return fmt.Errorf("%w: expected %d entries, found %d", payroll.ErrPartialWrite, len(entries), stored)
	}

	return nil
}

func insertEntries(ctx context.Context, q database.Querier, runID string, entries []payroll.Entry) error {
	placeholders := make([]string, 0, len(entries))
	args := make([]interface{}, 0, len(entries)*entryColumnCount)

	for i, e := range entries {
		base := i * entryColumnCount
		ph := make([]string, entryColumnCount)
		for j := range ph {
			ph[j] = fmt.Sprintf("$%d", base+j+1)
		}
		placeholders = append(placeholders, "("+strings.Join(ph, ", ")+")")
		args = append(args,
			uuid.NewString(), runID, e.EmployeeID, e.Year, e.Month, e.DaysWorked,
			moneyToNumeric(e.DailyRate), moneyToNumeric(e.GrossPay),
			moneyToNumeric(e.Deductions), moneyToNumeric(e.NetPay), e.Remarks,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO payroll_entries (
			id, run_id, employee_id, year, month, days_worked,
			daily_rate, gross_pay, deductions, net_pay, remarks
		) VALUES %s
	`, strings.Join(placeholders, ", "))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert payroll entries: %w", err)
	}
	if tag.RowsAffected() != int64(len(entries)) {
		return fmt.Errorf("%w: inserted %d of %d entries", payroll.ErrPartialWrite, tag.RowsAffected(), len(entries))
	}

	return nil
}

// LoadEntriesForRun implements payroll.PayrollRepository.
func (r *payrollRepository) LoadEntriesForRun(ctx context.Context, runID string) ([]payroll.EntryView, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pe.id::text, pe.run_id::text, pe.employee_id::text, pe.year, pe.month, pe.days_worked,
			pe.daily_rate, pe.gross_pay, pe.deductions, pe.net_pay, pe.remarks,
			e.id IS NOT NULL,
			COALESCE(e.first_name, ''), COALESCE(e.last_name, ''),
			COALESCE(e.department, ''), COALESCE(e.position, '')
		FROM payroll_entries pe
		LEFT JOIN employees e ON e.id = pe.employee_id
		WHERE pe.run_id = $1
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll entries: %w", err)
	}
	defer rows.Close()

	views := []payroll.EntryView{}
	for rows.Next() {
		var (
			entry                               payroll.Entry
			dailyRate, gross, deductions, net   pgtype.Numeric
			resolved                            bool
			firstName, lastName, dept, position string
		)
		if err := rows.Scan(
			&entry.ID, &entry.RunID, &entry.EmployeeID, &entry.Year, &entry.Month, &entry.DaysWorked,
			&dailyRate, &gross, &deductions, &net, &entry.Remarks,
			&resolved, &firstName, &lastName, &dept, &position,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		entry.DailyRate = numericToMoney(dailyRate)
		entry.GrossPay = numericToMoney(gross)
		entry.Deductions = numericToMoney(deductions)
		entry.NetPay = numericToMoney(net)

		var profile *payroll.EmployeeProfile
		if resolved {
			profile = &payroll.EmployeeProfile{
				Name:       employee.DisplayName(firstName, lastName),
				Department: employee.DepartmentOrDefault(dept),
				Position:   position,
			}
		}
		views = append(views, payroll.NewEntryView(entry, profile))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll entries: %w", err)
	}

	return views, nil
}

// EmployeeHistory implements payroll.PayrollRepository.
func (r *payrollRepository) EmployeeHistory(ctx context.Context, employeeID string) ([]payroll.EmployeePayslipEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pe.id::text, pe.run_id::text, pe.employee_id::text, pe.year, pe.month, pe.days_worked,
			pe.daily_rate, pe.gross_pay, pe.deductions, pe.net_pay, pe.remarks,
			pr.processed_at, pr.notes
		FROM payroll_entries pe
		JOIN payroll_runs pr ON pr.id = pe.run_id
		WHERE pe.employee_id = $1
		ORDER BY pe.year DESC, pe.month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee payroll history: %w", err)
	}
	defer rows.Close()

	history := []payroll.EmployeePayslipEntry{}
	for rows.Next() {
		var (
			item                              payroll.EmployeePayslipEntry
			dailyRate, gross, deductions, net pgtype.Numeric
		)
		if err := rows.Scan(
			&item.ID, &item.RunID, &item.EmployeeID, &item.Year, &item.Month, &item.DaysWorked,
			&dailyRate, &gross, &deductions, &net, &item.Remarks,
			&item.ProcessedAt, &item.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll history entry: %w", err)
		}
		item.DailyRate = numericToMoney(dailyRate)
		item.GrossPay = numericToMoney(gross)
		item.Deductions = numericToMoney(deductions)
		item.NetPay = numericToMoney(net)
		item.Period = payroll.PeriodLabel(item.Year, item.Month)
		history = append(history, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll history: %w", err)
	}

	return history, nil
}
