package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

// GetActivePayrollEmployees implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetActivePayrollEmployees(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id::text, COALESCE(first_name, ''), COALESCE(last_name, ''),
			COALESCE(department, ''), COALESCE(position, ''), daily_rate::numeric
		FROM employees
		WHERE status = $1 AND COALESCE(role, '') <> $2
	`

	rows, err := q.Query(ctx, query, employee.EmploymentStatusActive, employee.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		var dailyRate pgtype.Numeric
		if err := rows.Scan(&emp.ID, &emp.FirstName, &emp.LastName, &emp.Department, &emp.Position, &dailyRate); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		if !validator.IsValidUUID(emp.ID) {
			continue
		}
		emp.ID = strings.ToLower(emp.ID)
		emp.DailyRate = employee.NormalizeDailyRate(numericToMoney(dailyRate), dailyRate.Valid && !dailyRate.NaN)
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}

	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	if !validator.IsValidUUID(id) {
		return employee.Employee{}, employee.ErrInvalidEmployeeID
	}
	q := GetQuerier(ctx, e.db)

	query := `
		SELECT id::text, COALESCE(first_name, ''), COALESCE(last_name, ''),
			COALESCE(department, ''), COALESCE(position, ''), daily_rate::numeric
		FROM employees
		WHERE id = $1::uuid
	`

	var emp employee.Employee
	var dailyRate pgtype.Numeric
	err := q.QueryRow(ctx, query, strings.ToLower(id)).Scan(
		&emp.ID, &emp.FirstName, &emp.LastName, &emp.Department, &emp.Position, &dailyRate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	emp.DailyRate = employee.NormalizeDailyRate(numericToMoney(dailyRate), dailyRate.Valid && !dailyRate.NaN)

	return emp, nil
}
