package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/document"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	transactor   payroll.Transactor
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	scheduleRepo schedule.ScheduleEntryRepository
	publisher    payroll.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

func NewPayrollService(
	transactor payroll.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleEntryRepository,
	publisher payroll.EventPublisher,
	logger *slog.Logger,
) payroll.PayrollService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PayrollServiceImpl{
		transactor:   transactor,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		scheduleRepo: scheduleRepo,
		publisher:    publisher,
		logger:       logger,
		now:          time.Now,
	}
}

func validPeriod(year, month int) bool {
	return year > 0 && validator.IsValidMonth(month)
}

// ========== READ ==========

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, year, month int) (payroll.PayrollResponse, error) {
	if !validPeriod(year, month) {
		return payroll.PayrollResponse{}, payroll.ErrInvalidPeriod
	}

	run, err := s.payrollRepo.FindRun(ctx, year, month)
	if err != nil {
		return payroll.PayrollResponse{}, payroll.NewStoreError("find run", err)
	}
	if run != nil {
		return s.committed(ctx, *run)
	}
	return s.preview(ctx, year, month)
}

func (s *PayrollServiceImpl) committed(ctx context.Context, run payroll.Run) (payroll.PayrollResponse, error) {
	entries, err := s.payrollRepo.LoadEntriesForRun(ctx, run.ID)
	if err != nil {
		return payroll.PayrollResponse{}, payroll.NewStoreError("load entries", err)
	}
	if entries == nil {
		entries = []payroll.EntryView{}
	}
	payroll.SortEntriesByName(entries)

	return payroll.PayrollResponse{
		Processed: true,
		Run:       payroll.NewRunResponse(run),
		Entries:   entries,
		Summary:   payroll.Summarize(entries),
	}, nil
}

func (s *PayrollServiceImpl) preview(ctx context.Context, year, month int) (payroll.PayrollResponse, error) {
	var (
		employees []employee.Employee
		shifts    []schedule.ScheduleEntry
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result, err := s.employeeRepo.GetActivePayrollEmployees(gCtx)
		if err != nil {
			return payroll.NewStoreError("fetch employees", err)
		}
		employees = result
		return nil
	})
	g.Go(func() error {
		result, err := s.scheduleRepo.GetByPeriod(gCtx, year, month)
		if err != nil {
			return payroll.NewStoreError("fetch schedule", err)
		}
		shifts = result
		return nil
	})
	if err := g.Wait(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	worked := schedule.WorkedDaysByEmployee(shifts)
	entries := make([]payroll.EntryView, 0, len(employees))
	for _, emp := range employees {
		if !validator.IsValidUUID(emp.ID) {
			continue
		}
		entries = append(entries, payroll.NewPreviewEntry(emp, year, month, worked[strings.ToLower(emp.ID)]))
	}
	payroll.SortEntriesByName(entries)

	return payroll.PayrollResponse{
		Processed: false,
		Run:       nil,
		Entries:   entries,
		Summary:   payroll.Summarize(entries),
	}, nil
}

// ========== SAVE ==========

// SavePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) SavePayroll(ctx context.Context, req payroll.SavePayrollRequest) (payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollResponse{}, err
	}
	year, month, err := req.Period()
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	header := payroll.RunHeader{Year: year, Month: month, ProcessedBy: req.ProcessedBy, Notes: req.Notes}
	if header.ProcessedBy == nil || validator.IsEmpty(*header.ProcessedBy) {
		header.ProcessedBy = nil
		if actor := strings.TrimSpace(req.ActorID); actor != "" {
			header.ProcessedBy = &actor
		}
	}

	entries := make([]payroll.Entry, 0, len(req.Entries))
	for _, line := range req.Entries {
		deductions := 0.0
		if line.Deductions != nil {
			deductions = *line.Deductions
		}
		entries = append(entries, payroll.NewEntry(
			strings.ToLower(line.UserID), year, month, line.DaysWorked, line.DailyRate, deductions, line.Remarks,
		))
	}

	var run payroll.Run
	err = s.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		run, err = s.payrollRepo.UpsertRunHeader(txCtx, header)
		if err != nil {
			return payroll.NewStoreError("upsert run", err)
		}
		if err := s.payrollRepo.ReplaceEntries(txCtx, run.ID, entries); err != nil {
			if errors.Is(err, payroll.ErrPartialWrite) {
				s.logger.Error("payroll entries reconciliation failed",
					"run_id", run.ID, "year", year, "month", month, "error", err)
				return err
			}
			return payroll.NewStoreError("replace entries", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	resp, err := s.committed(ctx, run)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	s.logger.Info("payroll run saved",
		"run_id", run.ID, "year", year, "month", month,
		"entries", len(entries), "total_net", resp.Summary.TotalNet)

	event := payroll.NewRunProcessedEvent(run, resp.Summary, s.now())
	if err := s.publisher.PublishRunProcessed(ctx, event); err != nil {
		s.logger.Warn("failed to publish payroll run event", "run_id", run.ID, "error", err)
	}

	return resp, nil
}

// ========== HISTORY ==========

// GetEmployeeHistory implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetEmployeeHistory(ctx context.Context, employeeID string) ([]payroll.EmployeePayslipResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, payroll.ErrInvalidEmployeeID
	}

	history, err := s.payrollRepo.EmployeeHistory(ctx, strings.ToLower(employeeID))
	if err != nil {
		return nil, payroll.NewStoreError("employee history", err)
	}

	result := make([]payroll.EmployeePayslipResponse, 0, len(history))
	for _, item := range history {
		result = append(result, payroll.NewEmployeePayslipResponse(item))
	}
	return result, nil
}

// ========== DOCUMENTS ==========

// ExportPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ExportPayroll(ctx context.Context, year, month int) (payroll.Document, error) {
	resp, err := s.GetPayroll(ctx, year, month)
	if err != nil {
		return payroll.Document{}, err
	}

	content, err := document.PayrollWorkbook(year, month, resp)
	if err != nil {
		return payroll.Document{}, fmt.Errorf("failed to build payroll workbook: %w", err)
	}

	return payroll.Document{
		Filename:    fmt.Sprintf("payroll-%04d-%02d.xlsx", year, month),
		ContentType: document.XLSXContentType,
		Content:     content,
	}, nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, employeeID string, year, month int) (payroll.Document, error) {
	if !validPeriod(year, month) {
		return payroll.Document{}, payroll.ErrInvalidPeriod
	}
	history, err := s.GetEmployeeHistory(ctx, employeeID)
	if err != nil {
		return payroll.Document{}, err
	}

	var entry *payroll.EmployeePayslipResponse
	for i := range history {
		if history[i].Year == year && history[i].Month == month {
			entry = &history[i]
			break
		}
	}
	if entry == nil {
		return payroll.Document{}, payroll.ErrPayslipNotFound
	}

	employeeID = strings.ToLower(employeeID)
	name := payroll.UnknownEmployeeName
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	switch {
	case err == nil:
		name = emp.DisplayName()
	case !errors.Is(err, employee.ErrEmployeeNotFound):
		return payroll.Document{}, payroll.NewStoreError("fetch employee", err)
	}

	content, err := document.PayslipPDF(employeeID, name, *entry)
	if err != nil {
		return payroll.Document{}, err
	}

	return payroll.Document{
		Filename:    fmt.Sprintf("payslip-%s-%04d-%02d.pdf", employeeID, year, month),
		ContentType: document.PDFContentType,
		Content:     content,
	}, nil
}
