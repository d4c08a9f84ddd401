package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetPayroll(w http.ResponseWriter, r *http.Request)
	SavePayroll(w http.ResponseWriter, r *http.Request)
	ExportPayroll(w http.ResponseWriter, r *http.Request)
	GetEmployeeHistory(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func periodFromQuery(r *http.Request) (int, int, error) {
	q := r.URL.Query()
	return payroll.ParsePeriod(q.Get("year"), q.Get("month"))
}

// GET /payroll?year=&month=
func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetPayroll(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// POST /payroll
func (h *payrollHandlerImpl) SavePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.SavePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ActorID = middleware.UserIDFromContext(r.Context())

	result, err := h.payrollService.SavePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll run processed", result)
}

// GET /payroll/export?year=&month=
func (h *payrollHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.payrollService.ExportPayroll(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}

// GET /payroll/employee/{userId}
func (h *payrollHandlerImpl) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	result, err := h.payrollService.GetEmployeeHistory(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GET /payroll/employee/{userId}/payslip?year=&month=
func (h *payrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	year, month, err := periodFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, err := h.payrollService.GetPayslip(r.Context(), userID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, doc.Filename, doc.ContentType, doc.Content)
}
