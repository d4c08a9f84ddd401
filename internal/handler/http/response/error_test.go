package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"validation", validator.ValidationErrors{{Field: "entries[0].userId", Message: "must be a valid UUID"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed"},
		{"invalid period", payroll.ErrInvalidPeriod, http.StatusBadRequest, "BAD_REQUEST", payroll.ErrInvalidPeriod.Error()},
		{"empty entries", payroll.ErrEmptyEntries, http.StatusBadRequest, "BAD_REQUEST", payroll.ErrEmptyEntries.Error()},
		{"store passthrough", payroll.NewStoreError("fetch employees", errors.New(`relation "employees" does not exist`)), http.StatusBadRequest, "BAD_REQUEST", `relation "employees" does not exist`},
		{"partial write", fmt.Errorf("%w: expected 2 entries, found 0", payroll.ErrPartialWrite), http.StatusConflict, "PARTIAL_WRITE", ""},
		{"payslip not found", payroll.ErrPayslipNotFound, http.StatusNotFound, "NOT_FOUND", payroll.ErrPayslipNotFound.Error()},
		{"employee not found", employee.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND", "Employee not found"},
		{"invalid employee id", employee.ErrInvalidEmployeeID, http.StatusBadRequest, "BAD_REQUEST", employee.ErrInvalidEmployeeID.Error()},
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, c.err)

			assert.Equal(t, c.status, rec.Code)
			var body Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, c.code, body.Error.Code)
			if c.message != "" {
				assert.Equal(t, c.message, body.Error.Message)
			}
		})
	}
}

func TestAttachment(t *testing.T) {
	rec := httptest.NewRecorder()

	Attachment(rec, "payroll-2025-01.xlsx", "application/octet-stream", []byte("data"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="payroll-2025-01.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "4", rec.Header().Get("Content-Length"))
	assert.Equal(t, "data", rec.Body.String())
}
