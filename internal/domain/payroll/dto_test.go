package payroll

import (
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validUserID = "123e4567-e89b-42d3-a456-426614174000"

func TestParsePeriod(t *testing.T) {
	y, m, err := ParsePeriod("2025", "1")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 1, m)

	y, m, err = ParsePeriod(" 2024 ", "012")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 12, m)

	invalid := [][2]string{
		{"", "1"},
		{"2025", ""},
		{"abc", "1"},
		{"2025", "x"},
		{"2025", "13"},
		{"2025", "0"},
		{"2025", "1.5"},
		{"-2025", "1"},
		{"0", "1"},
	}
	for _, p := range invalid {
		_, _, err := ParsePeriod(p[0], p[1])
		assert.ErrorIs(t, err, ErrInvalidPeriod, "period %v", p)
	}
}

func TestSavePayrollRequest_DecodeNumericStrings(t *testing.T) {
	var req SavePayrollRequest
	body := `{"year":"2025","month":3,"entries":[{"userId":"` + validUserID + `","daysWorked":22,"dailyRate":500,"grossPay":1}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	y, m, err := req.Period()
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 3, m)
	assert.NoError(t, req.Validate())
}

func TestSavePayrollRequest_Validate(t *testing.T) {
	negative := -1.0

	t.Run("invalid period", func(t *testing.T) {
		req := SavePayrollRequest{Year: "abc", Month: "1", Entries: []SaveEntryRequest{{UserID: validUserID}}}
		assert.ErrorIs(t, req.Validate(), ErrInvalidPeriod)
	})

	t.Run("missing period", func(t *testing.T) {
		req := SavePayrollRequest{Entries: []SaveEntryRequest{{UserID: validUserID}}}
		assert.ErrorIs(t, req.Validate(), ErrInvalidPeriod)
	})

	t.Run("empty entries", func(t *testing.T) {
		req := SavePayrollRequest{Year: "2025", Month: "1"}
		assert.ErrorIs(t, req.Validate(), ErrEmptyEntries)
	})

	t.Run("field errors", func(t *testing.T) {
		req := SavePayrollRequest{
			Year:  "2025",
			Month: "1",
			Entries: []SaveEntryRequest{
				{UserID: "abc-123", DaysWorked: 40, DailyRate: -5},
				{UserID: validUserID, Deductions: &negative},
				{UserID: "123E4567-E89B-42D3-A456-426614174000"},
			},
		}

		err := req.Validate()

		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		m := verrs.ToMap()
		assert.Equal(t, "must be a valid UUID", m["entries[0].userId"])
		assert.Equal(t, "must be between 0 and 31", m["entries[0].daysWorked"])
		assert.Equal(t, "must be non-negative", m["entries[0].dailyRate"])
		assert.Equal(t, "must be non-negative", m["entries[1].deductions"])
		assert.Equal(t, "duplicates entries[1]", m["entries[2].userId"])
		assert.Len(t, m, 5)
	})
}

func TestNewEmployeePayslipResponse(t *testing.T) {
	resp := NewEmployeePayslipResponse(EmployeePayslipEntry{
		Entry:  Entry{ID: "e1", RunID: "r1", Year: 2025, Month: 2, DaysWorked: 20, DailyRate: 500, GrossPay: 10000, Deductions: 250.456, NetPay: 9749.544},
		Period: "February 2025",
	})

	assert.Equal(t, "February 2025", resp.Period)
	assert.Equal(t, 250.46, resp.Deductions)
	assert.Equal(t, 9749.54, resp.NetPay)
}
