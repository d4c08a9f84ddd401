package payroll

import (
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.01},
		{1.004, 1.0},
		{0.1 + 0.2, 0.3},
		{11000, 11000},
		{-1.005, -1.0},
		{-2.5, -2.5},
		{-0.125, -0.12},
		{0, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Round2(c.in), "Round2(%v)", c.in)
	}
}

func TestRound2_Idempotent(t *testing.T) {
	values := []float64{0, 0.005, 1.005, 1.015, 2.675, 123.456, 99999.995, -0.015, -73.125, 1e6 / 3}
	for _, v := range values {
		once := Round2(v)
		assert.Equal(t, once, Round2(once), "Round2(Round2(%v))", v)
	}
}

func TestGrossAndNetPay(t *testing.T) {
	gross := GrossPay(22, 500)
	assert.Equal(t, 11000.0, gross)
	assert.Equal(t, 11000.0, NetPay(gross, 0))
	assert.Equal(t, 10250.0, NetPay(gross, 750))
	assert.Equal(t, 0.0, GrossPay(0, 500))
	assert.Equal(t, 3.7, GrossPay(3, 1.2333))
}

func TestNewEntry(t *testing.T) {
	remarks := "overtime excluded"
	entry := NewEntry("emp-1", 2025, 1, 22, 500, 750, &remarks)

	assert.Equal(t, "emp-1", entry.EmployeeID)
	assert.Equal(t, 2025, entry.Year)
	assert.Equal(t, 1, entry.Month)
	assert.Equal(t, 11000.0, entry.GrossPay)
	assert.Equal(t, 750.0, entry.Deductions)
	assert.Equal(t, 10250.0, entry.NetPay)
	assert.Equal(t, &remarks, entry.Remarks)
}

func TestNewEntry_SubCentInputs(t *testing.T) {
	entry := NewEntry("emp-1", 2025, 1, 22, 500, 0.005, nil)
	assert.Equal(t, 0.01, entry.Deductions)
	assert.Equal(t, 10999.99, entry.NetPay)

	entry = NewEntry("emp-1", 2025, 1, 22, 500, 0.015, nil)
	assert.Equal(t, 0.02, entry.Deductions)
	assert.Equal(t, 10999.98, entry.NetPay)

	entry = NewEntry("emp-1", 2025, 1, 3, 100.333, 0, nil)
	assert.Equal(t, 100.33, entry.DailyRate)
	assert.Equal(t, 300.99, entry.GrossPay)
}

func TestNewEntry_MoneyFieldsConsistent(t *testing.T) {
	rates := []float64{0, 0.005, 1.2333, 99.999, 100.333, 420.505, 1234.5678}
	deductions := []float64{0, 0.001, 0.005, 0.015, 12.345, 250.456}
	days := []int{0, 1, 3, 7, 22, 31}

	for _, rate := range rates {
		for _, ded := range deductions {
			for _, d := range days {
				entry := NewEntry("emp-1", 2025, 1, d, rate, ded, nil)

				assert.Equal(t, Round2(entry.DailyRate), entry.DailyRate, "rate=%v", rate)
				assert.Equal(t, Round2(entry.Deductions), entry.Deductions, "deductions=%v", ded)
				assert.Equal(t, Round2(float64(d)*entry.DailyRate), entry.GrossPay, "days=%d rate=%v", d, rate)
				assert.Equal(t, Round2(entry.GrossPay-entry.Deductions), entry.NetPay, "days=%d rate=%v deductions=%v", d, rate, ded)

				view := NewEntryView(entry, nil)
				assert.Equal(t, entry.DailyRate, view.DailyRate)
				assert.Equal(t, entry.GrossPay, view.GrossPay)
				assert.Equal(t, entry.Deductions, view.Deductions)
				assert.Equal(t, entry.NetPay, view.NetPay)
			}
		}
	}
}

func TestNewPreviewEntry_SubCentRate(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FirstName: "Ana", DailyRate: 100.333}

	view := NewPreviewEntry(emp, 2025, 1, 3)

	assert.Equal(t, 100.33, view.DailyRate)
	assert.Equal(t, Round2(3*view.DailyRate), view.GrossPay)
	assert.Equal(t, view.GrossPay, view.NetPay)
}

func TestNewPreviewEntry(t *testing.T) {
	emp := employee.Employee{ID: "emp-1", FirstName: "Ana", LastName: "Santos", DailyRate: 500, Position: "Nurse"}

	view := NewPreviewEntry(emp, 2025, 1, 22)

	assert.Equal(t, "Ana Santos", view.EmployeeName)
	assert.Equal(t, employee.UnassignedDepartment, view.Department)
	assert.Equal(t, "Nurse", view.Position)
	assert.Equal(t, 11000.0, view.GrossPay)
	assert.Equal(t, view.GrossPay, view.NetPay)
	assert.Zero(t, view.Deductions)
	assert.Empty(t, view.ID)
}

func TestNewEntryView_UnknownEmployee(t *testing.T) {
	entry := Entry{ID: "entry-1", EmployeeID: "emp-9", DaysWorked: 10, DailyRate: 420.5, GrossPay: 4205, NetPay: 4205}

	view := NewEntryView(entry, nil)

	assert.Equal(t, UnknownEmployeeName, view.EmployeeName)
	assert.Empty(t, view.Department)
	assert.Empty(t, view.Position)
	assert.Equal(t, 420.5, view.DailyRate)
	assert.Equal(t, "emp-9", view.UserID)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	entries := []EntryView{
		{EmployeeName: "A", GrossPay: 0.1, Deductions: 0, NetPay: 0.1},
		{EmployeeName: "B", GrossPay: 0.2, Deductions: 0.05, NetPay: 0.15},
		{EmployeeName: "C", GrossPay: 0.3, Deductions: 0.1, NetPay: 0.2},
		{EmployeeName: "D", GrossPay: 11000, Deductions: 750, NetPay: 10250},
	}
	reversed := []EntryView{entries[3], entries[2], entries[1], entries[0]}

	forward := Summarize(entries)
	backward := Summarize(reversed)

	assert.Equal(t, forward, backward)
	assert.Equal(t, 11000.6, forward.TotalGross)
	assert.Equal(t, 750.15, forward.TotalDeductions)
	assert.Equal(t, 10250.45, forward.TotalNet)
	assert.Equal(t, 4, forward.EmployeeCount)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSortEntriesByName(t *testing.T) {
	entries := []EntryView{
		{UserID: "3", EmployeeName: "ben Cruz"},
		{UserID: "2", EmployeeName: "Ana Santos"},
		{UserID: "5", EmployeeName: "Émile Zola"},
		{UserID: "4", EmployeeName: "Ana Santos"},
		{UserID: "1", EmployeeName: "Zed"},
	}

	SortEntriesByName(entries)

	var ids []string
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}
	assert.Equal(t, []string{"2", "4", "3", "5", "1"}, ids)
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "January 2025", PeriodLabel(2025, 1))
	assert.Equal(t, "December 2024", PeriodLabel(2024, 12))
	assert.Equal(t, "2024-13", PeriodLabel(2024, 13))
}
