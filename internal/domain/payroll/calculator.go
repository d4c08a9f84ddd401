package payroll

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// roundingEpsilon is the float64 machine epsilon.
const roundingEpsilon = 2.220446049250313e-16

// Round2 rounds half up to 2 decimal places after an epsilon nudge.
// Negative halves round toward positive infinity.
func Round2(x float64) float64 {
	return math.Floor((x+roundingEpsilon)*100+0.5) / 100
}

func GrossPay(daysWorked int, dailyRate float64) float64 {
	return Round2(float64(daysWorked) * dailyRate)
}

func NetPay(grossPay, deductions float64) float64 {
	return Round2(grossPay - deductions)
}

// NewEntry computes the money fields of a line server-side. Rate and deductions are
// taken to cents first so gross and net agree with the stored NUMERIC(12,2) columns.
func NewEntry(employeeID string, year, month, daysWorked int, dailyRate, deductions float64, remarks *string) Entry {
	rate := Round2(dailyRate)
	ded := Round2(deductions)
	gross := GrossPay(daysWorked, rate)
	return Entry{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		DaysWorked: daysWorked,
		DailyRate:  rate,
		GrossPay:   gross,
		Deductions: ded,
		NetPay:     NetPay(gross, ded),
		Remarks:    remarks,
	}
}

// NewPreviewEntry builds an uncommitted line. Previews carry no deductions so gross equals net.
func NewPreviewEntry(emp employee.Employee, year, month, daysWorked int) EntryView {
	entry := NewEntry(emp.ID, year, month, daysWorked, emp.DailyRate, 0, nil)
	return NewEntryView(entry, &EmployeeProfile{
		Name:       emp.DisplayName(),
		Department: employee.DepartmentOrDefault(emp.Department),
		Position:   emp.Position,
	})
}

// NewEntryView attaches directory fields to a stored entry. A nil profile means the
// employee no longer resolves and the placeholder name is used.
func NewEntryView(entry Entry, profile *EmployeeProfile) EntryView {
	view := EntryView{
		ID:         entry.ID,
		UserID:     entry.EmployeeID,
		DaysWorked: entry.DaysWorked,
		DailyRate:  Round2(entry.DailyRate),
		GrossPay:   Round2(entry.GrossPay),
		Deductions: Round2(entry.Deductions),
		NetPay:     Round2(entry.NetPay),
		Remarks:    entry.Remarks,
	}
	if profile == nil {
		view.EmployeeName = UnknownEmployeeName
		return view
	}
	view.EmployeeName = profile.Name
	view.Department = profile.Department
	view.Position = profile.Position
	return view
}

// Summarize totals each money column first and rounds the totals once.
func Summarize(entries []EntryView) Summary {
	var gross, deductions, net float64
	for _, e := range entries {
		gross += e.GrossPay
		deductions += e.Deductions
		net += e.NetPay
	}
	return Summary{
		TotalGross:      Round2(gross),
		TotalDeductions: Round2(deductions),
		TotalNet:        Round2(net),
		EmployeeCount:   len(entries),
	}
}

// SortEntriesByName orders entries by display name using locale-aware collation,
// falling back to employee id for equal names.
func SortEntriesByName(entries []EntryView) {
	c := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		if cmp := c.CompareString(entries[i].EmployeeName, entries[j].EmployeeName); cmp != 0 {
			return cmp < 0
		}
		return entries[i].UserID < entries[j].UserID
	})
}

// PeriodLabel renders a period as e.g. "January 2025".
func PeriodLabel(year, month int) string {
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", time.Month(month).String(), year)
}
