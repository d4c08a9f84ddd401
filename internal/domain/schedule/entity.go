package schedule

import "strings"

// ShiftCodeOff marks a rostered day off.
const ShiftCodeOff = "O"

// ScheduleEntry is one assigned shift; (EmployeeID, Year, Month, Day) is unique.
type ScheduleEntry struct {
	EmployeeID string
	Year       int
	Month      int
	Day        int
	ShiftCode  string
}

// IsWorkedDay reports whether the entry counts as a worked day: any
// non-empty shift code other than ShiftCodeOff.
func (e ScheduleEntry) IsWorkedDay() bool {
	code := strings.TrimSpace(e.ShiftCode)
	return code != "" && code != ShiftCodeOff
}

// WorkedDaysByEmployee counts worked days per employee id.
func WorkedDaysByEmployee(entries []ScheduleEntry) map[string]int {
	result := make(map[string]int)
	for _, entry := range entries {
		if entry.IsWorkedDay() {
			result[entry.EmployeeID]++
		}
	}
	return result
}
