package employee

import (
	"math"
	"strings"
)

const (
	UnnamedDisplayName   = "Unnamed"
	UnassignedDepartment = "Unassigned"
)

// Employee is the directory view the payroll engine reads. It is never written from here.
type Employee struct {
	ID         string
	FirstName  string
	LastName   string
	Department string
	Position   string
	DailyRate  float64
}

// DisplayName returns "first last", or UnnamedDisplayName when both parts are blank.
func (e Employee) DisplayName() string {
	return DisplayName(e.FirstName, e.LastName)
}

type EmploymentStatus string

const (
	EmploymentStatusActive EmploymentStatus = "Active"
)

// Role values excluded from payroll.
const RoleAdmin = "admin"

func DisplayName(firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name == "" {
		return UnnamedDisplayName
	}
	return name
}

func DepartmentOrDefault(department string) string {
	if strings.TrimSpace(department) == "" {
		return UnassignedDepartment
	}
	return department
}

// NormalizeDailyRate coerces a stored rate to a usable non-negative number.
// valid is false when the column was NULL.
func NormalizeDailyRate(value float64, valid bool) float64 {
	if !valid || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}
