package document

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var payrollHeader = []interface{}{
	"Employee ID", "Employee", "Department", "Position", "Days Worked",
	"Daily Rate", "Gross Pay", "Deductions", "Net Pay", "Remarks",
}

func PayrollSheetName(year, month int) string {
	return fmt.Sprintf("Payroll %04d-%02d", year, month)
}

// PayrollWorkbook renders a payroll sheet: header row, one row per entry, then a totals row.
func PayrollWorkbook(year, month int, resp payroll.PayrollResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := PayrollSheetName(year, month)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	if err := setRow(f, sheet, 1, payrollHeader); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(payrollHeader), 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return nil, err
	}

	row := 2
	for _, e := range resp.Entries {
		remarks := ""
		if e.Remarks != nil {
			remarks = *e.Remarks
		}
		values := []interface{}{
			e.UserID, e.EmployeeName, e.Department, e.Position, e.DaysWorked,
			e.DailyRate, e.GrossPay, e.Deductions, e.NetPay, remarks,
		}
		if err := setRow(f, sheet, row, values); err != nil {
			return nil, err
		}
		row++
	}

	totals := []interface{}{
		"", "Total", "", "", resp.Summary.EmployeeCount,
		"", resp.Summary.TotalGross, resp.Summary.TotalDeductions, resp.Summary.TotalNet, "",
	}
	if err := setRow(f, sheet, row, totals); err != nil {
		return nil, err
	}
	totalsStart, _ := excelize.CoordinatesToCellName(1, row)
	totalsEnd, _ := excelize.CoordinatesToCellName(len(payrollHeader), row)
	if err := f.SetCellStyle(sheet, totalsStart, totalsEnd, headerStyle); err != nil {
		return nil, err
	}
	moneyEnd, _ := excelize.CoordinatesToCellName(9, row-1)
	if row > 2 {
		if err := f.SetCellStyle(sheet, "F2", moneyEnd, moneyStyle); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if _, err := f.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
