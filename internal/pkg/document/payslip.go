package document

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

const PDFContentType = "application/pdf"

// PayslipPDF renders a single-page payslip for one history entry.
func PayslipPDF(employeeID, employeeName string, entry payroll.EmployeePayslipResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s", entry.Period), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", employeeName))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %s", employeeID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", entry.Period))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Processed: %s", entry.ProcessedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	lines := [][2]string{
		{"Days worked", fmt.Sprintf("%d", entry.DaysWorked)},
		{"Daily rate", fmt.Sprintf("%.2f", entry.DailyRate)},
		{"Gross pay", fmt.Sprintf("%.2f", entry.GrossPay)},
		{"Deductions", fmt.Sprintf("%.2f", entry.Deductions)},
	}
	for _, line := range lines {
		pdf.CellFormat(60, 8, line[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, line[1], "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(60, 8, "Net pay", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f", entry.NetPay), "1", 1, "R", false, 0, "")

	if entry.Remarks != nil && *entry.Remarks != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Remarks: "+*entry.Remarks, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
