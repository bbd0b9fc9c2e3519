package pdf

import (
	"bytes"
	"fmt"

	"github.com/agrifarm/farmpay-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// RenderPayslip renders a committed payment slip as a single-page PDF and
// returns the document bytes so the handler can stream it.
func RenderPayslip(slip payroll.PaymentSlipResponse) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", slip.EmployeeName, slip.EmployeeCode))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %02d/%d", slip.PeriodMonth, slip.PeriodYear))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Committed: %s", slip.CommittedAt))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Basic salary: %s", slip.BasicSalary.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Allowances: %s", slip.Allowances.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Overtime: %s", slip.OTTotal.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Gross: %s", slip.Gross.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("EPF: %s", slip.EPF.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("ETF (employer): %s", slip.ETF.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Loan deduction: %s", slip.LoanDeduction.StringFixed(2)))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Net pay: %s", slip.Net.StringFixed(2)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}
