package document

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
)

var csvHeader = []string{
	"Employee Name", "Employee Code", "Designation", "Tax ID",
	"Period Start", "Period End", "Total Hours", "Overtime Hours",
	"Gross Pay", "Deductions", "Net Pay", "Incomes", "Deduction Items",
	"Status", "Company",
}

// RenderCSV flattens payslips into one row per record. Every field is
// quoted, including numeric ones, and itemized lists are joined as
// "type:amount; type:amount".
func RenderCSV(ps []payslip.Payslip, emp employee.Employee) []byte {
	var buf bytes.Buffer

	writeCSVRow(&buf, csvHeader)

	designation := ""
	if emp.Designation != nil {
		designation = *emp.Designation
	}
	taxID := ""
	if emp.TaxID != nil {
		taxID = *emp.TaxID
	}

	for _, p := range ps {
		writeCSVRow(&buf, []string{
			emp.Name,
			emp.Code,
			designation,
			taxID,
			p.PeriodStart.Format("2006-01-02"),
			p.PeriodEnd.Format("2006-01-02"),
			p.TotalHours.String(),
			p.OvertimeHours.String(),
			p.GrossPay.StringFixed(2),
			p.Deductions.StringFixed(2),
			p.NetPay.StringFixed(2),
			JoinLineItems(p.Incomes),
			JoinLineItems(p.DeductionItems),
			string(p.Status),
			p.CompanyInfo.Name,
		})
	}

	return buf.Bytes()
}

// writeCSVRow quotes every field unconditionally; the stdlib csv writer
// only quotes when required, which breaks consumers expecting a uniform
// quoted format.
func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}

// JoinLineItems serializes itemized entries as "type:amount; type:amount".
func JoinLineItems(items []payslip.LineItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Type + ":" + item.Amount.StringFixed(2)
	}
	return strings.Join(parts, "; ")
}

// ParseLineItems is the inverse of JoinLineItems. Used by export
// consumers and round-trip tests.
func ParseLineItems(s string) ([]payslip.LineItem, error) {
	if s == "" {
		return nil, nil
	}
	var items []payslip.LineItem
	for _, part := range strings.Split(s, "; ") {
		idx := strings.LastIndex(part, ":")
		if idx < 0 {
			continue
		}
		amount, err := decimal.NewFromString(part[idx+1:])
		if err != nil {
			return nil, err
		}
		items = append(items, payslip.LineItem{Type: part[:idx], Amount: amount})
	}
	return items, nil
}
