package document

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
)

func testEmployee() employee.Employee {
	designation := "Software Engineer"
	taxID := "ABCDE1234F"
	return employee.Employee{
		ID:          "emp-1",
		CompanyID:   "comp-1",
		Name:        "Jane Doe",
		Code:        "2024-0001",
		Designation: &designation,
		TaxID:       &taxID,
	}
}

func testPayslip() payslip.Payslip {
	return payslip.Payslip{
		ID:          "pay-1",
		CompanyID:   "comp-1",
		EmployeeID:  "emp-1",
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		TotalHours:  decimal.NewFromInt(160),
		GrossPay:    decimal.NewFromInt(5000),
		Deductions:  decimal.NewFromInt(750),
		NetPay:      decimal.NewFromInt(4250),
		Incomes: []payslip.LineItem{
			{Type: "Base Salary", Amount: decimal.NewFromInt(4500)},
			{Type: "Overtime", Amount: decimal.NewFromInt(500)},
		},
		DeductionItems: []payslip.LineItem{
			{Type: "Income Tax", Amount: decimal.NewFromInt(600)},
			{Type: "Health Insurance", Amount: decimal.NewFromInt(150)},
		},
		Status:      payslip.StatusPending,
		CompanyInfo: payslip.CompanySnapshot{Name: "Acme Corp"},
	}
}

func TestRenderCSVQuotesEveryField(t *testing.T) {
	out := RenderCSV([]payslip.Payslip{testPayslip()}, testEmployee())

	lines := strings.Split(strings.TrimSpace(string(out)), "\r\n")
	require.Len(t, lines, 2)

	for _, line := range lines {
		fields := splitQuotedRow(t, line)
		assert.Len(t, fields, len(csvHeader))
	}
}

func TestRenderCSVEscapesEmbeddedQuotes(t *testing.T) {
	p := testPayslip()
	p.Incomes = []payslip.LineItem{{Type: `Bonus "Q4"`, Amount: decimal.NewFromInt(100)}}

	out := RenderCSV([]payslip.Payslip{p}, testEmployee())
	assert.Contains(t, string(out), `"Bonus ""Q4"":100.00"`)
}

func TestLineItemsRoundTrip(t *testing.T) {
	original := []payslip.LineItem{
		{Type: "Base Salary", Amount: decimal.NewFromInt(4500)},
		{Type: "Overtime", Amount: decimal.NewFromFloat(512.50)},
		{Type: "Meal Allowance", Amount: decimal.NewFromInt(75)},
	}

	parsed, err := ParseLineItems(JoinLineItems(original))
	require.NoError(t, err)
	require.Len(t, parsed, len(original))

	for i := range original {
		assert.Equal(t, original[i].Type, parsed[i].Type)
		assert.True(t, original[i].Amount.Equal(parsed[i].Amount),
			"amount mismatch at %d: %s vs %s", i, original[i].Amount, parsed[i].Amount)
	}
}

func TestLineItemsRoundTripThroughCSVRow(t *testing.T) {
	p := testPayslip()
	out := RenderCSV([]payslip.Payslip{p}, testEmployee())

	lines := strings.Split(strings.TrimSpace(string(out)), "\r\n")
	require.Len(t, lines, 2)
	fields := splitQuotedRow(t, lines[1])
	require.Len(t, fields, len(csvHeader))

	incomes, err := ParseLineItems(fields[11])
	require.NoError(t, err)
	require.Len(t, incomes, 2)
	assert.Equal(t, "Base Salary", incomes[0].Type)
	assert.True(t, incomes[0].Amount.Equal(decimal.NewFromInt(4500)))

	deds, err := ParseLineItems(fields[12])
	require.NoError(t, err)
	require.Len(t, deds, 2)
	assert.Equal(t, "Income Tax", deds[0].Type)
	assert.True(t, deds[1].Amount.Equal(decimal.NewFromInt(150)))
}

func TestParseLineItemsEmpty(t *testing.T) {
	items, err := ParseLineItems("")
	require.NoError(t, err)
	assert.Empty(t, items)
}

// splitQuotedRow parses a row where every field is known to be quoted.
func splitQuotedRow(t *testing.T, line string) []string {
	t.Helper()
	require.True(t, strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`), "row not fully quoted: %s", line)

	trimmed := line[1 : len(line)-1]
	parts := strings.Split(trimmed, `","`)
	for i, p := range parts {
		parts[i] = strings.ReplaceAll(p, `""`, `"`)
	}
	return parts
}
