package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the review lifecycle of a payslip.
type Status string

const (
	StatusPending      Status = "pending"
	StatusNeedsReview  Status = "needs_review"
	StatusApproved     Status = "approved"
	StatusAcknowledged Status = "acknowledged"
)

// ValidStatuses lists every accepted payslip status.
func ValidStatuses() []Status {
	return []Status{StatusPending, StatusNeedsReview, StatusApproved, StatusAcknowledged}
}

// IsValidStatus reports whether s is an accepted payslip status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses() {
		if string(v) == s {
			return true
		}
	}
	return false
}

// LineItem is one itemized income or deduction entry.
type LineItem struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// CompanySnapshot is the branding captured at issuance time. Historical
// payslips keep the branding that was in effect when they were created,
// not a live reference to the company record.
type CompanySnapshot struct {
	Name           string `json:"name"`
	LogoURL        string `json:"logo_url"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	RegistrationNo string `json:"registration_no"`
	TaxID          string `json:"tax_id"`
	PrimaryColor   string `json:"primary_color"`
}

// Payslip is one pay-period compensation statement for one employee.
// GrossPay and Deductions are independently settable scalars; they are
// not derived from the itemized lists.
type Payslip struct {
	ID                 string
	CompanyID          string
	EmployeeID         string
	PeriodStart        time.Time
	PeriodEnd          time.Time
	TotalHours         decimal.Decimal
	OvertimeHours      decimal.Decimal
	OvertimeMultiplier decimal.Decimal
	GrossPay           decimal.Decimal
	Deductions         decimal.Decimal
	NetPay             decimal.Decimal
	Incomes            []LineItem
	DeductionItems     []LineItem
	Status             Status
	EmployeeComment    *string
	AdminResponse      *string
	CompanyInfo        CompanySnapshot
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PayPeriod formats the period for notification messages, e.g.
// "01 Jan 2026 - 31 Jan 2026".
func (p Payslip) PayPeriod() string {
	return p.PeriodStart.Format("02 Jan 2006") + " - " + p.PeriodEnd.Format("02 Jan 2006")
}
