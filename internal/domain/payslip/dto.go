package payslip

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/validator"
)

type CreatePayslipRequest struct {
	EmployeeID         string          `json:"employee_id"`
	PeriodStart        string          `json:"period_start"` // YYYY-MM-DD
	PeriodEnd          string          `json:"period_end"`   // YYYY-MM-DD
	TotalHours         decimal.Decimal `json:"total_hours"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Incomes            []LineItem      `json:"incomes"`
	DeductionItems     []LineItem      `json:"deduction_items"`
}

func (r *CreatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, valid := validator.IsValidDate(r.PeriodStart); !valid {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if _, valid := validator.IsValidDate(r.PeriodEnd); !valid {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if r.GrossPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "gross_pay", Message: "must not be negative"})
	}
	if r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "must not be negative"})
	}
	for _, item := range r.Incomes {
		if validator.IsEmpty(item.Type) {
			errs = append(errs, validator.ValidationError{Field: "incomes", Message: "item type is required"})
			break
		}
	}
	for _, item := range r.DeductionItems {
		if validator.IsEmpty(item.Type) {
			errs = append(errs, validator.ValidationError{Field: "deduction_items", Message: "item type is required"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePayslipRequest struct {
	TotalHours         *decimal.Decimal `json:"total_hours,omitempty"`
	OvertimeHours      *decimal.Decimal `json:"overtime_hours,omitempty"`
	OvertimeMultiplier *decimal.Decimal `json:"overtime_multiplier,omitempty"`
	GrossPay           *decimal.Decimal `json:"gross_pay,omitempty"`
	Deductions         *decimal.Decimal `json:"deductions,omitempty"`
	NetPay             *decimal.Decimal `json:"net_pay,omitempty"`
	Incomes            []LineItem       `json:"incomes,omitempty"`
	DeductionItems     []LineItem       `json:"deduction_items,omitempty"`
	AdminResponse      *string          `json:"admin_response,omitempty"`
}

func (r *UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GrossPay != nil && r.GrossPay.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "gross_pay", Message: "must not be negative"})
	}
	if r.Deductions != nil && r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	Status          string  `json:"status"`
	EmployeeComment *string `json:"employee_comment,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of pending, needs_review, approved, acknowledged"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID                 string          `json:"id"`
	CompanyID          string          `json:"company_id"`
	EmployeeID         string          `json:"employee_id"`
	PeriodStart        time.Time       `json:"period_start"`
	PeriodEnd          time.Time       `json:"period_end"`
	TotalHours         decimal.Decimal `json:"total_hours"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	OvertimeMultiplier decimal.Decimal `json:"overtime_multiplier"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	Deductions         decimal.Decimal `json:"deductions"`
	NetPay             decimal.Decimal `json:"net_pay"`
	Incomes            []LineItem      `json:"incomes"`
	DeductionItems     []LineItem      `json:"deduction_items"`
	Status             string          `json:"status"`
	EmployeeComment    *string         `json:"employee_comment,omitempty"`
	AdminResponse      *string         `json:"admin_response,omitempty"`
	CompanyInfo        CompanySnapshot `json:"company_info"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                 p.ID,
		CompanyID:          p.CompanyID,
		EmployeeID:         p.EmployeeID,
		PeriodStart:        p.PeriodStart,
		PeriodEnd:          p.PeriodEnd,
		TotalHours:         p.TotalHours,
		OvertimeHours:      p.OvertimeHours,
		OvertimeMultiplier: p.OvertimeMultiplier,
		GrossPay:           p.GrossPay,
		Deductions:         p.Deductions,
		NetPay:             p.NetPay,
		Incomes:            p.Incomes,
		DeductionItems:     p.DeductionItems,
		Status:             string(p.Status),
		EmployeeComment:    p.EmployeeComment,
		AdminResponse:      p.AdminResponse,
		CompanyInfo:        p.CompanyInfo,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
