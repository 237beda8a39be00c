package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	UserID      *string          `json:"user_id,omitempty"`
	Designation *string          `json:"designation,omitempty"`
	TaxID       *string          `json:"tax_id,omitempty"`
	BaseSalary  *decimal.Decimal `json:"base_salary,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "is required"})
	} else if !validator.IsValidEmployeeCode(r.Code) {
		errs = append(errs, validator.ValidationError{Field: "code", Message: "has an invalid format"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID          string           `json:"id"`
	CompanyID   string           `json:"company_id"`
	UserID      *string          `json:"user_id,omitempty"`
	Name        string           `json:"name"`
	Code        string           `json:"code"`
	Designation *string          `json:"designation,omitempty"`
	TaxID       *string          `json:"tax_id,omitempty"`
	BaseSalary  *decimal.Decimal `json:"base_salary,omitempty"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		UserID:      e.UserID,
		Name:        e.Name,
		Code:        e.Code,
		Designation: e.Designation,
		TaxID:       e.TaxID,
		BaseSalary:  e.BaseSalary,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
	}
}
