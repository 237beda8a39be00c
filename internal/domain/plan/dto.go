package plan

import (
	"github.com/shopspring/decimal"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/validator"
)

type CreatePlanRequest struct {
	Name         string          `json:"name"`
	PriceMonthly decimal.Decimal `json:"price_monthly"`
	PriceYearly  decimal.Decimal `json:"price_yearly"`
	Features     FeatureFlags    `json:"features"`
	Limits       Limits          `json:"limits"`
	IsDefault    bool            `json:"is_default"`
	SortOrder    int             `json:"sort_order"`
}

func (r *CreatePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.PriceMonthly.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "price_monthly", Message: "must be non-negative"})
	}
	if r.PriceYearly.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "price_yearly", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePlanRequest struct {
	ID           string
	Name         *string          `json:"name,omitempty"`
	PriceMonthly *decimal.Decimal `json:"price_monthly,omitempty"`
	PriceYearly  *decimal.Decimal `json:"price_yearly,omitempty"`
	Features     *FeatureFlags    `json:"features,omitempty"`
	Limits       *Limits          `json:"limits,omitempty"`
	IsDefault    *bool            `json:"is_default,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
	SortOrder    *int             `json:"sort_order,omitempty"`
}

func (r *UpdatePlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.PriceMonthly != nil && r.PriceMonthly.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "price_monthly", Message: "must be non-negative"})
	}
	if r.PriceYearly != nil && r.PriceYearly.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "price_yearly", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PriceMonthly decimal.Decimal `json:"price_monthly"`
	PriceYearly  decimal.Decimal `json:"price_yearly"`
	Features     FeatureFlags    `json:"features"`
	Limits       Limits          `json:"limits"`
	IsDefault    bool            `json:"is_default"`
	IsActive     bool            `json:"is_active"`
	SortOrder    int             `json:"sort_order"`
}
