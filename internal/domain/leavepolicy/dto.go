package leavepolicy

import (
	"time"

	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/validator"
)

type CreatePolicyRequest struct {
	Name         string                 `json:"name"`
	Entitlements map[string]Entitlement `json:"entitlements"`
	Rules        Rules                  `json:"rules"`
	IsDefault    bool                   `json:"is_default"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	for key, ent := range r.Entitlements {
		if ent.TotalDays < 0 {
			errs = append(errs, validator.ValidationError{Field: "entitlements." + key + ".total_days", Message: "must not be negative"})
		}
	}
	errs = append(errs, validateRules(r.Rules)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePolicyRequest struct {
	Name         *string                `json:"name,omitempty"`
	Entitlements map[string]Entitlement `json:"entitlements,omitempty"`
	Rules        *Rules                 `json:"rules,omitempty"`
	IsDefault    *bool                  `json:"is_default,omitempty"`
	IsActive     *bool                  `json:"is_active,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	for key, ent := range r.Entitlements {
		if ent.TotalDays < 0 {
			errs = append(errs, validator.ValidationError{Field: "entitlements." + key + ".total_days", Message: "must not be negative"})
		}
	}
	if r.Rules != nil {
		errs = append(errs, validateRules(*r.Rules)...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateRules(rules Rules) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if rules.MinNoticeDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "rules.min_notice_days", Message: "must not be negative"})
	}
	if rules.MaxConsecutiveDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "rules.max_consecutive_days", Message: "must not be negative"})
	}
	if rules.MaxCarryOverDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "rules.max_carry_over_days", Message: "must not be negative"})
	}
	if rules.LeaveYearStart != "" {
		if _, err := time.Parse("01-02", rules.LeaveYearStart); err != nil {
			errs = append(errs, validator.ValidationError{Field: "rules.leave_year_start", Message: "must be in MM-DD format"})
		}
	}
	return errs
}

type PolicyResponse struct {
	ID           string                 `json:"id"`
	CompanyID    string                 `json:"company_id"`
	Name         string                 `json:"name"`
	Entitlements map[string]Entitlement `json:"entitlements"`
	Rules        Rules                  `json:"rules"`
	IsDefault    bool                   `json:"is_default"`
	IsActive     bool                   `json:"is_active"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

func ToPolicyResponse(p LeavePolicy) PolicyResponse {
	return PolicyResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		Name:         p.Name,
		Entitlements: p.Entitlements,
		Rules:        p.Rules,
		IsDefault:    p.IsDefault,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
