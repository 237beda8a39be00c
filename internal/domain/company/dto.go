package company

import (
	"time"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/validator"
)

type SignupRequest struct {
	CompanyName   string `json:"company_name"`
	Domain        string `json:"domain"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{Field: "company_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Domain) {
		errs = append(errs, validator.ValidationError{Field: "domain", Message: "is required"})
	} else if !validator.IsValidDomain(r.Domain) {
		errs = append(errs, validator.ValidationError{Field: "domain", Message: "must be a valid domain name"})
	}
	if !validator.IsValidEmail(r.AdminEmail) {
		errs = append(errs, validator.ValidationError{Field: "admin_email", Message: "must be a valid email"})
	}
	if len(r.AdminPassword) < 8 {
		errs = append(errs, validator.ValidationError{Field: "admin_password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateCompanyRequest struct {
	Name           *string `json:"name,omitempty"`
	Address        *string `json:"address,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	LogoURL        *string `json:"logo_url,omitempty"`
	PrimaryColor   *string `json:"primary_color,omitempty"`
	SecondaryColor *string `json:"secondary_color,omitempty"`
	RegistrationNo *string `json:"registration_no,omitempty"`
	TaxID          *string `json:"tax_id,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Email != nil && *r.Email != "" && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if r.PrimaryColor != nil && *r.PrimaryColor != "" && !validator.IsValidHexColor(*r.PrimaryColor) {
		errs = append(errs, validator.ValidationError{Field: "primary_color", Message: "must be a hex color like #1a2b3c"})
	}
	if r.SecondaryColor != nil && *r.SecondaryColor != "" && !validator.IsValidHexColor(*r.SecondaryColor) {
		errs = append(errs, validator.ValidationError{Field: "secondary_color", Message: "must be a hex color like #1a2b3c"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignPlanRequest struct {
	PlanID string `json:"plan_id"`
}

func (r *AssignPlanRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PlanID) {
		errs = append(errs, validator.ValidationError{Field: "plan_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	valid := false
	for _, s := range ValidStatuses() {
		if string(s) == r.Status {
			valid = true
			break
		}
	}
	if !valid {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of active, suspended, trial, expired, cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CompanyResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Domain         string            `json:"domain"`
	PlanID         string            `json:"plan_id"`
	Features       plan.FeatureFlags `json:"features"`
	Limits         plan.Limits       `json:"limits"`
	FeatureVersion int64             `json:"feature_version"`
	Status         string            `json:"status"`
	LogoURL        *string           `json:"logo_url,omitempty"`
	PrimaryColor   *string           `json:"primary_color,omitempty"`
	SecondaryColor *string           `json:"secondary_color,omitempty"`
	Address        *string           `json:"address,omitempty"`
	Phone          *string           `json:"phone,omitempty"`
	Email          *string           `json:"email,omitempty"`
	RegistrationNo *string           `json:"registration_no,omitempty"`
	TaxID          *string           `json:"tax_id,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type SignupResponse struct {
	Company          CompanyResponse `json:"company"`
	AccessToken      string          `json:"access_token"`
	RefreshToken     string          `json:"refresh_token"`
	ExpiresAt        int64           `json:"expires_at"`
	RefreshExpiresAt int64           `json:"refresh_expires_at"`
}

// RefreshRequest carries the refresh token when the client does not use
// the refresh cookie.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthTokensResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresAt        int64  `json:"expires_at"`
	RefreshExpiresAt int64  `json:"refresh_expires_at"`
}
