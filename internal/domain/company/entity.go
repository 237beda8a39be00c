package company

import (
	"time"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
)

// CompanyStatus represents the lifecycle state of a tenant.
type CompanyStatus string

const (
	StatusActive    CompanyStatus = "active"
	StatusSuspended CompanyStatus = "suspended"
	StatusTrial     CompanyStatus = "trial"
	StatusExpired   CompanyStatus = "expired"
	StatusCancelled CompanyStatus = "cancelled"
)

// ValidStatuses lists every accepted company status.
func ValidStatuses() []CompanyStatus {
	return []CompanyStatus{StatusActive, StatusSuspended, StatusTrial, StatusExpired, StatusCancelled}
}

// Company represents a tenant. Features and Limits are a denormalized
// snapshot of the referenced plan, written exclusively by the resync
// operation and stamped with a monotonic FeatureVersion.
type Company struct {
	ID             string
	Name           string
	Domain         string
	PlanID         string
	Features       plan.FeatureFlags
	Limits         plan.Limits
	FeatureVersion int64
	Status         CompanyStatus
	LogoURL        *string
	PrimaryColor   *string
	SecondaryColor *string
	Address        *string
	Phone          *string
	Email          *string
	RegistrationNo *string
	TaxID          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOperational reports whether the tenant may use the product.
func (c Company) IsOperational() bool {
	return c.Status == StatusActive || c.Status == StatusTrial
}
