package company

import (
	"context"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
)

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetByDomain(ctx context.Context, domain string) (Company, error)
	Create(ctx context.Context, c Company) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) error
	UpdateStatus(ctx context.Context, id string, status CompanyStatus) error

	// SetPlan updates the plan reference only; the feature snapshot is
	// written separately by SyncEntitlements in the same transaction.
	SetPlan(ctx context.Context, id string, planID string) error

	// SyncEntitlements overwrites the denormalized feature/limit snapshot
	// and bumps feature_version. Returns the new version.
	SyncEntitlements(ctx context.Context, id string, features plan.FeatureFlags, limits plan.Limits) (int64, error)
}
