package company

import "context"

// CompanyService handles tenant business logic.
type CompanyService interface {
	// Signup creates the company on the default plan with a resolved
	// feature snapshot plus its first admin user, in one transaction.
	Signup(ctx context.Context, req SignupRequest) (SignupResponse, error)

	// Refresh redeems a refresh token for a new token pair. The refresh
	// token is rotated: the presented one is revoked and single-use.
	Refresh(ctx context.Context, refreshToken string) (AuthTokensResponse, error)

	// Logout revokes the presented tokens. Empty tokens are ignored.
	Logout(ctx context.Context, accessToken string, refreshToken string) error

	GetByID(ctx context.Context, id string) (CompanyResponse, error)
	List(ctx context.Context) ([]CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) error

	// UpdateStatus soft-deactivates or reactivates a tenant. Companies are
	// never hard-deleted.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) error

	// AssignPlan changes the plan reference and resyncs the feature
	// snapshot in the same transaction.
	AssignPlan(ctx context.Context, id string, req AssignPlanRequest) (CompanyResponse, error)

	// ResyncFeatures re-derives the feature/limit snapshot from the
	// current plan. This is the single writer of the snapshot.
	ResyncFeatures(ctx context.Context, id string) (CompanyResponse, error)

	// HasFeature checks the company snapshot for a feature code.
	HasFeature(ctx context.Context, companyID string, featureCode string) (bool, error)
}
