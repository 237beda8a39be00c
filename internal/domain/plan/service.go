package plan

import "context"

// PlanService handles plan catalog business logic.
type PlanService interface {
	// GetPlans retrieves plans, active ones only unless includeInactive.
	GetPlans(ctx context.Context, includeInactive bool) ([]PlanResponse, error)

	// GetPlanByID retrieves a specific plan.
	GetPlanByID(ctx context.Context, id string) (PlanResponse, error)

	// CreatePlan adds a plan to the catalog. When the new plan is marked
	// default, every other plan loses its default flag in the same
	// transaction.
	CreatePlan(ctx context.Context, req CreatePlanRequest) (PlanResponse, error)

	// UpdatePlan applies a partial update; the default-flag rule from
	// CreatePlan applies here too.
	UpdatePlan(ctx context.Context, req UpdatePlanRequest) (PlanResponse, error)

	// SeedDefaults upserts the built-in catalog. Idempotent.
	SeedDefaults(ctx context.Context) error
}
