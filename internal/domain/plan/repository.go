package plan

import "context"

// PlanRepository handles plan catalog data operations.
type PlanRepository interface {
	// Create inserts a plan. When IsDefault is set the caller must run it
	// inside a transaction together with UnsetDefaults.
	Create(ctx context.Context, p Plan) (Plan, error)

	// GetByID retrieves a plan by its ID.
	GetByID(ctx context.Context, id string) (Plan, error)

	// GetByName retrieves a plan by its unique name.
	GetByName(ctx context.Context, name string) (Plan, error)

	// GetDefault retrieves the default plan.
	GetDefault(ctx context.Context) (Plan, error)

	// List retrieves plans ordered by sort_order.
	List(ctx context.Context, activeOnly bool) ([]Plan, error)

	// Update applies a partial update.
	Update(ctx context.Context, req UpdatePlanRequest) error

	// UnsetDefaults clears is_default on every plan.
	UnsetDefaults(ctx context.Context) error

	// Upsert inserts or updates a plan keyed by name. Used by catalog seeding.
	Upsert(ctx context.Context, p Plan) (Plan, error)
}
