package leavepolicy

import "context"

type LeavePolicyRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (LeavePolicy, error)
	Create(ctx context.Context, p LeavePolicy) (LeavePolicy, error)
	Update(ctx context.Context, id string, companyID string, req UpdatePolicyRequest) error
	Delete(ctx context.Context, id string, companyID string) error

	// ListByCompanyID orders by is_default desc, created_at desc.
	ListByCompanyID(ctx context.Context, companyID string) ([]LeavePolicy, error)
	ListAll(ctx context.Context) ([]LeavePolicy, error)

	// UnsetDefaults clears is_default on every policy of the company
	// except the one with excludeID (pass "" to clear all).
	UnsetDefaults(ctx context.Context, companyID string, excludeID string) error

	CountAll(ctx context.Context) (int, error)
	CountDefaults(ctx context.Context) (int, error)
	CountCompaniesWithPolicies(ctx context.Context) (int, error)
}
