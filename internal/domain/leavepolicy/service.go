package leavepolicy

import "context"

// LeavePolicyService manages per-company leave policies. Create and
// Update keep the at-most-one-default invariant by unsetting other
// defaults in the same transaction.
type LeavePolicyService interface {
	Create(ctx context.Context, companyID string, req CreatePolicyRequest) (PolicyResponse, error)
	Update(ctx context.Context, companyID string, policyID string, req UpdatePolicyRequest) (PolicyResponse, error)

	// Delete rejects default policies with ErrCannotDeleteDefaultPolicy.
	Delete(ctx context.Context, companyID string, policyID string) error

	ListForCompany(ctx context.Context, companyID string) ([]PolicyResponse, error)
	ListAll(ctx context.Context) ([]PolicyResponse, error)
	Statistics(ctx context.Context) (Statistics, error)
}
