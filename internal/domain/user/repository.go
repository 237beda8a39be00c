package user

import "context"

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, u User) (User, error)

	// ListAdminsByCompanyID returns active admin users for a company.
	// Used for notification fan-out on payslip status changes.
	ListAdminsByCompanyID(ctx context.Context, companyID string) ([]User, error)
}
