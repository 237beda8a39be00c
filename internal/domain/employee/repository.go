package employee

import "context"

// EmployeeRepository defines data access for employees. All methods take
// companyID to prevent cross-company data access.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByUserID(ctx context.Context, userID string, companyID string) (Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	ListByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]Employee, error)
	CountActiveByCompanyID(ctx context.Context, companyID string) (int, error)
}
