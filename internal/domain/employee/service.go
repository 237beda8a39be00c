package employee

import "context"

type EmployeeService interface {
	// Create adds an employee to the caller's company. Rejects with
	// ErrSeatLimitExceeded once the plan's MaxEmployees is reached.
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	List(ctx context.Context, activeOnly bool) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}
