package payslip

import (
	"context"
	"time"
)

type PayslipRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	Create(ctx context.Context, p Payslip) (Payslip, error)
	Update(ctx context.Context, id string, companyID string, req UpdatePayslipRequest) error
	UpdateStatus(ctx context.Context, id string, companyID string, status Status, employeeComment *string) error
	ListByCompanyID(ctx context.Context, companyID string) ([]Payslip, error)

	// ListByEmployeeID filters by period overlap with [start, end] when
	// both bounds are non-zero, ordered by period_start desc.
	ListByEmployeeID(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]Payslip, error)
}
