package payslip

import "context"

// PayslipService builds and mutates payroll records. Notification side
// effects are queued best-effort; their failure never aborts the
// primary operation.
type PayslipService interface {
	// Create snapshots the company branding into the record and notifies
	// the employee that payroll was processed.
	Create(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error)

	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	List(ctx context.Context) ([]PayslipResponse, error)

	// ListMine retrieves the payslips of the employee record linked to
	// the calling user.
	ListMine(ctx context.Context) ([]PayslipResponse, error)

	// Update applies a generic admin edit. A payslip sitting in
	// needs_review reverts to pending when edited this way.
	Update(ctx context.Context, id string, req UpdatePayslipRequest) (PayslipResponse, error)

	// UpdateStatus applies the review state machine. Side effects fire
	// only when the status actually changes.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (PayslipResponse, error)

	// DownloadPDF renders a single payslip to PDF bytes.
	DownloadPDF(ctx context.Context, id string) ([]byte, error)

	// DownloadEmployeePDF renders every payslip of the employee in the
	// date range, one page each. ErrNoPayslipsFound when empty.
	DownloadEmployeePDF(ctx context.Context, employeeID string, start, end string) ([]byte, error)

	// DownloadEmployeeCSV flattens the same set into CSV text.
	DownloadEmployeeCSV(ctx context.Context, employeeID string, start, end string) ([]byte, error)
}
