package payslip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/document"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/notification"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/obs"
)

type payslipServiceImpl struct {
	payslipRepo  payslip.PayslipRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	userRepo     user.UserRepository
	dispatcher   notification.Dispatcher
	renderer     *document.PDFRenderer
	txMgr        database.TxManager
	logger       *slog.Logger
}

func NewPayslipService(
	payslipRepo payslip.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	userRepo user.UserRepository,
	dispatcher notification.Dispatcher,
	renderer *document.PDFRenderer,
	txMgr database.TxManager,
	logger *slog.Logger,
) payslip.PayslipService {
	return &payslipServiceImpl{
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		renderer:     renderer,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func claimsFromContext(ctx context.Context) (companyID string, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id not found in token")
	}
	userID, _ = claims["user_id"].(string)
	return companyID, userID, nil
}

// snapshotFrom copies the branding in effect right now. Absent fields
// default to empty strings except the name, which keeps the rendered
// document presentable.
func snapshotFrom(c company.Company) payslip.CompanySnapshot {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}

	name := c.Name
	if name == "" {
		name = "Your Company Name"
	}

	return payslip.CompanySnapshot{
		Name:           name,
		LogoURL:        deref(c.LogoURL),
		Address:        deref(c.Address),
		Phone:          deref(c.Phone),
		Email:          deref(c.Email),
		RegistrationNo: deref(c.RegistrationNo),
		TaxID:          deref(c.TaxID),
		PrimaryColor:   deref(c.PrimaryColor),
	}
}

func (s *payslipServiceImpl) Create(ctx context.Context, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
	companyID, senderID, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if periodEnd.Before(periodStart) {
		return payslip.PayslipResponse{}, payslip.ErrInvalidPeriod
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	created, err := s.payslipRepo.Create(ctx, payslip.Payslip{
		CompanyID:          companyID,
		EmployeeID:         emp.ID,
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		TotalHours:         req.TotalHours,
		OvertimeHours:      req.OvertimeHours,
		OvertimeMultiplier: req.OvertimeMultiplier,
		GrossPay:           req.GrossPay,
		Deductions:         req.Deductions,
		NetPay:             req.NetPay,
		Incomes:            req.Incomes,
		DeductionItems:     req.DeductionItems,
		Status:             payslip.StatusPending,
		CompanyInfo:        snapshotFrom(c),
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	obs.CountPayslipCreated()

	if emp.UserID != nil {
		s.dispatch(ctx, notification.Intent{
			CompanyID:   companyID,
			RecipientID: *emp.UserID,
			SenderID:    &senderID,
			Type:        notification.TypePayrollProcessed,
			Title:       "Payroll Processed",
			Message:     fmt.Sprintf("Your payroll for %s has been processed.", created.PayPeriod()),
			Link:        "/payroll/" + created.ID,
		})
	}

	s.logger.Info("payslip created",
		"payslip_id", created.ID, "employee_id", emp.ID, "company_id", companyID)
	return payslip.ToPayslipResponse(created), nil
}

func (s *payslipServiceImpl) GetByID(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	p, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.ToPayslipResponse(p), nil
}

func (s *payslipServiceImpl) List(ctx context.Context) ([]payslip.PayslipResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payslips, err := s.payslipRepo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.PayslipResponse, len(payslips))
	for i, p := range payslips {
		responses[i] = payslip.ToPayslipResponse(p)
	}
	return responses, nil
}

func (s *payslipServiceImpl) ListMine(ctx context.Context) ([]payslip.PayslipResponse, error) {
	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.GetByUserID(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	payslips, err := s.payslipRepo.ListByEmployeeID(ctx, emp.ID, companyID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	responses := make([]payslip.PayslipResponse, len(payslips))
	for i, p := range payslips {
		responses[i] = payslip.ToPayslipResponse(p)
	}
	return responses, nil
}

func (s *payslipServiceImpl) Update(ctx context.Context, id string, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	err = s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.payslipRepo.GetByID(txCtx, id, companyID)
		if err != nil {
			return err
		}
		if err := s.payslipRepo.Update(txCtx, id, companyID, req); err != nil {
			return err
		}
		// A generic edit resolves an open review: the record goes back to
		// pending rather than staying flagged.
		if current.Status == payslip.StatusNeedsReview {
			return s.payslipRepo.UpdateStatus(txCtx, id, companyID, payslip.StatusPending, nil)
		}
		return nil
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	updated, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.ToPayslipResponse(updated), nil
}

func (s *payslipServiceImpl) UpdateStatus(ctx context.Context, id string, req payslip.UpdateStatusRequest) (payslip.PayslipResponse, error) {
	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payslip.PayslipResponse{}, err
	}

	newStatus := payslip.Status(req.Status)

	var current payslip.Payslip
	err = s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err = s.payslipRepo.GetByID(txCtx, id, companyID)
		if err != nil {
			return err
		}
		return s.payslipRepo.UpdateStatus(txCtx, id, companyID, newStatus, req.EmployeeComment)
	})
	if err != nil {
		return payslip.PayslipResponse{}, err
	}

	// Side effects only fire on an actual transition; a repeated call
	// with the same status is a no-op notification-wise.
	if current.Status != newStatus {
		obs.CountStatusChange(string(newStatus))
		s.dispatch(ctx, s.statusIntents(ctx, current, newStatus, companyID, userID)...)
	}

	updated, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return payslip.PayslipResponse{}, err
	}
	return payslip.ToPayslipResponse(updated), nil
}

// statusIntents builds the notification fan-out for one status
// transition. Returning intents instead of writing directly keeps the
// transition atomic and the delivery best-effort.
func (s *payslipServiceImpl) statusIntents(ctx context.Context, p payslip.Payslip, newStatus payslip.Status, companyID, actorID string) []notification.Intent {
	var intents []notification.Intent
	link := "/payroll/" + p.ID

	var title, message string
	switch newStatus {
	case payslip.StatusNeedsReview:
		title = "Payslip Needs Review"
		message = fmt.Sprintf("Your payslip for %s has been flagged for review.", p.PayPeriod())
	case payslip.StatusApproved, payslip.StatusAcknowledged:
		title = "Payslip Acknowledged"
		message = fmt.Sprintf("Your payslip for %s has been acknowledged.", p.PayPeriod())
	default:
		title = "Payslip Status Updated"
		message = fmt.Sprintf("The status of your payslip for %s is now %s.", p.PayPeriod(), newStatus)
	}

	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID, companyID)
	if err != nil {
		s.logger.Warn("could not resolve employee for notification", "employee_id", p.EmployeeID, "error", err)
	} else if emp.UserID != nil {
		intents = append(intents, notification.Intent{
			CompanyID:   companyID,
			RecipientID: *emp.UserID,
			SenderID:    &actorID,
			Type:        notification.TypePayslipStatus,
			Title:       title,
			Message:     message,
			Link:        link,
		})
	}

	if newStatus == payslip.StatusApproved || newStatus == payslip.StatusAcknowledged || newStatus == payslip.StatusNeedsReview {
		admins, err := s.userRepo.ListAdminsByCompanyID(ctx, companyID)
		if err != nil {
			s.logger.Warn("could not list admins for notification", "company_id", companyID, "error", err)
			return intents
		}

		employeeName := p.EmployeeID
		if emp.Name != "" {
			employeeName = emp.Name
		}

		for _, admin := range admins {
			if admin.ID == actorID {
				continue
			}
			intent := notification.Intent{
				CompanyID:   companyID,
				RecipientID: admin.ID,
				SenderID:    &actorID,
				Link:        link,
			}
			if newStatus == payslip.StatusNeedsReview {
				intent.Type = notification.TypeReview
				intent.Title = "Payslip Review Requested"
				intent.Message = fmt.Sprintf("%s has requested a review of the payslip for %s.", employeeName, p.PayPeriod())
			} else {
				intent.Type = notification.TypePayslipStatus
				intent.Title = "Payslip Acknowledged"
				intent.Message = fmt.Sprintf("The payslip of %s for %s has been acknowledged.", employeeName, p.PayPeriod())
			}
			intents = append(intents, intent)
		}
	}

	return intents
}

// dispatch hands intents to the notification outbox. Failures are
// logged and swallowed; they never abort the primary operation.
func (s *payslipServiceImpl) dispatch(ctx context.Context, intents ...notification.Intent) {
	if len(intents) == 0 {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, intents...); err != nil {
		s.logger.Error("failed to dispatch notifications", "count", len(intents), "error", err)
	}
}

func (s *payslipServiceImpl) DownloadPDF(ctx context.Context, id string) ([]byte, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.payslipRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID, companyID)
	if err != nil {
		return nil, err
	}

	out, err := s.renderer.Render(p, emp)
	if err != nil {
		return nil, err
	}
	obs.CountDocumentRendered("pdf")
	return out, nil
}

func (s *payslipServiceImpl) DownloadEmployeePDF(ctx context.Context, employeeID string, start, end string) ([]byte, error) {
	payslips, emp, err := s.employeePayslips(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	out, err := s.renderer.RenderAll(payslips, emp)
	if err != nil {
		return nil, err
	}
	obs.CountDocumentRendered("pdf")
	return out, nil
}

func (s *payslipServiceImpl) DownloadEmployeeCSV(ctx context.Context, employeeID string, start, end string) ([]byte, error) {
	payslips, emp, err := s.employeePayslips(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	obs.CountDocumentRendered("csv")
	return document.RenderCSV(payslips, emp), nil
}

func (s *payslipServiceImpl) employeePayslips(ctx context.Context, employeeID string, start, end string) ([]payslip.Payslip, employee.Employee, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return nil, employee.Employee{}, err
	}

	// A supplied bound must parse; dropping it silently would return the
	// employee's entire history.
	var startTime, endTime time.Time
	if start != "" {
		if startTime, err = time.Parse("2006-01-02", start); err != nil {
			return nil, employee.Employee{}, fmt.Errorf("%w: start must be YYYY-MM-DD", payslip.ErrInvalidPeriod)
		}
	}
	if end != "" {
		if endTime, err = time.Parse("2006-01-02", end); err != nil {
			return nil, employee.Employee{}, fmt.Errorf("%w: end must be YYYY-MM-DD", payslip.ErrInvalidPeriod)
		}
	}

	payslips, err := s.payslipRepo.ListByEmployeeID(ctx, employeeID, companyID, startTime, endTime)
	if err != nil {
		return nil, employee.Employee{}, err
	}
	if len(payslips) == 0 {
		return nil, employee.Employee{}, payslip.ErrNoPayslipsFound
	}
	return payslips, emp, nil
}
