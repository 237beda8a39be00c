package payslip

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-hr/staffhub-backend-go/internal/document"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/notification"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/user"
)

type passTxManager struct{}

func (passTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePayslipRepo struct {
	payslips map[string]payslip.Payslip
}

func newFakePayslipRepo() *fakePayslipRepo {
	return &fakePayslipRepo{payslips: make(map[string]payslip.Payslip)}
}

func (r *fakePayslipRepo) GetByID(_ context.Context, id string, companyID string) (payslip.Payslip, error) {
	p, ok := r.payslips[id]
	if !ok || p.CompanyID != companyID {
		return payslip.Payslip{}, payslip.ErrPayslipNotFound
	}
	return p, nil
}

func (r *fakePayslipRepo) Create(_ context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	r.payslips[p.ID] = p
	return p, nil
}

func (r *fakePayslipRepo) Update(_ context.Context, id string, companyID string, req payslip.UpdatePayslipRequest) error {
	p, ok := r.payslips[id]
	if !ok || p.CompanyID != companyID {
		return payslip.ErrPayslipNotFound
	}
	if req.GrossPay != nil {
		p.GrossPay = *req.GrossPay
	}
	if req.Deductions != nil {
		p.Deductions = *req.Deductions
	}
	if req.NetPay != nil {
		p.NetPay = *req.NetPay
	}
	if req.Incomes != nil {
		p.Incomes = req.Incomes
	}
	if req.DeductionItems != nil {
		p.DeductionItems = req.DeductionItems
	}
	if req.AdminResponse != nil {
		p.AdminResponse = req.AdminResponse
	}
	p.UpdatedAt = time.Now()
	r.payslips[id] = p
	return nil
}

func (r *fakePayslipRepo) UpdateStatus(_ context.Context, id string, companyID string, status payslip.Status, comment *string) error {
	p, ok := r.payslips[id]
	if !ok || p.CompanyID != companyID {
		return payslip.ErrPayslipNotFound
	}
	p.Status = status
	if comment != nil {
		p.EmployeeComment = comment
	}
	p.UpdatedAt = time.Now()
	r.payslips[id] = p
	return nil
}

func (r *fakePayslipRepo) ListByCompanyID(_ context.Context, companyID string) ([]payslip.Payslip, error) {
	var out []payslip.Payslip
	for _, p := range r.payslips {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePayslipRepo) ListByEmployeeID(_ context.Context, employeeID string, companyID string, start, end time.Time) ([]payslip.Payslip, error) {
	var out []payslip.Payslip
	for _, p := range r.payslips {
		if p.EmployeeID != employeeID || p.CompanyID != companyID {
			continue
		}
		if !start.IsZero() && !end.IsZero() {
			if p.PeriodStart.After(end) || p.PeriodEnd.Before(start) {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string, companyID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	r.employees[e.ID] = e
	return e, nil
}

func (r *fakeEmployeeRepo) ListByCompanyID(_ context.Context, companyID string, activeOnly bool) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		if e.CompanyID != companyID {
			continue
		}
		if activeOnly && !e.IsActive {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEmployeeRepo) CountActiveByCompanyID(context.Context, string) (int, error) {
	return len(r.employees), nil
}

type fakeCompanyRepo struct {
	c company.Company
}

func (r *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	if id != r.c.ID {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return r.c, nil
}

func (r *fakeCompanyRepo) GetByDomain(context.Context, string) (company.Company, error) {
	return company.Company{}, company.ErrCompanyNotFound
}

func (r *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	return c, nil
}

func (r *fakeCompanyRepo) List(context.Context) ([]company.Company, error) { return nil, nil }
func (r *fakeCompanyRepo) Count(context.Context) (int, error)             { return 1, nil }
func (r *fakeCompanyRepo) Update(context.Context, string, company.UpdateCompanyRequest) error {
	return nil
}
func (r *fakeCompanyRepo) UpdateStatus(context.Context, string, company.CompanyStatus) error {
	return nil
}
func (r *fakeCompanyRepo) SetPlan(context.Context, string, string) error { return nil }
func (r *fakeCompanyRepo) SyncEntitlements(context.Context, string, plan.FeatureFlags, plan.Limits) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetByEmail(context.Context, string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeUserRepo) ListAdminsByCompanyID(_ context.Context, companyID string) ([]user.User, error) {
	var out []user.User
	for _, u := range r.users {
		if u.CompanyID == companyID && u.IsAdmin() && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

type captureDispatcher struct {
	intents []notification.Intent
}

func (d *captureDispatcher) Dispatch(_ context.Context, intents ...notification.Intent) error {
	d.intents = append(d.intents, intents...)
	return nil
}

func (d *captureDispatcher) byType(t notification.NotificationType) []notification.Intent {
	var out []notification.Intent
	for _, i := range d.intents {
		if i.Type == t {
			out = append(out, i)
		}
	}
	return out
}

type fixture struct {
	svc        payslip.PayslipService
	payslips   *fakePayslipRepo
	dispatcher *captureDispatcher
	ctx        context.Context
}

const (
	testCompanyID  = "comp-1"
	testEmployeeID = "emp-1"
	testEmpUserID  = "user-emp"
	testAdminID    = "user-admin"
	otherAdminID   = "user-admin-2"
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	empUserID := testEmpUserID
	designation := "Engineer"
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {
			ID:          testEmployeeID,
			CompanyID:   testCompanyID,
			UserID:      &empUserID,
			Name:        "Jane Doe",
			Code:        "2024-0001",
			Designation: &designation,
			IsActive:    true,
		},
	}}

	users := &fakeUserRepo{users: map[string]user.User{
		testAdminID:   {ID: testAdminID, CompanyID: testCompanyID, Role: user.RoleAdmin, IsActive: true},
		otherAdminID:  {ID: otherAdminID, CompanyID: testCompanyID, Role: user.RoleAdmin, IsActive: true},
		testEmpUserID: {ID: testEmpUserID, CompanyID: testCompanyID, Role: user.RoleEmployee, IsActive: true},
	}}

	companies := &fakeCompanyRepo{c: company.Company{
		ID:     testCompanyID,
		Name:   "Acme Corp",
		Status: company.StatusActive,
	}}

	payslips := newFakePayslipRepo()
	dispatcher := &captureDispatcher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	renderer := document.NewPDFRenderer(logger)

	svc := NewPayslipService(payslips, employees, companies, users, dispatcher, renderer, passTxManager{}, logger)

	return &fixture{
		svc:        svc,
		payslips:   payslips,
		dispatcher: dispatcher,
		ctx:        authedContext(t, testCompanyID, testAdminID),
	}
}

func authedContext(t *testing.T, companyID, userID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("company_id", companyID))
	require.NoError(t, tok.Set("user_id", userID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func createRequest() payslip.CreatePayslipRequest {
	return payslip.CreatePayslipRequest{
		EmployeeID:  testEmployeeID,
		PeriodStart: "2026-01-01",
		PeriodEnd:   "2026-01-31",
		TotalHours:  decimal.NewFromInt(160),
		GrossPay:    decimal.NewFromInt(5000),
		Deductions:  decimal.NewFromInt(750),
		NetPay:      decimal.NewFromInt(4250),
		Incomes: []payslip.LineItem{
			{Type: "Base Salary", Amount: decimal.NewFromInt(5000)},
		},
	}
}

func TestCreateSnapshotsCompanyAndNotifies(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp", created.CompanyInfo.Name)
	assert.Equal(t, string(payslip.StatusPending), created.Status)

	processed := f.dispatcher.byType(notification.TypePayrollProcessed)
	require.Len(t, processed, 1)
	assert.Equal(t, testEmpUserID, processed[0].RecipientID)
	assert.Equal(t, "Payroll Processed", processed[0].Title)
	assert.Contains(t, processed[0].Message, "has been processed")
}

func TestCreateDefaultsCompanyName(t *testing.T) {
	f := newFixture(t)
	companies := &fakeCompanyRepo{c: company.Company{ID: testCompanyID, Status: company.StatusActive}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewPayslipService(f.payslips, &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {ID: testEmployeeID, CompanyID: testCompanyID, Name: "Jane"},
	}}, companies, &fakeUserRepo{users: map[string]user.User{}}, f.dispatcher,
		document.NewPDFRenderer(logger), passTxManager{}, logger)

	created, err := svc.Create(f.ctx, createRequest())
	require.NoError(t, err)
	assert.Equal(t, "Your Company Name", created.CompanyInfo.Name)
}

func TestCreateUnknownEmployee(t *testing.T) {
	f := newFixture(t)

	req := createRequest()
	req.EmployeeID = "missing"
	_, err := f.svc.Create(f.ctx, req)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCreateRejectsInvertedPeriod(t *testing.T) {
	f := newFixture(t)

	req := createRequest()
	req.PeriodStart = "2026-02-01"
	req.PeriodEnd = "2026-01-01"
	_, err := f.svc.Create(f.ctx, req)
	assert.ErrorIs(t, err, payslip.ErrInvalidPeriod)
}

func TestUpdateStatusNeedsReviewFanOut(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)
	f.dispatcher.intents = nil

	comment := "Overtime looks wrong"
	empCtx := authedContext(t, testCompanyID, testEmpUserID)
	updated, err := f.svc.UpdateStatus(empCtx, created.ID, payslip.UpdateStatusRequest{
		Status:          string(payslip.StatusNeedsReview),
		EmployeeComment: &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, string(payslip.StatusNeedsReview), updated.Status)
	require.NotNil(t, updated.EmployeeComment)
	assert.Equal(t, comment, *updated.EmployeeComment)

	// One notification to the employee, review notifications to admins.
	statusIntents := f.dispatcher.byType(notification.TypePayslipStatus)
	require.Len(t, statusIntents, 1)
	assert.Equal(t, testEmpUserID, statusIntents[0].RecipientID)
	assert.Equal(t, "Payslip Needs Review", statusIntents[0].Title)

	reviews := f.dispatcher.byType(notification.TypeReview)
	require.Len(t, reviews, 2)
	for _, r := range reviews {
		assert.Contains(t, r.Message, "has requested a review")
		assert.Contains(t, []string{testAdminID, otherAdminID}, r.RecipientID)
	}
}

func TestUpdateStatusIdempotent(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)
	f.dispatcher.intents = nil

	_, err = f.svc.UpdateStatus(f.ctx, created.ID, payslip.UpdateStatusRequest{Status: string(payslip.StatusApproved)})
	require.NoError(t, err)
	firstCount := len(f.dispatcher.intents)
	assert.NotZero(t, firstCount)

	// Same status again: no additional notifications.
	_, err = f.svc.UpdateStatus(f.ctx, created.ID, payslip.UpdateStatusRequest{Status: string(payslip.StatusApproved)})
	require.NoError(t, err)
	assert.Len(t, f.dispatcher.intents, firstCount)
}

func TestUpdateStatusAcknowledgedNotifiesAdmins(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)
	f.dispatcher.intents = nil

	empCtx := authedContext(t, testCompanyID, testEmpUserID)
	_, err = f.svc.UpdateStatus(empCtx, created.ID, payslip.UpdateStatusRequest{Status: string(payslip.StatusAcknowledged)})
	require.NoError(t, err)

	intents := f.dispatcher.byType(notification.TypePayslipStatus)
	// employee + 2 admins
	require.Len(t, intents, 3)
	for _, i := range intents {
		assert.Equal(t, "Payslip Acknowledged", i.Title)
	}
}

func TestUpdateStatusActorExcludedFromAdminFanOut(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)
	f.dispatcher.intents = nil

	// Admin performs the transition; they should not notify themselves.
	_, err = f.svc.UpdateStatus(f.ctx, created.ID, payslip.UpdateStatusRequest{Status: string(payslip.StatusApproved)})
	require.NoError(t, err)

	for _, i := range f.dispatcher.intents {
		assert.NotEqual(t, testAdminID, i.RecipientID)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.ctx, created.ID, payslip.UpdateStatusRequest{Status: "archived"})
	assert.Error(t, err)
}

func TestGenericUpdateRevertsNeedsReview(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(f.ctx, created.ID, payslip.UpdateStatusRequest{Status: string(payslip.StatusNeedsReview)})
	require.NoError(t, err)

	gross := decimal.NewFromInt(5100)
	updated, err := f.svc.Update(f.ctx, created.ID, payslip.UpdatePayslipRequest{GrossPay: &gross})
	require.NoError(t, err)

	assert.Equal(t, string(payslip.StatusPending), updated.Status)
	assert.True(t, gross.Equal(updated.GrossPay))
}

func TestGenericUpdateKeepsOtherStatuses(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(f.ctx, created.ID, payslip.UpdateStatusRequest{Status: string(payslip.StatusApproved)})
	require.NoError(t, err)

	gross := decimal.NewFromInt(5100)
	updated, err := f.svc.Update(f.ctx, created.ID, payslip.UpdatePayslipRequest{GrossPay: &gross})
	require.NoError(t, err)
	assert.Equal(t, string(payslip.StatusApproved), updated.Status)
}

func TestDownloadEmployeeCSVEmptyRange(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)

	_, err = f.svc.DownloadEmployeeCSV(f.ctx, testEmployeeID, "2030-01-01", "2030-12-31")
	assert.ErrorIs(t, err, payslip.ErrNoPayslipsFound)
}

func TestDownloadEmployeeCSVRejectsMalformedDates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)

	_, err = f.svc.DownloadEmployeeCSV(f.ctx, testEmployeeID, "01/15/2026", "")
	assert.ErrorIs(t, err, payslip.ErrInvalidPeriod)

	_, err = f.svc.DownloadEmployeeCSV(f.ctx, testEmployeeID, "", "not-a-date")
	assert.ErrorIs(t, err, payslip.ErrInvalidPeriod)
}

func TestDownloadEmployeeCSVContainsLineItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)

	out, err := f.svc.DownloadEmployeeCSV(f.ctx, testEmployeeID, "", "")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Base Salary:5000.00"`)
	assert.Contains(t, string(out), `"Jane Doe"`)
}

func TestDownloadEmployeePDF(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(f.ctx, createRequest())
	require.NoError(t, err)

	out, err := f.svc.DownloadEmployeePDF(f.ctx, testEmployeeID, "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestDownloadPDFUnknownPayslip(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.DownloadPDF(f.ctx, "missing")
	assert.ErrorIs(t, err, payslip.ErrPayslipNotFound)
}
