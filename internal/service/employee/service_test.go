package employee

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
)

type passTxManager struct{}

func (passTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
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
	e.ID = uuid.New().String()
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

func (r *fakeEmployeeRepo) CountActiveByCompanyID(_ context.Context, companyID string) (int, error) {
	n := 0
	for _, e := range r.employees {
		if e.CompanyID == companyID && e.IsActive {
			n++
		}
	}
	return n, nil
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

func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("company_id", companyID))
	require.NoError(t, tok.Set("user_id", "admin-1"))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newTestService(repo *fakeEmployeeRepo, maxEmployees int) employee.EmployeeService {
	companies := &fakeCompanyRepo{c: company.Company{
		ID:     "comp-1",
		Status: company.StatusActive,
		Limits: plan.Limits{MaxEmployees: maxEmployees},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEmployeeService(repo, companies, passTxManager{}, logger)
}

func TestCreateEnforcesSeatLimit(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo, 2)
	ctx := authedContext(t, "comp-1")

	for i, code := range []string{"2024-0001", "2024-0002"} {
		_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			Name: "Employee", Code: code,
		})
		require.NoError(t, err, "employee %d should fit under the limit", i+1)
	}

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		Name: "One Too Many", Code: "2024-0003",
	})
	assert.ErrorIs(t, err, employee.ErrSeatLimitExceeded)
	assert.Len(t, repo.employees, 2)
}

func TestCreateValidatesRequest(t *testing.T) {
	svc := newTestService(newFakeEmployeeRepo(), 10)
	ctx := authedContext(t, "comp-1")

	_, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "", Code: "2024-0001"})
	assert.Error(t, err)

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Jane", Code: ""})
	assert.Error(t, err)
}

func TestListFiltersInactive(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo, 10)
	ctx := authedContext(t, "comp-1")

	created, err := svc.Create(ctx, employee.CreateEmployeeRequest{Name: "Jane", Code: "2024-0001"})
	require.NoError(t, err)

	inactive := repo.employees[created.ID]
	inactive.IsActive = false
	repo.employees[created.ID] = inactive

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestGetByIDScopedToCompany(t *testing.T) {
	repo := newFakeEmployeeRepo()
	svc := newTestService(repo, 10)

	created, err := svc.Create(authedContext(t, "comp-1"), employee.CreateEmployeeRequest{
		Name: "Jane", Code: "2024-0001",
	})
	require.NoError(t, err)

	// Another company's token cannot see the record.
	_, err = svc.GetByID(authedContext(t, "comp-2"), created.ID)
	assert.Error(t, err)
}
