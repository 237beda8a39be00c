package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
)

type fakeCompanyService struct {
	features map[string]bool
}

func (s *fakeCompanyService) HasFeature(_ context.Context, _ string, featureCode string) (bool, error) {
	return s.features[featureCode], nil
}

func (s *fakeCompanyService) Signup(context.Context, company.SignupRequest) (company.SignupResponse, error) {
	return company.SignupResponse{}, nil
}

func (s *fakeCompanyService) Refresh(context.Context, string) (company.AuthTokensResponse, error) {
	return company.AuthTokensResponse{}, nil
}

func (s *fakeCompanyService) Logout(context.Context, string, string) error { return nil }

func (s *fakeCompanyService) GetByID(context.Context, string) (company.CompanyResponse, error) {
	return company.CompanyResponse{}, nil
}

func (s *fakeCompanyService) List(context.Context) ([]company.CompanyResponse, error) {
	return nil, nil
}

func (s *fakeCompanyService) Update(context.Context, string, company.UpdateCompanyRequest) error {
	return nil
}

func (s *fakeCompanyService) UpdateStatus(context.Context, string, company.UpdateStatusRequest) error {
	return nil
}

func (s *fakeCompanyService) AssignPlan(context.Context, string, company.AssignPlanRequest) (company.CompanyResponse, error) {
	return company.CompanyResponse{}, nil
}

func (s *fakeCompanyService) ResyncFeatures(context.Context, string) (company.CompanyResponse, error) {
	return company.CompanyResponse{}, nil
}

func requestWithClaims(t *testing.T, claims map[string]interface{}) *http.Request {
	t.Helper()
	tok := jwt.New()
	for k, v := range claims {
		require.NoError(t, tok.Set(k, v))
	}
	req := httptest.NewRequest(http.MethodGet, "/payroll", nil)
	return req.WithContext(jwtauth.NewContext(req.Context(), tok, nil))
}

func TestRequireFeatureIgnoresStaleTokenClaims(t *testing.T) {
	// The company was downgraded after the token was minted: the token
	// still claims the feature, the snapshot no longer grants it.
	svc := &fakeCompanyService{features: map[string]bool{}}
	mw := NewFeatureMiddleware(svc)

	nextCalled := false
	handler := mw.RequireFeature("payroll")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithClaims(t, map[string]interface{}{
		"company_id":      "comp-1",
		"features":        []string{"payroll", "leave_management"},
		"feature_version": 1,
	}))

	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireFeatureGrantsFromSnapshot(t *testing.T) {
	svc := &fakeCompanyService{features: map[string]bool{"payroll": true}}
	mw := NewFeatureMiddleware(svc)

	nextCalled := false
	handler := mw.RequireFeature("payroll")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		nextCalled = true
	}))

	rec := httptest.NewRecorder()
	// No feature claims at all; the snapshot alone decides.
	handler.ServeHTTP(rec, requestWithClaims(t, map[string]interface{}{
		"company_id": "comp-1",
	}))

	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireFeatureRejectsMissingCompany(t *testing.T) {
	svc := &fakeCompanyService{features: map[string]bool{"payroll": true}}
	mw := NewFeatureMiddleware(svc)

	handler := mw.RequireFeature("payroll")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run without a company claim")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithClaims(t, map[string]interface{}{
		"user_id": "u1",
	}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
