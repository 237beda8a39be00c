package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
)

type fakePayslipService struct {
	gotEmployeeID string
	gotStart      string
	gotEnd        string
}

func (s *fakePayslipService) Create(context.Context, payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
	return payslip.PayslipResponse{}, nil
}

func (s *fakePayslipService) GetByID(context.Context, string) (payslip.PayslipResponse, error) {
	return payslip.PayslipResponse{}, nil
}

func (s *fakePayslipService) List(context.Context) ([]payslip.PayslipResponse, error) {
	return nil, nil
}

func (s *fakePayslipService) ListMine(context.Context) ([]payslip.PayslipResponse, error) {
	return nil, nil
}

func (s *fakePayslipService) Update(context.Context, string, payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error) {
	return payslip.PayslipResponse{}, nil
}

func (s *fakePayslipService) UpdateStatus(context.Context, string, payslip.UpdateStatusRequest) (payslip.PayslipResponse, error) {
	return payslip.PayslipResponse{}, nil
}

func (s *fakePayslipService) DownloadPDF(context.Context, string) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (s *fakePayslipService) DownloadEmployeePDF(_ context.Context, employeeID string, start, end string) ([]byte, error) {
	s.gotEmployeeID = employeeID
	s.gotStart = start
	s.gotEnd = end
	return []byte("%PDF"), nil
}

func (s *fakePayslipService) DownloadEmployeeCSV(_ context.Context, employeeID string, start, end string) ([]byte, error) {
	s.gotEmployeeID = employeeID
	s.gotStart = start
	s.gotEnd = end
	return []byte(`"header"`), nil
}

func payslipTestRouter(svc payslip.PayslipService) *chi.Mux {
	h := NewPayslipHandler(svc)
	r := chi.NewRouter()
	r.Get("/payroll/employee/{id}/pdf", h.DownloadEmployeePDF)
	r.Get("/payroll/employee/{id}/csv", h.DownloadEmployeeCSV)
	return r
}

func TestDownloadEmployeeCSVPassesRangeParams(t *testing.T) {
	svc := &fakePayslipService{}
	r := payslipTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payroll/employee/emp-1/csv?start=2026-01-01&end=2026-01-31", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "emp-1", svc.gotEmployeeID)
	assert.Equal(t, "2026-01-01", svc.gotStart)
	assert.Equal(t, "2026-01-31", svc.gotEnd)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="payslips-emp-1.csv"`, rec.Header().Get("Content-Disposition"))
}

func TestDownloadEmployeePDFPassesRangeParams(t *testing.T) {
	svc := &fakePayslipService{}
	r := payslipTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payroll/employee/emp-1/pdf?start=2026-02-01&end=2026-02-28", nil)
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2026-02-01", svc.gotStart)
	assert.Equal(t, "2026-02-28", svc.gotEnd)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}
