package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/response"
)

// PayslipHandler handles payroll HTTP requests
type PayslipHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	DownloadPDF(w http.ResponseWriter, r *http.Request)
	DownloadEmployeePDF(w http.ResponseWriter, r *http.Request)
	DownloadEmployeeCSV(w http.ResponseWriter, r *http.Request)
}

type payslipHandlerImpl struct {
	payslipService payslip.PayslipService
}

func NewPayslipHandler(payslipService payslip.PayslipService) PayslipHandler {
	return &payslipHandlerImpl{payslipService: payslipService}
}

// Create generates a payslip for an employee
// POST /api/v1/payroll - Admin only
func (h *payslipHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req payslip.CreatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	created, err := h.payslipService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Payslip created", created)
}

// List retrieves the caller's company payslips
// GET /api/v1/payroll - Admin only
func (h *payslipHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	payslips, err := h.payslipService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payslips)
}

// ListMine retrieves the payslips of the calling employee
// GET /api/v1/payroll/my - Authenticated
func (h *payslipHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	payslips, err := h.payslipService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payslips)
}

// GetByID retrieves a specific payslip
// GET /api/v1/payroll/{id} - Authenticated
func (h *payslipHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "payslip ID is required", nil)
		return
	}

	p, err := h.payslipService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, p)
}

// Update applies a generic admin edit
// PUT /api/v1/payroll/{id} - Admin only
func (h *payslipHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "payslip ID is required", nil)
		return
	}

	var req payslip.UpdatePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	updated, err := h.payslipService.Update(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// UpdateStatus applies a review state transition
// PATCH /api/v1/payroll/{id}/status - Authenticated
func (h *payslipHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "payslip ID is required", nil)
		return
	}

	var req payslip.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	updated, err := h.payslipService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// DownloadPDF streams a single payslip as PDF
// GET /api/v1/payroll/{id}/pdf - Authenticated
func (h *payslipHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "payslip ID is required", nil)
		return
	}

	pdfBytes, err := h.payslipService.DownloadPDF(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslip-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

// DownloadEmployeePDF streams every payslip of an employee in the date
// range as a multi-page PDF
// GET /api/v1/payroll/employee/{id}/pdf?start&end - Admin only
func (h *payslipHandlerImpl) DownloadEmployeePDF(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "employee ID is required", nil)
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	pdfBytes, err := h.payslipService.DownloadEmployeePDF(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslips-%s.pdf"`, employeeID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}

// DownloadEmployeeCSV streams the same set as CSV
// GET /api/v1/payroll/employee/{id}/csv?start&end - Admin only
func (h *payslipHandlerImpl) DownloadEmployeeCSV(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")
	if employeeID == "" {
		response.BadRequest(w, "employee ID is required", nil)
		return
	}

	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	csvBytes, err := h.payslipService.DownloadEmployeeCSV(r.Context(), employeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="payslips-%s.csv"`, employeeID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csvBytes)
}
