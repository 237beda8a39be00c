package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/leavepolicy"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/response"
)

// LeavePolicyHandler handles leave policy HTTP requests
type LeavePolicyHandler interface {
	// Company-scoped endpoints
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	// Super-admin endpoints
	ListAll(w http.ResponseWriter, r *http.Request)
	Statistics(w http.ResponseWriter, r *http.Request)
	ListForCompany(w http.ResponseWriter, r *http.Request)
	CreateForCompany(w http.ResponseWriter, r *http.Request)
	UpdateForCompany(w http.ResponseWriter, r *http.Request)
	DeleteForCompany(w http.ResponseWriter, r *http.Request)
}

type leavePolicyHandlerImpl struct {
	policyService leavepolicy.LeavePolicyService
}

func NewLeavePolicyHandler(policyService leavepolicy.LeavePolicyService) LeavePolicyHandler {
	return &leavePolicyHandlerImpl{policyService: policyService}
}

// Create adds a leave policy to the caller's company
// POST /api/v1/leave-policies - Admin only
func (h *leavePolicyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	var req leavepolicy.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	created, err := h.policyService.Create(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave policy created", created)
}

// List retrieves the caller's company policies, default first
// GET /api/v1/leave-policies - Authenticated
func (h *leavePolicyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	policies, err := h.policyService.ListForCompany(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policies)
}

// Update applies a partial update to a policy
// PUT /api/v1/leave-policies/{id} - Admin only
func (h *leavePolicyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	policyID := chi.URLParam(r, "id")
	if policyID == "" {
		response.BadRequest(w, "policy ID is required", nil)
		return
	}

	var req leavepolicy.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	updated, err := h.policyService.Update(r.Context(), companyID, policyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// Delete removes a non-default policy
// DELETE /api/v1/leave-policies/{id} - Admin only
func (h *leavePolicyHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	companyID, ok := getCompanyIDFromContext(r)
	if !ok {
		response.Forbidden(w, "no company associated with this user")
		return
	}

	policyID := chi.URLParam(r, "id")
	if policyID == "" {
		response.BadRequest(w, "policy ID is required", nil)
		return
	}

	if err := h.policyService.Delete(r.Context(), companyID, policyID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave policy deleted", nil)
}

// ListAll retrieves policies across every tenant
// GET /api/v1/super-admin/leave-policies - Super-admin only
func (h *leavePolicyHandlerImpl) ListAll(w http.ResponseWriter, r *http.Request) {
	policies, err := h.policyService.ListAll(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policies)
}

// Statistics reports platform-wide policy adoption
// GET /api/v1/super-admin/leave-policies/statistics - Super-admin only
func (h *leavePolicyHandlerImpl) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.policyService.Statistics(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// ListForCompany retrieves an arbitrary tenant's policies
// GET /api/v1/super-admin/leave-policies/company/{companyId} - Super-admin only
func (h *leavePolicyHandlerImpl) ListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	if companyID == "" {
		response.BadRequest(w, "company ID is required", nil)
		return
	}

	policies, err := h.policyService.ListForCompany(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, policies)
}

// CreateForCompany adds a policy to an arbitrary tenant
// POST /api/v1/super-admin/leave-policies/company/{companyId} - Super-admin only
func (h *leavePolicyHandlerImpl) CreateForCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	if companyID == "" {
		response.BadRequest(w, "company ID is required", nil)
		return
	}

	var req leavepolicy.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	created, err := h.policyService.Create(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave policy created", created)
}

// UpdateForCompany updates a policy of an arbitrary tenant
// PUT /api/v1/super-admin/leave-policies/company/{companyId}/{id} - Super-admin only
func (h *leavePolicyHandlerImpl) UpdateForCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	policyID := chi.URLParam(r, "id")
	if companyID == "" || policyID == "" {
		response.BadRequest(w, "company ID and policy ID are required", nil)
		return
	}

	var req leavepolicy.UpdatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	updated, err := h.policyService.Update(r.Context(), companyID, policyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

// DeleteForCompany removes a non-default policy of an arbitrary tenant
// DELETE /api/v1/super-admin/leave-policies/company/{companyId}/{id} - Super-admin only
func (h *leavePolicyHandlerImpl) DeleteForCompany(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyId")
	policyID := chi.URLParam(r, "id")
	if companyID == "" || policyID == "" {
		response.BadRequest(w, "company ID and policy ID are required", nil)
		return
	}

	if err := h.policyService.Delete(r.Context(), companyID, policyID); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave policy deleted", nil)
}
