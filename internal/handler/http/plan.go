package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/response"
)

// PlanHandler handles plan catalog HTTP requests
type PlanHandler interface {
	// Public endpoints
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)

	// Super-admin endpoints
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type planHandlerImpl struct {
	planService plan.PlanService
}

func NewPlanHandler(planService plan.PlanService) PlanHandler {
	return &planHandlerImpl{planService: planService}
}

// List retrieves available plans
// GET /api/v1/plans - Public (active plans only; ?include_inactive=true for admins)
func (h *planHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	includeInactive := false
	if v := r.URL.Query().Get("include_inactive"); v != "" {
		includeInactive, _ = strconv.ParseBool(v)
	}

	plans, err := h.planService.GetPlans(r.Context(), includeInactive)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, plans)
}

// GetByID retrieves a specific plan
// GET /api/v1/plans/{id} - Public
func (h *planHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "plan ID is required", nil)
		return
	}

	p, err := h.planService.GetPlanByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, p)
}

// Create adds a plan to the catalog
// POST /api/v1/super-admin/plans - Super-admin only
func (h *planHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req plan.CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	created, err := h.planService.CreatePlan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Plan created", created)
}

// Update applies a partial update to a plan
// PUT /api/v1/super-admin/plans/{id} - Super-admin only
func (h *planHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "plan ID is required", nil)
		return
	}

	var req plan.UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}
	req.ID = id

	updated, err := h.planService.UpdatePlan(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

func getCompanyIDFromContext(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}

	companyID, ok := claims["company_id"].(string)
	return companyID, ok && companyID != ""
}

func getUserIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if userID, ok := claims["user_id"].(string); ok {
		return userID
	}
	return ""
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
