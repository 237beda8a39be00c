package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/handler/http/response"
)

// EmployeeHandler handles employee HTTP requests
type EmployeeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &employeeHandlerImpl{employeeService: employeeService}
}

// Create adds an employee to the caller's company
// POST /api/v1/employees - Admin only
func (h *employeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", nil)
		return
	}

	created, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created", created)
}

// List retrieves the caller's company employees
// GET /api/v1/employees?active_only - Admin only
func (h *employeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active_only"))

	employees, err := h.employeeService.List(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, employees)
}

// GetByID retrieves a specific employee
// GET /api/v1/employees/{id} - Admin only
func (h *employeeHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "employee ID is required", nil)
		return
	}

	e, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, e)
}
