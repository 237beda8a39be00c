package response

import (
	"errors"
	"net/http"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/leavepolicy"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/notification"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Plan domain errors
	case errors.Is(err, plan.ErrPlanNotFound):
		NotFound(w, "Plan not found")
	case errors.Is(err, plan.ErrNoDefaultPlan):
		NotFound(w, "No default plan configured")
	case errors.Is(err, plan.ErrPlanNameExists):
		Conflict(w, "Plan name already exists")
	case errors.Is(err, plan.ErrPlanNotActive):
		BadRequest(w, "Plan is not active", nil)

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrDomainExists):
		Conflict(w, "Domain already registered")
	case errors.Is(err, company.ErrInvalidStatus):
		BadRequest(w, "Invalid company status", nil)
	case errors.Is(err, company.ErrFeatureNotAvailable):
		Forbidden(w, "Feature not available on current plan")
	case errors.Is(err, company.ErrInvalidRefreshToken):
		Unauthorized(w, "Invalid or expired refresh token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrSeatLimitExceeded):
		Forbidden(w, "Employee seat limit reached for current plan")

	// Leave policy domain errors
	case errors.Is(err, leavepolicy.ErrPolicyNotFound):
		NotFound(w, "Leave policy not found")
	case errors.Is(err, leavepolicy.ErrPolicyNameExists):
		Conflict(w, "Leave policy name already exists")
	case errors.Is(err, leavepolicy.ErrCannotDeleteDefaultPolicy):
		BadRequest(w, "Cannot delete the default leave policy", nil)

	// Payslip domain errors
	case errors.Is(err, payslip.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payslip.ErrNoPayslipsFound):
		NotFound(w, "No payslips found for this employee.")
	case errors.Is(err, payslip.ErrInvalidStatus):
		BadRequest(w, "Invalid payslip status", nil)
	case errors.Is(err, payslip.ErrInvalidPeriod):
		BadRequest(w, "Invalid pay period", nil)

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
