package plan

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeatureFlags is the full set of capability toggles a plan can grant.
// Plan and Company share this shape so the denormalized company snapshot
// can never drift structurally from the plan catalog.
type FeatureFlags struct {
	Attendance              bool `json:"attendance"`
	Payroll                 bool `json:"payroll"`
	LeaveManagement         bool `json:"leave_management"`
	Analytics               bool `json:"analytics"`
	DocumentManagement      bool `json:"document_management"`
	Notifications           bool `json:"notifications"`
	CustomBranding          bool `json:"custom_branding"`
	APIAccess               bool `json:"api_access"`
	MultiLocation           bool `json:"multi_location"`
	AdvancedReporting       bool `json:"advanced_reporting"`
	TimeTracking            bool `json:"time_tracking"`
	ExpenseManagement       bool `json:"expense_management"`
	PerformanceReviews      bool `json:"performance_reviews"`
	TrainingManagement      bool `json:"training_management"`
	LocationBasedAttendance bool `json:"location_based_attendance"`
}

// Limits holds the numeric ceilings attached to a plan.
type Limits struct {
	MaxEmployees      int `json:"max_employees"`
	MaxStorageGB      int `json:"max_storage_gb"`
	MaxAPICallsPerDay int `json:"max_api_calls_per_day"`
	MaxDepartments    int `json:"max_departments"`
	DataRetentionDays int `json:"data_retention_days"`
}

// Plan represents a subscription tier in the catalog.
type Plan struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PriceMonthly decimal.Decimal `json:"price_monthly"`
	PriceYearly  decimal.Decimal `json:"price_yearly"`
	Features     FeatureFlags    `json:"features"`
	Limits       Limits          `json:"limits"`
	IsDefault    bool            `json:"is_default"`
	IsActive     bool            `json:"is_active"`
	SortOrder    int             `json:"sort_order"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Feature codes used by route gates and JWT claims.
const (
	FeatureAttendance              = "attendance"
	FeaturePayroll                 = "payroll"
	FeatureLeaveManagement         = "leave_management"
	FeatureAnalytics               = "analytics"
	FeatureDocumentManagement      = "document_management"
	FeatureNotifications           = "notifications"
	FeatureCustomBranding          = "custom_branding"
	FeatureAPIAccess               = "api_access"
	FeatureMultiLocation           = "multi_location"
	FeatureAdvancedReporting       = "advanced_reporting"
	FeatureTimeTracking            = "time_tracking"
	FeatureExpenseManagement       = "expense_management"
	FeaturePerformanceReviews      = "performance_reviews"
	FeatureTrainingManagement      = "training_management"
	FeatureLocationBasedAttendance = "location_based_attendance"
)

// Enabled reports whether the flag identified by code is set.
// Unknown codes report false.
func (f FeatureFlags) Enabled(code string) bool {
	switch code {
	case FeatureAttendance:
		return f.Attendance
	case FeaturePayroll:
		return f.Payroll
	case FeatureLeaveManagement:
		return f.LeaveManagement
	case FeatureAnalytics:
		return f.Analytics
	case FeatureDocumentManagement:
		return f.DocumentManagement
	case FeatureNotifications:
		return f.Notifications
	case FeatureCustomBranding:
		return f.CustomBranding
	case FeatureAPIAccess:
		return f.APIAccess
	case FeatureMultiLocation:
		return f.MultiLocation
	case FeatureAdvancedReporting:
		return f.AdvancedReporting
	case FeatureTimeTracking:
		return f.TimeTracking
	case FeatureExpenseManagement:
		return f.ExpenseManagement
	case FeaturePerformanceReviews:
		return f.PerformanceReviews
	case FeatureTrainingManagement:
		return f.TrainingManagement
	case FeatureLocationBasedAttendance:
		return f.LocationBasedAttendance
	default:
		return false
	}
}

// EnabledCodes returns the codes of all enabled flags, used for JWT claims.
func (f FeatureFlags) EnabledCodes() []string {
	all := []string{
		FeatureAttendance, FeaturePayroll, FeatureLeaveManagement,
		FeatureAnalytics, FeatureDocumentManagement, FeatureNotifications,
		FeatureCustomBranding, FeatureAPIAccess, FeatureMultiLocation,
		FeatureAdvancedReporting, FeatureTimeTracking, FeatureExpenseManagement,
		FeaturePerformanceReviews, FeatureTrainingManagement, FeatureLocationBasedAttendance,
	}
	var codes []string
	for _, code := range all {
		if f.Enabled(code) {
			codes = append(codes, code)
		}
	}
	return codes
}
