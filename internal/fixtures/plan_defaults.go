// Package fixtures holds the seed catalog applied at startup so a
// fresh deployment always has a default plan to put signups on.
package fixtures

import (
	"github.com/shopspring/decimal"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
)

// DefaultPlans returns the four-tier subscription catalog. Basic is the
// default plan assigned on signup.
func DefaultPlans() []plan.Plan {
	return []plan.Plan{
		{
			Name:         "Basic",
			PriceMonthly: decimal.NewFromInt(29),
			PriceYearly:  decimal.NewFromInt(290),
			Features: plan.FeatureFlags{
				Attendance:      true,
				Payroll:         true,
				LeaveManagement: true,
				Notifications:   true,
				TimeTracking:    true,
			},
			Limits: plan.Limits{
				MaxEmployees:      10,
				MaxStorageGB:      1,
				MaxAPICallsPerDay: 1000,
				MaxDepartments:    3,
				DataRetentionDays: 365,
			},
			IsDefault: true,
			IsActive:  true,
			SortOrder: 1,
		},
		{
			Name:         "Advance",
			PriceMonthly: decimal.NewFromInt(59),
			PriceYearly:  decimal.NewFromInt(590),
			Features: plan.FeatureFlags{
				Attendance:              true,
				Payroll:                 true,
				LeaveManagement:         true,
				Notifications:           true,
				TimeTracking:            true,
				DocumentManagement:      true,
				ExpenseManagement:       true,
				LocationBasedAttendance: true,
			},
			Limits: plan.Limits{
				MaxEmployees:      50,
				MaxStorageGB:      5,
				MaxAPICallsPerDay: 5000,
				MaxDepartments:    10,
				DataRetentionDays: 365,
			},
			IsActive:  true,
			SortOrder: 2,
		},
		{
			Name:         "Professional",
			PriceMonthly: decimal.NewFromInt(99),
			PriceYearly:  decimal.NewFromInt(990),
			Features: plan.FeatureFlags{
				Attendance:              true,
				Payroll:                 true,
				LeaveManagement:         true,
				Notifications:           true,
				TimeTracking:            true,
				DocumentManagement:      true,
				ExpenseManagement:       true,
				LocationBasedAttendance: true,
				Analytics:               true,
				AdvancedReporting:       true,
				CustomBranding:          true,
				PerformanceReviews:      true,
				MultiLocation:           true,
			},
			Limits: plan.Limits{
				MaxEmployees:      200,
				MaxStorageGB:      20,
				MaxAPICallsPerDay: 20000,
				MaxDepartments:    25,
				DataRetentionDays: 730,
			},
			IsActive:  true,
			SortOrder: 3,
		},
		{
			Name:         "Enterprise",
			PriceMonthly: decimal.NewFromInt(249),
			PriceYearly:  decimal.NewFromInt(2490),
			Features: plan.FeatureFlags{
				Attendance:              true,
				Payroll:                 true,
				LeaveManagement:         true,
				Notifications:           true,
				TimeTracking:            true,
				DocumentManagement:      true,
				ExpenseManagement:       true,
				LocationBasedAttendance: true,
				Analytics:               true,
				AdvancedReporting:       true,
				CustomBranding:          true,
				PerformanceReviews:      true,
				MultiLocation:           true,
				APIAccess:               true,
				TrainingManagement:      true,
			},
			Limits: plan.Limits{
				MaxEmployees:      1000,
				MaxStorageGB:      100,
				MaxAPICallsPerDay: 100000,
				MaxDepartments:    100,
				DataRetentionDays: 1825,
			},
			IsActive:  true,
			SortOrder: 4,
		},
	}
}
