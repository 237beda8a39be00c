package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEntitlements_CoreFeaturesAlwaysOn(t *testing.T) {
	// Even a plan with every flag off grants the core features.
	empty := Plan{}

	features, _ := ResolveEntitlements(empty)

	assert.True(t, features.Attendance)
	assert.True(t, features.LeaveManagement)
	assert.True(t, features.Notifications)
	assert.True(t, features.TimeTracking)

	assert.False(t, features.Payroll)
	assert.False(t, features.Analytics)
	assert.False(t, features.CustomBranding)
}

func TestResolveEntitlements_PlanFlagsCopiedVerbatim(t *testing.T) {
	p := Plan{
		Features: FeatureFlags{
			Payroll:           true,
			Analytics:         true,
			AdvancedReporting: true,
		},
	}

	features, _ := ResolveEntitlements(p)

	assert.True(t, features.Payroll)
	assert.True(t, features.Analytics)
	assert.True(t, features.AdvancedReporting)
	assert.False(t, features.APIAccess)
	assert.False(t, features.ExpenseManagement)
}

func TestResolveEntitlements_LimitFallbacks(t *testing.T) {
	_, limits := ResolveEntitlements(Plan{})

	assert.Equal(t, DefaultMaxEmployees, limits.MaxEmployees)
	assert.Equal(t, DefaultMaxStorageGB, limits.MaxStorageGB)
	assert.Equal(t, DefaultMaxAPICallsPerDay, limits.MaxAPICallsPerDay)
	assert.Equal(t, DefaultMaxDepartments, limits.MaxDepartments)
	assert.Equal(t, DefaultDataRetentionDays, limits.DataRetentionDays)
}

func TestResolveEntitlements_LimitsCopiedWhenSet(t *testing.T) {
	p := Plan{
		Limits: Limits{
			MaxEmployees:      1000,
			MaxStorageGB:      100,
			MaxAPICallsPerDay: 100000,
			MaxDepartments:    100,
			DataRetentionDays: 1825,
		},
	}

	_, limits := ResolveEntitlements(p)

	assert.Equal(t, p.Limits, limits)
}

func TestResolveEntitlements_Pure(t *testing.T) {
	p := Plan{Features: FeatureFlags{Payroll: true}}

	ResolveEntitlements(p)

	// Resolving must not mutate its input.
	assert.False(t, p.Features.Attendance)
	assert.Equal(t, 0, p.Limits.MaxEmployees)
}

func TestFeatureFlags_Enabled(t *testing.T) {
	f := FeatureFlags{Payroll: true, Analytics: true}

	assert.True(t, f.Enabled(FeaturePayroll))
	assert.True(t, f.Enabled(FeatureAnalytics))
	assert.False(t, f.Enabled(FeatureAttendance))
	assert.False(t, f.Enabled("unknown_feature"))
}

func TestFeatureFlags_EnabledCodes(t *testing.T) {
	f := FeatureFlags{Attendance: true, Payroll: true}

	codes := f.EnabledCodes()

	assert.ElementsMatch(t, []string{FeatureAttendance, FeaturePayroll}, codes)
}
