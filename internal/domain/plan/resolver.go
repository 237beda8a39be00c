package plan

// Fallback limits applied when a plan leaves a ceiling unset (zero).
const (
	DefaultMaxEmployees      = 10
	DefaultMaxStorageGB      = 1
	DefaultMaxAPICallsPerDay = 1000
	DefaultMaxDepartments    = 3
	DefaultDataRetentionDays = 365
)

// ResolveEntitlements maps a plan to the feature/limit snapshot stored on a
// company. Core features are granted to every tenant regardless of plan;
// the remaining flags copy the plan verbatim. This is the only mapping:
// company snapshots must never be written through any other code path.
func ResolveEntitlements(p Plan) (FeatureFlags, Limits) {
	features := p.Features

	// Core features, always on.
	features.Attendance = true
	features.LeaveManagement = true
	features.Notifications = true
	features.TimeTracking = true

	limits := p.Limits
	if limits.MaxEmployees == 0 {
		limits.MaxEmployees = DefaultMaxEmployees
	}
	if limits.MaxStorageGB == 0 {
		limits.MaxStorageGB = DefaultMaxStorageGB
	}
	if limits.MaxAPICallsPerDay == 0 {
		limits.MaxAPICallsPerDay = DefaultMaxAPICallsPerDay
	}
	if limits.MaxDepartments == 0 {
		limits.MaxDepartments = DefaultMaxDepartments
	}
	if limits.DataRetentionDays == 0 {
		limits.DataRetentionDays = DefaultDataRetentionDays
	}

	return features, limits
}
