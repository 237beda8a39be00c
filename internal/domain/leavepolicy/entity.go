package leavepolicy

import "time"

// Well-known leave type keys. Entitlement maps may carry additional
// company-defined keys; these are the ones seeded by default.
const (
	LeaveTypeAnnual    = "annual"
	LeaveTypeSick      = "sick"
	LeaveTypeMaternity = "maternity"
	LeaveTypePaternity = "paternity"
	LeaveTypeUnpaid    = "unpaid"
)

// Entitlement is the per-leave-type allowance inside a policy.
type Entitlement struct {
	TotalDays int  `json:"total_days"`
	IsActive  bool `json:"is_active"`
}

// Rules governs how leave under a policy may be booked.
type Rules struct {
	MinNoticeDays      int    `json:"min_notice_days"`
	MaxConsecutiveDays int    `json:"max_consecutive_days"`
	AllowHalfDays      bool   `json:"allow_half_days"`
	CarryOverBalance   bool   `json:"carry_over_balance"`
	MaxCarryOverDays   int    `json:"max_carry_over_days"`
	LeaveYearStart     string `json:"leave_year_start"` // "MM-DD"
}

// LeavePolicy is a named bundle of leave entitlements scoped to one
// company. At most one policy per company may be the default.
type LeavePolicy struct {
	ID           string
	CompanyID    string
	Name         string
	Entitlements map[string]Entitlement
	Rules        Rules
	IsDefault    bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Statistics summarizes policy adoption across all tenants.
type Statistics struct {
	TotalPolicies         int `json:"total_policies"`
	DefaultPolicies       int `json:"default_policies"`
	CompaniesWithPolicies int `json:"companies_with_policies"`
	TotalCompanies        int `json:"total_companies"`
	CoveragePercentage    int `json:"coverage_percentage"`
}
