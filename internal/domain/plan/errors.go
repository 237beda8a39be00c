package plan

import "errors"

var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrPlanNameExists = errors.New("plan name already exists")
	ErrPlanNotActive  = errors.New("plan is not active")
	ErrNoDefaultPlan  = errors.New("no default plan configured")
)
