package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrSeatLimitExceeded  = errors.New("employee seat limit reached for current plan")
)
