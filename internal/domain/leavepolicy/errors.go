package leavepolicy

import "errors"

var (
	ErrPolicyNotFound            = errors.New("leave policy not found")
	ErrCannotDeleteDefaultPolicy = errors.New("default leave policy cannot be deleted")
	ErrPolicyNameExists          = errors.New("leave policy name already exists for this company")
)
