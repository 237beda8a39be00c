package company

import "errors"

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrDomainExists        = errors.New("company domain already registered")
	ErrInvalidStatus       = errors.New("invalid company status")
	ErrFeatureNotAvailable = errors.New("feature not available in current plan")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)
