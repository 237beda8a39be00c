package payslip

import "errors"

var (
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrNoPayslipsFound = errors.New("no payslips found for this employee")
	ErrInvalidStatus   = errors.New("invalid payslip status")
	ErrInvalidPeriod   = errors.New("period end must not precede period start")
)
