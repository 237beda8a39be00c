package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID          string
	CompanyID   string
	UserID      *string
	Name        string
	Code        string
	Designation *string
	TaxID       *string
	BaseSalary  *decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
