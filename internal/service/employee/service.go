package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type employeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
	txMgr        database.TxManager
	logger       *slog.Logger
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	txMgr database.TxManager,
	logger *slog.Logger,
) employee.EmployeeService {
	return &employeeServiceImpl{
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
		txMgr:        txMgr,
		logger:       logger,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id not found in token")
	}
	return companyID, nil
}

func (s *employeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	c, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// The seat check and the insert run in one transaction so two
	// concurrent creates cannot both squeeze under the ceiling.
	var created employee.Employee
	err = s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		if c.Limits.MaxEmployees > 0 {
			active, err := s.employeeRepo.CountActiveByCompanyID(txCtx, companyID)
			if err != nil {
				return err
			}
			if active >= c.Limits.MaxEmployees {
				return employee.ErrSeatLimitExceeded
			}
		}

		var err error
		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			CompanyID:   companyID,
			UserID:      req.UserID,
			Name:        req.Name,
			Code:        req.Code,
			Designation: req.Designation,
			TaxID:       req.TaxID,
			BaseSalary:  req.BaseSalary,
			IsActive:    true,
		})
		return err
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		"employee_id", created.ID, "company_id", companyID, "code", created.Code)
	return employee.ToEmployeeResponse(created), nil
}

func (s *employeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.ListByCompanyID(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]employee.EmployeeResponse, len(employees))
	for i, e := range employees {
		responses[i] = employee.ToEmployeeResponse(e)
	}
	return responses, nil
}

func (s *employeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToEmployeeResponse(e), nil
}
