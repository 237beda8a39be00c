package leavepolicy

import (
	"context"
	"log/slog"
	"math"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/leavepolicy"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type leavePolicyServiceImpl struct {
	policyRepo  leavepolicy.LeavePolicyRepository
	companyRepo company.CompanyRepository
	txMgr       database.TxManager
	logger      *slog.Logger
}

func NewLeavePolicyService(
	policyRepo leavepolicy.LeavePolicyRepository,
	companyRepo company.CompanyRepository,
	txMgr database.TxManager,
	logger *slog.Logger,
) leavepolicy.LeavePolicyService {
	return &leavePolicyServiceImpl{
		policyRepo:  policyRepo,
		companyRepo: companyRepo,
		txMgr:       txMgr,
		logger:      logger,
	}
}

func (s *leavePolicyServiceImpl) Create(ctx context.Context, companyID string, req leavepolicy.CreatePolicyRequest) (leavepolicy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return leavepolicy.PolicyResponse{}, err
	}

	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return leavepolicy.PolicyResponse{}, err
	}

	newPolicy := leavepolicy.LeavePolicy{
		CompanyID:    companyID,
		Name:         req.Name,
		Entitlements: req.Entitlements,
		Rules:        req.Rules,
		IsDefault:    req.IsDefault,
		IsActive:     true,
	}

	var created leavepolicy.LeavePolicy
	err := s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.IsDefault {
			if err := s.policyRepo.UnsetDefaults(txCtx, companyID, ""); err != nil {
				return err
			}
		}
		var err error
		created, err = s.policyRepo.Create(txCtx, newPolicy)
		return err
	})
	if err != nil {
		return leavepolicy.PolicyResponse{}, err
	}

	s.logger.Info("leave policy created",
		"company_id", companyID, "policy_id", created.ID, "is_default", created.IsDefault)
	return leavepolicy.ToPolicyResponse(created), nil
}

func (s *leavePolicyServiceImpl) Update(ctx context.Context, companyID string, policyID string, req leavepolicy.UpdatePolicyRequest) (leavepolicy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return leavepolicy.PolicyResponse{}, err
	}

	err := s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.IsDefault != nil && *req.IsDefault {
			if err := s.policyRepo.UnsetDefaults(txCtx, companyID, policyID); err != nil {
				return err
			}
		}
		return s.policyRepo.Update(txCtx, policyID, companyID, req)
	})
	if err != nil {
		return leavepolicy.PolicyResponse{}, err
	}

	updated, err := s.policyRepo.GetByID(ctx, policyID, companyID)
	if err != nil {
		return leavepolicy.PolicyResponse{}, err
	}
	return leavepolicy.ToPolicyResponse(updated), nil
}

func (s *leavePolicyServiceImpl) Delete(ctx context.Context, companyID string, policyID string) error {
	target, err := s.policyRepo.GetByID(ctx, policyID, companyID)
	if err != nil {
		return err
	}
	if target.IsDefault {
		return leavepolicy.ErrCannotDeleteDefaultPolicy
	}

	if err := s.policyRepo.Delete(ctx, policyID, companyID); err != nil {
		return err
	}

	s.logger.Info("leave policy deleted", "company_id", companyID, "policy_id", policyID)
	return nil
}

func (s *leavePolicyServiceImpl) ListForCompany(ctx context.Context, companyID string) ([]leavepolicy.PolicyResponse, error) {
	policies, err := s.policyRepo.ListByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toResponses(policies), nil
}

func (s *leavePolicyServiceImpl) ListAll(ctx context.Context) ([]leavepolicy.PolicyResponse, error) {
	policies, err := s.policyRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(policies), nil
}

func (s *leavePolicyServiceImpl) Statistics(ctx context.Context) (leavepolicy.Statistics, error) {
	total, err := s.policyRepo.CountAll(ctx)
	if err != nil {
		return leavepolicy.Statistics{}, err
	}
	defaults, err := s.policyRepo.CountDefaults(ctx)
	if err != nil {
		return leavepolicy.Statistics{}, err
	}
	withPolicies, err := s.policyRepo.CountCompaniesWithPolicies(ctx)
	if err != nil {
		return leavepolicy.Statistics{}, err
	}
	totalCompanies, err := s.companyRepo.Count(ctx)
	if err != nil {
		return leavepolicy.Statistics{}, err
	}

	coverage := 0
	if totalCompanies > 0 {
		coverage = int(math.Round(float64(withPolicies) / float64(totalCompanies) * 100))
	}

	return leavepolicy.Statistics{
		TotalPolicies:         total,
		DefaultPolicies:       defaults,
		CompaniesWithPolicies: withPolicies,
		TotalCompanies:        totalCompanies,
		CoveragePercentage:    coverage,
	}, nil
}

func toResponses(policies []leavepolicy.LeavePolicy) []leavepolicy.PolicyResponse {
	responses := make([]leavepolicy.PolicyResponse, len(policies))
	for i, p := range policies {
		responses[i] = leavepolicy.ToPolicyResponse(p)
	}
	return responses
}
