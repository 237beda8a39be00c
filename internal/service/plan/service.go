package plan

import (
	"context"
	"log/slog"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/fixtures"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type planServiceImpl struct {
	planRepo plan.PlanRepository
	txMgr    database.TxManager
	logger   *slog.Logger
}

func NewPlanService(planRepo plan.PlanRepository, txMgr database.TxManager, logger *slog.Logger) plan.PlanService {
	return &planServiceImpl{
		planRepo: planRepo,
		txMgr:    txMgr,
		logger:   logger,
	}
}

func (s *planServiceImpl) GetPlans(ctx context.Context, includeInactive bool) ([]plan.PlanResponse, error) {
	plans, err := s.planRepo.List(ctx, !includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]plan.PlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = toPlanResponse(p)
	}
	return responses, nil
}

func (s *planServiceImpl) GetPlanByID(ctx context.Context, id string) (plan.PlanResponse, error) {
	p, err := s.planRepo.GetByID(ctx, id)
	if err != nil {
		return plan.PlanResponse{}, err
	}
	return toPlanResponse(p), nil
}

func (s *planServiceImpl) CreatePlan(ctx context.Context, req plan.CreatePlanRequest) (plan.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return plan.PlanResponse{}, err
	}

	if _, err := s.planRepo.GetByName(ctx, req.Name); err == nil {
		return plan.PlanResponse{}, plan.ErrPlanNameExists
	}

	newPlan := plan.Plan{
		Name:         req.Name,
		PriceMonthly: req.PriceMonthly,
		PriceYearly:  req.PriceYearly,
		Features:     req.Features,
		Limits:       req.Limits,
		IsDefault:    req.IsDefault,
		IsActive:     true,
		SortOrder:    req.SortOrder,
	}

	var created plan.Plan
	err := s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.IsDefault {
			if err := s.planRepo.UnsetDefaults(txCtx); err != nil {
				return err
			}
		}
		var err error
		created, err = s.planRepo.Create(txCtx, newPlan)
		return err
	})
	if err != nil {
		return plan.PlanResponse{}, err
	}

	s.logger.Info("plan created", "plan_id", created.ID, "name", created.Name, "is_default", created.IsDefault)
	return toPlanResponse(created), nil
}

func (s *planServiceImpl) UpdatePlan(ctx context.Context, req plan.UpdatePlanRequest) (plan.PlanResponse, error) {
	if err := req.Validate(); err != nil {
		return plan.PlanResponse{}, err
	}

	err := s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.IsDefault != nil && *req.IsDefault {
			if err := s.planRepo.UnsetDefaults(txCtx); err != nil {
				return err
			}
		}
		return s.planRepo.Update(txCtx, req)
	})
	if err != nil {
		return plan.PlanResponse{}, err
	}

	updated, err := s.planRepo.GetByID(ctx, req.ID)
	if err != nil {
		return plan.PlanResponse{}, err
	}
	return toPlanResponse(updated), nil
}

func (s *planServiceImpl) SeedDefaults(ctx context.Context) error {
	return s.txMgr.WithinTransaction(ctx, func(txCtx context.Context) error {
		for _, p := range fixtures.DefaultPlans() {
			if p.IsDefault {
				if err := s.planRepo.UnsetDefaults(txCtx); err != nil {
					return err
				}
			}
			seeded, err := s.planRepo.Upsert(txCtx, p)
			if err != nil {
				return err
			}
			s.logger.Debug("plan seeded", "plan_id", seeded.ID, "name", seeded.Name)
		}
		return nil
	})
}

func toPlanResponse(p plan.Plan) plan.PlanResponse {
	return plan.PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		PriceMonthly: p.PriceMonthly,
		PriceYearly:  p.PriceYearly,
		Features:     p.Features,
		Limits:       p.Limits,
		IsDefault:    p.IsDefault,
		IsActive:     p.IsActive,
		SortOrder:    p.SortOrder,
	}
}
