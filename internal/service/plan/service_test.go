package plan

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
)

type passTxManager struct{}

func (passTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePlanRepo struct {
	plans map[string]plan.Plan
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: make(map[string]plan.Plan)}
}

func (r *fakePlanRepo) Create(_ context.Context, p plan.Plan) (plan.Plan, error) {
	p.ID = uuid.New().String()
	r.plans[p.ID] = p
	return p, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id string) (plan.Plan, error) {
	p, ok := r.plans[id]
	if !ok {
		return plan.Plan{}, plan.ErrPlanNotFound
	}
	return p, nil
}

func (r *fakePlanRepo) GetByName(_ context.Context, name string) (plan.Plan, error) {
	for _, p := range r.plans {
		if p.Name == name {
			return p, nil
		}
	}
	return plan.Plan{}, plan.ErrPlanNotFound
}

func (r *fakePlanRepo) GetDefault(_ context.Context) (plan.Plan, error) {
	for _, p := range r.plans {
		if p.IsDefault {
			return p, nil
		}
	}
	return plan.Plan{}, plan.ErrNoDefaultPlan
}

func (r *fakePlanRepo) List(_ context.Context, activeOnly bool) ([]plan.Plan, error) {
	var out []plan.Plan
	for _, p := range r.plans {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakePlanRepo) Update(_ context.Context, req plan.UpdatePlanRequest) error {
	p, ok := r.plans[req.ID]
	if !ok {
		return plan.ErrPlanNotFound
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.IsDefault != nil {
		p.IsDefault = *req.IsDefault
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	r.plans[req.ID] = p
	return nil
}

func (r *fakePlanRepo) UnsetDefaults(context.Context) error {
	for id, p := range r.plans {
		p.IsDefault = false
		r.plans[id] = p
	}
	return nil
}

func (r *fakePlanRepo) Upsert(_ context.Context, p plan.Plan) (plan.Plan, error) {
	for id, existing := range r.plans {
		if existing.Name == p.Name {
			p.ID = id
			r.plans[id] = p
			return p, nil
		}
	}
	return r.Create(context.Background(), p)
}

func (r *fakePlanRepo) defaultCount() int {
	n := 0
	for _, p := range r.plans {
		if p.IsDefault {
			n++
		}
	}
	return n
}

func newTestService(repo *fakePlanRepo) plan.PlanService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPlanService(repo, passTxManager{}, logger)
}

func TestCreateDefaultPlanSwapsPreviousDefault(t *testing.T) {
	repo := newFakePlanRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.CreatePlan(ctx, plan.CreatePlanRequest{Name: "Starter", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, first.IsDefault)

	second, err := svc.CreatePlan(ctx, plan.CreatePlanRequest{Name: "Growth", IsDefault: true})
	require.NoError(t, err)
	assert.True(t, second.IsDefault)

	assert.Equal(t, 1, repo.defaultCount())
	got, err := repo.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Growth", got.Name)
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := newTestService(newFakePlanRepo())
	ctx := context.Background()

	_, err := svc.CreatePlan(ctx, plan.CreatePlanRequest{Name: "Starter"})
	require.NoError(t, err)

	_, err = svc.CreatePlan(ctx, plan.CreatePlanRequest{Name: "Starter"})
	assert.ErrorIs(t, err, plan.ErrPlanNameExists)
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	svc := newTestService(newFakePlanRepo())

	_, err := svc.CreatePlan(context.Background(), plan.CreatePlanRequest{
		Name:         "Starter",
		PriceMonthly: decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
}

func TestUpdateMakingPlanDefaultUnsetsOthers(t *testing.T) {
	repo := newFakePlanRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.CreatePlan(ctx, plan.CreatePlanRequest{Name: "Starter", IsDefault: true})
	require.NoError(t, err)
	second, err := svc.CreatePlan(ctx, plan.CreatePlanRequest{Name: "Growth"})
	require.NoError(t, err)

	makeDefault := true
	updated, err := svc.UpdatePlan(ctx, plan.UpdatePlanRequest{ID: second.ID, IsDefault: &makeDefault})
	require.NoError(t, err)
	assert.True(t, updated.IsDefault)

	assert.Equal(t, 1, repo.defaultCount())
	prev, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, prev.IsDefault)
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	repo := newFakePlanRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))
	seeded := len(repo.plans)
	assert.NotZero(t, seeded)
	assert.Equal(t, 1, repo.defaultCount())

	// A second boot must not duplicate the catalog.
	require.NoError(t, svc.SeedDefaults(ctx))
	assert.Len(t, repo.plans, seeded)
	assert.Equal(t, 1, repo.defaultCount())

	def, err := repo.GetDefault(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Basic", def.Name)
}
