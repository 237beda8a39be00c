package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type planRepository struct {
	db *database.DB
}

func NewPlanRepository(db *database.DB) plan.PlanRepository {
	return &planRepository{db: db}
}

const planColumns = `id, name, price_monthly, price_yearly, features, limits, is_default, is_active, sort_order, created_at, updated_at`

func scanPlan(row pgx.Row) (plan.Plan, error) {
	var p plan.Plan
	var featuresJSON, limitsJSON []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.PriceMonthly, &p.PriceYearly,
		&featuresJSON, &limitsJSON,
		&p.IsDefault, &p.IsActive, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return plan.Plan{}, err
	}
	if err := json.Unmarshal(featuresJSON, &p.Features); err != nil {
		return plan.Plan{}, fmt.Errorf("decode plan features: %w", err)
	}
	if err := json.Unmarshal(limitsJSON, &p.Limits); err != nil {
		return plan.Plan{}, fmt.Errorf("decode plan limits: %w", err)
	}
	return p, nil
}

func (r *planRepository) Create(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	featuresJSON, err := json.Marshal(p.Features)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("encode plan features: %w", err)
	}
	limitsJSON, err := json.Marshal(p.Limits)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("encode plan limits: %w", err)
	}

	query := `
		INSERT INTO plans (id, name, price_monthly, price_yearly, features, limits, is_default, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = q.Exec(ctx, query,
		p.ID, p.Name, p.PriceMonthly, p.PriceYearly,
		featuresJSON, limitsJSON,
		p.IsDefault, p.IsActive, p.SortOrder, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return plan.Plan{}, plan.ErrPlanNameExists
		}
		return plan.Plan{}, err
	}
	return p, nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	p, err := scanPlan(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.Plan{}, plan.ErrPlanNotFound
		}
		return plan.Plan{}, err
	}
	return p, nil
}

func (r *planRepository) GetByName(ctx context.Context, name string) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planColumns + ` FROM plans WHERE name = $1`
	p, err := scanPlan(q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.Plan{}, plan.ErrPlanNotFound
		}
		return plan.Plan{}, err
	}
	return p, nil
}

func (r *planRepository) GetDefault(ctx context.Context) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planColumns + ` FROM plans WHERE is_default = true LIMIT 1`
	p, err := scanPlan(q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return plan.Plan{}, plan.ErrNoDefaultPlan
		}
		return plan.Plan{}, err
	}
	return p, nil
}

func (r *planRepository) List(ctx context.Context, activeOnly bool) ([]plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + planColumns + ` FROM plans`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []plan.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *planRepository) Update(ctx context.Context, req plan.UpdatePlanRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}
	argPos := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.Name != nil {
		addClause("name", *req.Name)
	}
	if req.PriceMonthly != nil {
		addClause("price_monthly", *req.PriceMonthly)
	}
	if req.PriceYearly != nil {
		addClause("price_yearly", *req.PriceYearly)
	}
	if req.Features != nil {
		featuresJSON, err := json.Marshal(req.Features)
		if err != nil {
			return fmt.Errorf("encode plan features: %w", err)
		}
		addClause("features", featuresJSON)
	}
	if req.Limits != nil {
		limitsJSON, err := json.Marshal(req.Limits)
		if err != nil {
			return fmt.Errorf("encode plan limits: %w", err)
		}
		addClause("limits", limitsJSON)
	}
	if req.IsDefault != nil {
		addClause("is_default", *req.IsDefault)
	}
	if req.IsActive != nil {
		addClause("is_active", *req.IsActive)
	}
	if req.SortOrder != nil {
		addClause("sort_order", *req.SortOrder)
	}

	query := fmt.Sprintf("UPDATE plans SET %s WHERE id = $%d", joinClauses(setClauses), argPos)
	args = append(args, req.ID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return plan.ErrPlanNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return plan.ErrPlanNotFound
	}
	return nil
}

func (r *planRepository) UnsetDefaults(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE plans SET is_default = false, updated_at = $1 WHERE is_default = true`, time.Now())
	return err
}

func (r *planRepository) Upsert(ctx context.Context, p plan.Plan) (plan.Plan, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()

	featuresJSON, err := json.Marshal(p.Features)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("encode plan features: %w", err)
	}
	limitsJSON, err := json.Marshal(p.Limits)
	if err != nil {
		return plan.Plan{}, fmt.Errorf("encode plan limits: %w", err)
	}

	query := `
		INSERT INTO plans (id, name, price_monthly, price_yearly, features, limits, is_default, is_active, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (name) DO UPDATE SET
			price_monthly = EXCLUDED.price_monthly,
			price_yearly = EXCLUDED.price_yearly,
			features = EXCLUDED.features,
			limits = EXCLUDED.limits,
			is_default = EXCLUDED.is_default,
			is_active = EXCLUDED.is_active,
			sort_order = EXCLUDED.sort_order,
			updated_at = EXCLUDED.updated_at
		RETURNING ` + planColumns

	return scanPlan(q.QueryRow(ctx, query,
		p.ID, p.Name, p.PriceMonthly, p.PriceYearly,
		featuresJSON, limitsJSON,
		p.IsDefault, p.IsActive, p.SortOrder, now,
	))
}
