package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/leavepolicy"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type leavePolicyRepository struct {
	db *database.DB
}

func NewLeavePolicyRepository(db *database.DB) leavepolicy.LeavePolicyRepository {
	return &leavePolicyRepository{db: db}
}

const leavePolicyColumns = `id, company_id, name, entitlements, rules, is_default, is_active, created_at, updated_at`

func scanLeavePolicy(row pgx.Row) (leavepolicy.LeavePolicy, error) {
	var p leavepolicy.LeavePolicy
	var entitlementsJSON, rulesJSON []byte
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name,
		&entitlementsJSON, &rulesJSON,
		&p.IsDefault, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return leavepolicy.LeavePolicy{}, err
	}
	if err := json.Unmarshal(entitlementsJSON, &p.Entitlements); err != nil {
		return leavepolicy.LeavePolicy{}, fmt.Errorf("decode policy entitlements: %w", err)
	}
	if err := json.Unmarshal(rulesJSON, &p.Rules); err != nil {
		return leavepolicy.LeavePolicy{}, fmt.Errorf("decode policy rules: %w", err)
	}
	return p, nil
}

func (r *leavePolicyRepository) GetByID(ctx context.Context, id string, companyID string) (leavepolicy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leavePolicyColumns + ` FROM leave_policies WHERE id = $1 AND company_id = $2`
	p, err := scanLeavePolicy(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leavepolicy.LeavePolicy{}, leavepolicy.ErrPolicyNotFound
		}
		return leavepolicy.LeavePolicy{}, err
	}
	return p, nil
}

func (r *leavePolicyRepository) Create(ctx context.Context, p leavepolicy.LeavePolicy) (leavepolicy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	entitlementsJSON, err := json.Marshal(p.Entitlements)
	if err != nil {
		return leavepolicy.LeavePolicy{}, fmt.Errorf("encode policy entitlements: %w", err)
	}
	rulesJSON, err := json.Marshal(p.Rules)
	if err != nil {
		return leavepolicy.LeavePolicy{}, fmt.Errorf("encode policy rules: %w", err)
	}

	query := `
		INSERT INTO leave_policies (id, company_id, name, entitlements, rules, is_default, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name,
		entitlementsJSON, rulesJSON,
		p.IsDefault, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return leavepolicy.LeavePolicy{}, leavepolicy.ErrPolicyNameExists
		}
		return leavepolicy.LeavePolicy{}, err
	}
	return p, nil
}

func (r *leavePolicyRepository) Update(ctx context.Context, id string, companyID string, req leavepolicy.UpdatePolicyRequest) error {
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
	if req.Entitlements != nil {
		entitlementsJSON, err := json.Marshal(req.Entitlements)
		if err != nil {
			return fmt.Errorf("encode policy entitlements: %w", err)
		}
		addClause("entitlements", entitlementsJSON)
	}
	if req.Rules != nil {
		rulesJSON, err := json.Marshal(req.Rules)
		if err != nil {
			return fmt.Errorf("encode policy rules: %w", err)
		}
		addClause("rules", rulesJSON)
	}
	if req.IsDefault != nil {
		addClause("is_default", *req.IsDefault)
	}
	if req.IsActive != nil {
		addClause("is_active", *req.IsActive)
	}

	query := fmt.Sprintf("UPDATE leave_policies SET %s WHERE id = $%d AND company_id = $%d",
		joinClauses(setClauses), argPos, argPos+1)
	args = append(args, id, companyID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return leavepolicy.ErrPolicyNameExists
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return leavepolicy.ErrPolicyNotFound
	}
	return nil
}

func (r *leavePolicyRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_policies WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leavepolicy.ErrPolicyNotFound
	}
	return nil
}

func (r *leavePolicyRepository) ListByCompanyID(ctx context.Context, companyID string) ([]leavepolicy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leavePolicyColumns + ` FROM leave_policies
		WHERE company_id = $1
		ORDER BY is_default DESC, created_at DESC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []leavepolicy.LeavePolicy
	for rows.Next() {
		p, err := scanLeavePolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *leavePolicyRepository) ListAll(ctx context.Context) ([]leavepolicy.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leavePolicyColumns + ` FROM leave_policies
		ORDER BY company_id, is_default DESC, created_at DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []leavepolicy.LeavePolicy
	for rows.Next() {
		p, err := scanLeavePolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}

func (r *leavePolicyRepository) UnsetDefaults(ctx context.Context, companyID string, excludeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE leave_policies SET is_default = false, updated_at = $1 WHERE company_id = $2 AND is_default = true`
	args := []interface{}{time.Now(), companyID}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	_, err := q.Exec(ctx, query, args...)
	return err
}

func (r *leavePolicyRepository) CountAll(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_policies`).Scan(&count)
	return count, err
}

func (r *leavePolicyRepository) CountDefaults(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_policies WHERE is_default = true`).Scan(&count)
	return count, err
}

func (r *leavePolicyRepository) CountCompaniesWithPolicies(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(DISTINCT company_id) FROM leave_policies`).Scan(&count)
	return count, err
}
