package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/company"
	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/plan"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type companyRepository struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, domain, plan_id, features, limits, feature_version, status,
	logo_url, primary_color, secondary_color, address, phone, email, registration_no, tax_id,
	created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	var featuresJSON, limitsJSON []byte
	var status string
	err := row.Scan(
		&c.ID, &c.Name, &c.Domain, &c.PlanID,
		&featuresJSON, &limitsJSON, &c.FeatureVersion, &status,
		&c.LogoURL, &c.PrimaryColor, &c.SecondaryColor, &c.Address,
		&c.Phone, &c.Email, &c.RegistrationNo, &c.TaxID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}
	c.Status = company.CompanyStatus(status)
	if err := json.Unmarshal(featuresJSON, &c.Features); err != nil {
		return company.Company{}, fmt.Errorf("decode company features: %w", err)
	}
	if err := json.Unmarshal(limitsJSON, &c.Limits); err != nil {
		return company.Company{}, fmt.Errorf("decode company limits: %w", err)
	}
	return c, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *companyRepository) GetByDomain(ctx context.Context, domain string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies WHERE domain = $1`
	c, err := scanCompany(q.QueryRow(ctx, query, domain))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *companyRepository) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	featuresJSON, err := json.Marshal(c.Features)
	if err != nil {
		return company.Company{}, fmt.Errorf("encode company features: %w", err)
	}
	limitsJSON, err := json.Marshal(c.Limits)
	if err != nil {
		return company.Company{}, fmt.Errorf("encode company limits: %w", err)
	}

	query := `
		INSERT INTO companies (id, name, domain, plan_id, features, limits, feature_version, status,
			logo_url, primary_color, secondary_color, address, phone, email, registration_no, tax_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = q.Exec(ctx, query,
		c.ID, c.Name, c.Domain, c.PlanID,
		featuresJSON, limitsJSON, c.FeatureVersion, string(c.Status),
		c.LogoURL, c.PrimaryColor, c.SecondaryColor, c.Address,
		c.Phone, c.Email, c.RegistrationNo, c.TaxID,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return company.Company{}, company.ErrDomainExists
		}
		return company.Company{}, err
	}
	return c, nil
}

func (r *companyRepository) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *companyRepository) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	return count, err
}

func (r *companyRepository) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
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
	if req.Address != nil {
		addClause("address", *req.Address)
	}
	if req.Phone != nil {
		addClause("phone", *req.Phone)
	}
	if req.Email != nil {
		addClause("email", *req.Email)
	}
	if req.LogoURL != nil {
		addClause("logo_url", *req.LogoURL)
	}
	if req.PrimaryColor != nil {
		addClause("primary_color", *req.PrimaryColor)
	}
	if req.SecondaryColor != nil {
		addClause("secondary_color", *req.SecondaryColor)
	}
	if req.RegistrationNo != nil {
		addClause("registration_no", *req.RegistrationNo)
	}
	if req.TaxID != nil {
		addClause("tax_id", *req.TaxID)
	}

	query := fmt.Sprintf("UPDATE companies SET %s WHERE id = $%d", joinClauses(setClauses), argPos)
	args = append(args, id)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepository) UpdateStatus(ctx context.Context, id string, status company.CompanyStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE companies SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepository) SetPlan(ctx context.Context, id string, planID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE companies SET plan_id = $1, updated_at = $2 WHERE id = $3`,
		planID, time.Now(), id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return company.ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepository) SyncEntitlements(ctx context.Context, id string, features plan.FeatureFlags, limits plan.Limits) (int64, error) {
	q := GetQuerier(ctx, r.db)

	featuresJSON, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("encode company features: %w", err)
	}
	limitsJSON, err := json.Marshal(limits)
	if err != nil {
		return 0, fmt.Errorf("encode company limits: %w", err)
	}

	var version int64
	err = q.QueryRow(ctx, `
		UPDATE companies
		SET features = $1, limits = $2, feature_version = feature_version + 1, updated_at = $3
		WHERE id = $4
		RETURNING feature_version
	`, featuresJSON, limitsJSON, time.Now(), id).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, company.ErrCompanyNotFound
		}
		return 0, err
	}
	return version, nil
}
