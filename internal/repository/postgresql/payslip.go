package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub-hr/staffhub-backend-go/internal/domain/payslip"
	"github.com/staffhub-hr/staffhub-backend-go/internal/pkg/database"
)

type payslipRepository struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payslip.PayslipRepository {
	return &payslipRepository{db: db}
}

const payslipColumns = `id, company_id, employee_id, period_start, period_end,
	total_hours, overtime_hours, overtime_multiplier, gross_pay, deductions, net_pay,
	incomes, deduction_items, status, employee_comment, admin_response, company_info,
	created_at, updated_at`

func scanPayslip(row pgx.Row) (payslip.Payslip, error) {
	var p payslip.Payslip
	var incomesJSON, deductionsJSON, companyInfoJSON []byte
	var status string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd,
		&p.TotalHours, &p.OvertimeHours, &p.OvertimeMultiplier,
		&p.GrossPay, &p.Deductions, &p.NetPay,
		&incomesJSON, &deductionsJSON, &status,
		&p.EmployeeComment, &p.AdminResponse, &companyInfoJSON,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return payslip.Payslip{}, err
	}
	p.Status = payslip.Status(status)
	if err := json.Unmarshal(incomesJSON, &p.Incomes); err != nil {
		return payslip.Payslip{}, fmt.Errorf("decode payslip incomes: %w", err)
	}
	if err := json.Unmarshal(deductionsJSON, &p.DeductionItems); err != nil {
		return payslip.Payslip{}, fmt.Errorf("decode payslip deductions: %w", err)
	}
	if err := json.Unmarshal(companyInfoJSON, &p.CompanyInfo); err != nil {
		return payslip.Payslip{}, fmt.Errorf("decode payslip company info: %w", err)
	}
	return p, nil
}

func (r *payslipRepository) GetByID(ctx context.Context, id string, companyID string) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE id = $1 AND company_id = $2`
	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payslip.Payslip{}, payslip.ErrPayslipNotFound
		}
		return payslip.Payslip{}, err
	}
	return p, nil
}

func (r *payslipRepository) Create(ctx context.Context, p payslip.Payslip) (payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	incomesJSON, err := json.Marshal(p.Incomes)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("encode payslip incomes: %w", err)
	}
	deductionsJSON, err := json.Marshal(p.DeductionItems)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("encode payslip deductions: %w", err)
	}
	companyInfoJSON, err := json.Marshal(p.CompanyInfo)
	if err != nil {
		return payslip.Payslip{}, fmt.Errorf("encode payslip company info: %w", err)
	}

	query := `
		INSERT INTO payslips (id, company_id, employee_id, period_start, period_end,
			total_hours, overtime_hours, overtime_multiplier, gross_pay, deductions, net_pay,
			incomes, deduction_items, status, employee_comment, admin_response, company_info,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = q.Exec(ctx, query,
		p.ID, p.CompanyID, p.EmployeeID, p.PeriodStart, p.PeriodEnd,
		p.TotalHours, p.OvertimeHours, p.OvertimeMultiplier,
		p.GrossPay, p.Deductions, p.NetPay,
		incomesJSON, deductionsJSON, string(p.Status),
		p.EmployeeComment, p.AdminResponse, companyInfoJSON,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return payslip.Payslip{}, err
	}
	return p, nil
}

func (r *payslipRepository) Update(ctx context.Context, id string, companyID string, req payslip.UpdatePayslipRequest) error {
	q := GetQuerier(ctx, r.db)

	setClauses := []string{"updated_at = $1"}
	args := []interface{}{time.Now()}
	argPos := 2

	addClause := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if req.TotalHours != nil {
		addClause("total_hours", *req.TotalHours)
	}
	if req.OvertimeHours != nil {
		addClause("overtime_hours", *req.OvertimeHours)
	}
	if req.OvertimeMultiplier != nil {
		addClause("overtime_multiplier", *req.OvertimeMultiplier)
	}
	if req.GrossPay != nil {
		addClause("gross_pay", *req.GrossPay)
	}
	if req.Deductions != nil {
		addClause("deductions", *req.Deductions)
	}
	if req.NetPay != nil {
		addClause("net_pay", *req.NetPay)
	}
	if req.Incomes != nil {
		incomesJSON, err := json.Marshal(req.Incomes)
		if err != nil {
			return fmt.Errorf("encode payslip incomes: %w", err)
		}
		addClause("incomes", incomesJSON)
	}
	if req.DeductionItems != nil {
		deductionsJSON, err := json.Marshal(req.DeductionItems)
		if err != nil {
			return fmt.Errorf("encode payslip deductions: %w", err)
		}
		addClause("deduction_items", deductionsJSON)
	}
	if req.AdminResponse != nil {
		addClause("admin_response", *req.AdminResponse)
	}

	query := fmt.Sprintf("UPDATE payslips SET %s WHERE id = $%d AND company_id = $%d",
		joinClauses(setClauses), argPos, argPos+1)
	args = append(args, id, companyID)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) UpdateStatus(ctx context.Context, id string, companyID string, status payslip.Status, employeeComment *string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payslips SET status = $1, updated_at = $2 WHERE id = $3 AND company_id = $4`
	args := []interface{}{string(status), time.Now(), id, companyID}
	if employeeComment != nil {
		query = `UPDATE payslips SET status = $1, updated_at = $2, employee_comment = $5 WHERE id = $3 AND company_id = $4`
		args = append(args, *employeeComment)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return payslip.ErrPayslipNotFound
	}
	return nil
}

func (r *payslipRepository) ListByCompanyID(ctx context.Context, companyID string) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE company_id = $1 ORDER BY period_start DESC, created_at DESC`
	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

func (r *payslipRepository) ListByEmployeeID(ctx context.Context, employeeID string, companyID string, start, end time.Time) ([]payslip.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payslipColumns + ` FROM payslips WHERE employee_id = $1 AND company_id = $2`
	args := []interface{}{employeeID, companyID}
	if !start.IsZero() && !end.IsZero() {
		query += ` AND period_start <= $4 AND period_end >= $3`
		args = append(args, start, end)
	}
	query += ` ORDER BY period_start DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []payslip.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}
