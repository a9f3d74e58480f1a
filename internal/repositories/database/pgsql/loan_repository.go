package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/utils/mapping"
)

type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(db *pgxpool.Pool) portsrepo.LoanRepositoryWithTx {
	return &PgxLoanRepository{BaseRepository{Pool: db}}
}

// Ensure PgxLoanRepository implements portsrepo.LoanRepositoryWithTx
var _ portsrepo.LoanRepositoryWithTx = (*PgxLoanRepository)(nil)

const loanColumns = `loan_id, member_id, center_id, principal_amount, monthly_rate, term_weeks, purpose, status,
		total_interest, cbu_amount, weekly_payment, outstanding_balance,
		field_officer_id, branch_manager_id, area_manager_id, approval_date, disbursed_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanLoan(row pgx.Row) (*models.Loan, error) {
	var m models.Loan
	err := row.Scan(
		&m.LoanID,
		&m.MemberID,
		&m.CenterID,
		&m.PrincipalAmount,
		&m.MonthlyRate,
		&m.TermWeeks,
		&m.Purpose,
		&m.Status,
		&m.TotalInterest,
		&m.CBUAmount,
		&m.WeeklyPayment,
		&m.OutstandingBalance,
		&m.FieldOfficerID,
		&m.BranchManagerID,
		&m.AreaManagerID,
		&m.ApprovalDate,
		&m.DisbursedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxLoanRepository) SaveLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.LoanID,
		m.MemberID,
		m.CenterID,
		m.PrincipalAmount,
		m.MonthlyRate,
		m.TermWeeks,
		m.Purpose,
		m.Status,
		m.TotalInterest,
		m.CBUAmount,
		m.WeeklyPayment,
		m.OutstandingBalance,
		m.FieldOfficerID,
		m.BranchManagerID,
		m.AreaManagerID,
		m.ApprovalDate,
		m.DisbursedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save loan: %w", err)
	}
	return nil
}

func (r *PgxLoanRepository) findLoan(ctx context.Context, loanID string, forUpdate bool) (*domain.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE loan_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanLoan(r.conn(ctx).QueryRow(ctx, query, loanID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find loan %s: %w", loanID, err)
	}
	d := mapping.ToDomainLoan(*m)
	return &d, nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findLoan(ctx, loanID, false)
}

// FindLoanByIDForUpdate locks the loan row for the duration of the enclosing
// transaction. Callers must invoke it from within RunAtomic.
func (r *PgxLoanRepository) FindLoanByIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	return r.findLoan(ctx, loanID, true)
}

func (r *PgxLoanRepository) ListLoans(ctx context.Context, params portsrepo.ListLoansParams) ([]domain.Loan, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + loanColumns + ` FROM loans WHERE 1=1`
	args := []any{}
	argPos := 1
	if params.CenterID != "" {
		query += fmt.Sprintf(" AND center_id = $%d", argPos)
		args = append(args, params.CenterID)
		argPos++
	}
	if params.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*params.Status))
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	var ms []models.Loan
	for rows.Next() {
		m, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan rows: %w", err)
	}
	return mapping.ToDomainLoanSlice(ms), nil
}

func (r *PgxLoanRepository) UpdateLoan(ctx context.Context, loan domain.Loan) error {
	m := mapping.ToModelLoan(loan)
	query := `
		UPDATE loans SET
			status = $2,
			total_interest = $3,
			cbu_amount = $4,
			weekly_payment = $5,
			outstanding_balance = $6,
			field_officer_id = $7,
			branch_manager_id = $8,
			area_manager_id = $9,
			approval_date = $10,
			disbursed_at = $11,
			last_updated_at = $12,
			last_updated_by = $13
		WHERE loan_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.LoanID,
		m.Status,
		m.TotalInterest,
		m.CBUAmount,
		m.WeeklyPayment,
		m.OutstandingBalance,
		m.FieldOfficerID,
		m.BranchManagerID,
		m.AreaManagerID,
		m.ApprovalDate,
		m.DisbursedAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan %s: %w", loan.LoanID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("loan %s not found for update: %w", loan.LoanID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxLoanRepository) AppendApprovalRecord(ctx context.Context, record domain.LoanApprovalRecord) error {
	m := mapping.ToModelApprovalRecord(record)
	query := `
		INSERT INTO loan_approval_records (record_id, loan_id, approver_id, approver_role, action, from_status, to_status, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.RecordID,
		m.LoanID,
		m.ApproverID,
		m.ApproverRole,
		m.Action,
		m.FromStatus,
		m.ToStatus,
		m.Comment,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append approval record for loan %s: %w", record.LoanID, err)
	}
	return nil
}

func (r *PgxLoanRepository) ListApprovalRecordsByLoan(ctx context.Context, loanID string) ([]domain.LoanApprovalRecord, error) {
	query := `
		SELECT record_id, loan_id, approver_id, approver_role, action, from_status, to_status, comment, created_at
		FROM loan_approval_records
		WHERE loan_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.conn(ctx).Query(ctx, query, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval records for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	var ms []models.LoanApprovalRecord
	for rows.Next() {
		var m models.LoanApprovalRecord
		if err := rows.Scan(
			&m.RecordID,
			&m.LoanID,
			&m.ApproverID,
			&m.ApproverRole,
			&m.Action,
			&m.FromStatus,
			&m.ToStatus,
			&m.Comment,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan approval record row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approval record rows: %w", err)
	}
	return mapping.ToDomainApprovalRecordSlice(ms), nil
}
