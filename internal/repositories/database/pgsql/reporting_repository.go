package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository{Pool: db}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// GetOverdueExposure reads all unsettled installments already past due,
// annotated with the owning loan. Loans no longer on the books are excluded.
func (r *PgxReportingRepository) GetOverdueExposure(ctx context.Context, asOf time.Time) ([]domain.OverdueExposure, error) {
	query := `
		SELECT e.loan_id, l.center_id, e.due_date, e.principal_due, e.interest_due
		FROM repayment_schedule_entries e
		JOIN loans l ON l.loan_id = e.loan_id
		WHERE e.status <> 'paid'
		  AND e.due_date < $1
		  AND l.status IN ('disbursed', 'active')
		ORDER BY e.due_date ASC;
	`
	rows, err := r.conn(ctx).Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue exposure: %w", err)
	}
	defer rows.Close()

	var exposures []domain.OverdueExposure
	for rows.Next() {
		var e domain.OverdueExposure
		if err := rows.Scan(
			&e.LoanID,
			&e.CenterID,
			&e.DueDate,
			&e.PrincipalDue,
			&e.InterestDue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan overdue exposure row: %w", err)
		}
		exposures = append(exposures, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating overdue exposure rows: %w", err)
	}
	return exposures, nil
}

// GetTotalOutstanding sums the outstanding balances of loans still on the books.
func (r *PgxReportingRepository) GetTotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(outstanding_balance), 0)
		FROM loans
		WHERE status IN ('disbursed', 'active');
	`
	var total decimal.Decimal
	if err := r.conn(ctx).QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum outstanding balances: %w", err)
	}
	return total, nil
}
