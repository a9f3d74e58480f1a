package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/utils/mapping"
)

type PgxScheduleRepository struct {
	BaseRepository
}

func newPgxScheduleRepository(db *pgxpool.Pool) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{BaseRepository{Pool: db}}
}

// Ensure PgxScheduleRepository implements portsrepo.ScheduleRepositoryFacade
var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

const scheduleColumns = `entry_id, loan_id, week_number, due_date, principal_due, interest_due, total_due, status, paid_at`

// SaveScheduleEntries bulk-inserts the full installment list with a single batch.
func (r *PgxScheduleRepository) SaveScheduleEntries(ctx context.Context, entries []domain.RepaymentScheduleEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO repayment_schedule_entries (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelScheduleEntry(entry)
		batch.Queue(query,
			m.EntryID,
			m.LoanID,
			m.WeekNumber,
			m.DueDate,
			m.PrincipalDue,
			m.InterestDue,
			m.TotalDue,
			m.Status,
			m.PaidAt,
		)
	}

	br := r.conn(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for range entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert schedule entry: %w", err)
		}
	}
	return nil
}

func (r *PgxScheduleRepository) findEntries(ctx context.Context, query string, args ...any) ([]domain.RepaymentScheduleEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule entries: %w", err)
	}
	defer rows.Close()

	var ms []models.RepaymentScheduleEntry
	for rows.Next() {
		var m models.RepaymentScheduleEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.LoanID,
			&m.WeekNumber,
			&m.DueDate,
			&m.PrincipalDue,
			&m.InterestDue,
			&m.TotalDue,
			&m.Status,
			&m.PaidAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule entry rows: %w", err)
	}
	return mapping.ToDomainScheduleEntrySlice(ms), nil
}

func (r *PgxScheduleRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.RepaymentScheduleEntry, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM repayment_schedule_entries
		WHERE loan_id = $1
		ORDER BY week_number ASC;
	`
	return r.findEntries(ctx, query, loanID)
}

// FindUnsettledByLoanIDForUpdate locks the unsettled rows for the enclosing
// transaction. Callers must invoke it from within RunAtomic.
func (r *PgxScheduleRepository) FindUnsettledByLoanIDForUpdate(ctx context.Context, loanID string) ([]domain.RepaymentScheduleEntry, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM repayment_schedule_entries
		WHERE loan_id = $1 AND status <> 'paid'
		ORDER BY due_date ASC
		FOR UPDATE;
	`
	return r.findEntries(ctx, query, loanID)
}

func (r *PgxScheduleRepository) MarkEntriesPaid(ctx context.Context, entryIDs []string, paidAt time.Time) error {
	if len(entryIDs) == 0 {
		return nil
	}
	query := `
		UPDATE repayment_schedule_entries
		SET status = 'paid', paid_at = $2
		WHERE entry_id = ANY($1);
	`
	tag, err := r.conn(ctx).Exec(ctx, query, entryIDs, paidAt)
	if err != nil {
		return fmt.Errorf("failed to mark schedule entries paid: %w", err)
	}
	if int(tag.RowsAffected()) != len(entryIDs) {
		return fmt.Errorf("expected to settle %d schedule entries, settled %d", len(entryIDs), tag.RowsAffected())
	}
	return nil
}
