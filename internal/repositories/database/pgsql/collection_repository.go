package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/apperrors"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/utils/mapping"
)

type PgxCollectionRepository struct {
	BaseRepository
}

func newPgxCollectionRepository(db *pgxpool.Pool) portsrepo.CollectionRepositoryFacade {
	return &PgxCollectionRepository{BaseRepository{Pool: db}}
}

// Ensure PgxCollectionRepository implements portsrepo.CollectionRepositoryFacade
var _ portsrepo.CollectionRepositoryFacade = (*PgxCollectionRepository)(nil)

const sheetColumns = `sheet_id, center_id, collection_date, expected_members, present_members,
		total_loan, total_cbu, total_insurance, total_collected, status, verified_by, verified_at,
		created_at, created_by, last_updated_at, last_updated_by`

func scanSheet(row pgx.Row) (*models.CollectionSheet, error) {
	var m models.CollectionSheet
	err := row.Scan(
		&m.SheetID,
		&m.CenterID,
		&m.CollectionDate,
		&m.ExpectedMembers,
		&m.PresentMembers,
		&m.TotalLoan,
		&m.TotalCBU,
		&m.TotalInsurance,
		&m.TotalCollected,
		&m.Status,
		&m.VerifiedBy,
		&m.VerifiedAt,
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

// SaveCollectionSheet inserts the sheet header and every entry line. It must
// be called from within RunAtomic so the header and lines land together.
func (r *PgxCollectionRepository) SaveCollectionSheet(ctx context.Context, sheet domain.CollectionSheet) error {
	m := mapping.ToModelCollectionSheet(sheet)
	sheetQuery := `
		INSERT INTO collection_sheets (` + sheetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.conn(ctx).Exec(ctx, sheetQuery,
		m.SheetID,
		m.CenterID,
		m.CollectionDate,
		m.ExpectedMembers,
		m.PresentMembers,
		m.TotalLoan,
		m.TotalCBU,
		m.TotalInsurance,
		m.TotalCollected,
		m.Status,
		m.VerifiedBy,
		m.VerifiedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save collection sheet: %w", err)
	}

	if len(sheet.Entries) == 0 {
		return nil
	}
	entryQuery := `
		INSERT INTO collection_entries (entry_id, sheet_id, member_id, loan_id, is_present, loan_payment, cbu_payment, insurance_payment, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, entry := range sheet.Entries {
		em := mapping.ToModelCollectionEntry(entry)
		batch.Queue(entryQuery,
			em.EntryID,
			em.SheetID,
			em.MemberID,
			em.LoanID,
			em.IsPresent,
			em.LoanPayment,
			em.CBUPayment,
			em.InsurancePayment,
			em.Notes,
		)
	}
	br := r.conn(ctx).SendBatch(ctx, batch)
	defer br.Close()
	for range sheet.Entries {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert collection entry: %w", err)
		}
	}
	return nil
}

func (r *PgxCollectionRepository) findEntriesBySheet(ctx context.Context, sheetID string) ([]domain.CollectionEntry, error) {
	query := `
		SELECT entry_id, sheet_id, member_id, loan_id, is_present, loan_payment, cbu_payment, insurance_payment, notes
		FROM collection_entries
		WHERE sheet_id = $1
		ORDER BY entry_id ASC;
	`
	rows, err := r.conn(ctx).Query(ctx, query, sheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection entries: %w", err)
	}
	defer rows.Close()

	var ms []models.CollectionEntry
	for rows.Next() {
		var m models.CollectionEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.SheetID,
			&m.MemberID,
			&m.LoanID,
			&m.IsPresent,
			&m.LoanPayment,
			&m.CBUPayment,
			&m.InsurancePayment,
			&m.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan collection entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection entry rows: %w", err)
	}
	return mapping.ToDomainCollectionEntrySlice(ms), nil
}

func (r *PgxCollectionRepository) FindSheetByID(ctx context.Context, sheetID string) (*domain.CollectionSheet, error) {
	query := `SELECT ` + sheetColumns + ` FROM collection_sheets WHERE sheet_id = $1;`
	m, err := scanSheet(r.conn(ctx).QueryRow(ctx, query, sheetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find collection sheet %s: %w", sheetID, err)
	}
	d := mapping.ToDomainCollectionSheet(*m)
	entries, err := r.findEntriesBySheet(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	d.Entries = entries
	return &d, nil
}

func (r *PgxCollectionRepository) FindSheetByCenterAndDate(ctx context.Context, centerID string, date time.Time) (*domain.CollectionSheet, error) {
	query := `SELECT ` + sheetColumns + ` FROM collection_sheets WHERE center_id = $1 AND collection_date = $2;`
	m, err := scanSheet(r.conn(ctx).QueryRow(ctx, query, centerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find collection sheet for center %s: %w", centerID, err)
	}
	d := mapping.ToDomainCollectionSheet(*m)
	return &d, nil
}

func (r *PgxCollectionRepository) ListSheetsByCenter(ctx context.Context, centerID string, limit, offset int) ([]domain.CollectionSheet, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + sheetColumns + `
		FROM collection_sheets
		WHERE center_id = $1
		ORDER BY collection_date DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.conn(ctx).Query(ctx, query, centerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list collection sheets: %w", err)
	}
	defer rows.Close()

	var ms []models.CollectionSheet
	for rows.Next() {
		m, err := scanSheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan collection sheet row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collection sheet rows: %w", err)
	}
	return mapping.ToDomainCollectionSheetSlice(ms), nil
}

// MarkSheetVerified flips a draft sheet to verified. The status predicate
// makes verification write-once; re-verifying an already verified sheet
// reports not found to the caller.
func (r *PgxCollectionRepository) MarkSheetVerified(ctx context.Context, sheetID, verifierID string, verifiedAt time.Time) error {
	query := `
		UPDATE collection_sheets
		SET status = 'verified', verified_by = $2, verified_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE sheet_id = $1 AND status = 'draft';
	`
	tag, err := r.conn(ctx).Exec(ctx, query, sheetID, verifierID, verifiedAt)
	if err != nil {
		return fmt.Errorf("failed to verify collection sheet %s: %w", sheetID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("draft collection sheet %s not found: %w", sheetID, apperrors.ErrNotFound)
	}
	return nil
}
