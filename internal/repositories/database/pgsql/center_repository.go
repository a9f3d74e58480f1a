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

type PgxCenterRepository struct {
	BaseRepository
}

func newPgxCenterRepository(db *pgxpool.Pool) portsrepo.CenterRepositoryFacade {
	return &PgxCenterRepository{BaseRepository{Pool: db}}
}

// Ensure PgxCenterRepository implements portsrepo.CenterRepositoryFacade
var _ portsrepo.CenterRepositoryFacade = (*PgxCenterRepository)(nil)

const centerColumns = `center_id, name, barangay, meeting_day, officer_id, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func scanCenter(row pgx.Row) (*models.Center, error) {
	var m models.Center
	err := row.Scan(
		&m.CenterID,
		&m.Name,
		&m.Barangay,
		&m.MeetingDay,
		&m.OfficerID,
		&m.IsActive,
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

func (r *PgxCenterRepository) SaveCenter(ctx context.Context, center domain.Center) error {
	m := mapping.ToModelCenter(center)
	query := `
		INSERT INTO centers (` + centerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.CenterID,
		m.Name,
		m.Barangay,
		m.MeetingDay,
		m.OfficerID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save center: %w", err)
	}
	return nil
}

func (r *PgxCenterRepository) FindCenterByID(ctx context.Context, centerID string) (*domain.Center, error) {
	query := `SELECT ` + centerColumns + ` FROM centers WHERE center_id = $1;`
	m, err := scanCenter(r.conn(ctx).QueryRow(ctx, query, centerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find center %s: %w", centerID, err)
	}
	d := mapping.ToDomainCenter(*m)
	return &d, nil
}

func (r *PgxCenterRepository) ListCenters(ctx context.Context, limit, offset int) ([]domain.Center, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + centerColumns + `
		FROM centers
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.conn(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list centers: %w", err)
	}
	defer rows.Close()

	var ms []models.Center
	for rows.Next() {
		m, err := scanCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan center row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating center rows: %w", err)
	}
	return mapping.ToDomainCenterSlice(ms), nil
}

func (r *PgxCenterRepository) UpdateCenter(ctx context.Context, center domain.Center) error {
	m := mapping.ToModelCenter(center)
	query := `
		UPDATE centers SET
			name = $2,
			barangay = $3,
			meeting_day = $4,
			officer_id = $5,
			is_active = $6,
			last_updated_at = $7,
			last_updated_by = $8
		WHERE center_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.CenterID,
		m.Name,
		m.Barangay,
		m.MeetingDay,
		m.OfficerID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update center %s: %w", center.CenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("center %s not found for update: %w", center.CenterID, apperrors.ErrNotFound)
	}
	return nil
}
