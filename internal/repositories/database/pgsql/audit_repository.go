package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/models"
	"github.com/kapatiran-mfi/microfin_ops_app/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(db *pgxpool.Pool) portsrepo.AuditRepository {
	return &PgxAuditRepository{BaseRepository{Pool: db}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepository
var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

const auditColumns = `audit_id, user_id, action, resource_type, resource_id, old_values, new_values, success, error_message, created_at`

func (r *PgxAuditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	m := mapping.ToModelAuditEntry(entry)
	query := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.AuditID,
		m.UserID,
		m.Action,
		m.ResourceType,
		m.ResourceID,
		m.OldValues,
		m.NewValues,
		m.Success,
		m.ErrorMessage,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

func (r *PgxAuditRepository) ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + auditColumns + `
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.conn(ctx).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var ms []models.AuditEntry
	for rows.Next() {
		var m models.AuditEntry
		if err := rows.Scan(
			&m.AuditID,
			&m.UserID,
			&m.Action,
			&m.ResourceType,
			&m.ResourceID,
			&m.OldValues,
			&m.NewValues,
			&m.Success,
			&m.ErrorMessage,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit entry rows: %w", err)
	}
	return mapping.ToDomainAuditEntrySlice(ms), nil
}
