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
	"github.com/shopspring/decimal"
)

type PgxMemberRepository struct {
	BaseRepository
}

func newPgxMemberRepository(db *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{BaseRepository{Pool: db}}
}

// Ensure PgxMemberRepository implements portsrepo.MemberRepositoryFacade
var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

const memberColumns = `member_id, center_id, first_name, last_name, phone, cbu_balance, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

func scanMember(row pgx.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID,
		&m.CenterID,
		&m.FirstName,
		&m.LastName,
		&m.Phone,
		&m.CBUBalance,
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

func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.MemberID,
		m.CenterID,
		m.FirstName,
		m.LastName,
		m.Phone,
		m.CBUBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save member: %w", err)
	}
	return nil
}

func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE member_id = $1;`
	m, err := scanMember(r.conn(ctx).QueryRow(ctx, query, memberID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member %s: %w", memberID, err)
	}
	d := mapping.ToDomainMember(*m)
	return &d, nil
}

func (r *PgxMemberRepository) FindMembersByCenter(ctx context.Context, centerID string) ([]domain.Member, error) {
	query := `
		SELECT ` + memberColumns + `
		FROM members
		WHERE center_id = $1
		ORDER BY last_name ASC, first_name ASC;
	`
	rows, err := r.conn(ctx).Query(ctx, query, centerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of center %s: %w", centerID, err)
	}
	defer rows.Close()

	var ms []models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return mapping.ToDomainMemberSlice(ms), nil
}

func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		UPDATE members SET
			center_id = $2,
			first_name = $3,
			last_name = $4,
			phone = $5,
			cbu_balance = $6,
			is_active = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE member_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
		m.MemberID,
		m.CenterID,
		m.FirstName,
		m.LastName,
		m.Phone,
		m.CBUBalance,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update member %s: %w", member.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found for update: %w", member.MemberID, apperrors.ErrNotFound)
	}
	return nil
}

// AddToCBUBalance increments the savings balance in place so concurrent
// collection postings never lose an increment.
func (r *PgxMemberRepository) AddToCBUBalance(ctx context.Context, memberID string, amount decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE members
		SET cbu_balance = cbu_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE member_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, memberID, amount, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to add to CBU balance of member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found for CBU update: %w", memberID, apperrors.ErrNotFound)
	}
	return nil
}
