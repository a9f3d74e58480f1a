package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one shared pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LoanRepo:       newPgxLoanRepository(dbPool),
		ScheduleRepo:   newPgxScheduleRepository(dbPool),
		CollectionRepo: newPgxCollectionRepository(dbPool),
		MemberRepo:     newPgxMemberRepository(dbPool),
		CenterRepo:     newPgxCenterRepository(dbPool),
		ReportingRepo:  newPgxReportingRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
	}
}
