package services

import (
	"log/slog"

	"github.com/kapatiran-mfi/microfin_ops_app/internal/core/domain"
	portsrepo "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/repositories"
	portssvc "github.com/kapatiran-mfi/microfin_ops_app/internal/core/ports/services"
)

// NewServiceContainer wires every application service onto the repository
// provider. The audit service is created first so the rest can publish to
// it; callers must Close it on shutdown to drain pending entries.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, logger *slog.Logger, auditBufferSize int) *portssvc.ServiceContainer {
	perms := domain.DefaultPermissions()
	base := NewBaseService(perms, repos.UserRepo)

	audit := NewAuditService(base, repos.AuditRepo, logger, auditBufferSize)

	return &portssvc.ServiceContainer{
		Loan:       NewLoanService(base, repos.LoanRepo, repos.MemberRepo, audit),
		Approval:   NewApprovalService(base, repos.LoanRepo, audit),
		Schedule:   NewScheduleService(base, repos.LoanRepo, repos.ScheduleRepo, audit),
		Collection: NewCollectionService(base, repos.LoanRepo, repos.ScheduleRepo, repos.CollectionRepo, repos.MemberRepo, repos.CenterRepo, audit),
		Risk:       NewRiskService(base, repos.ReportingRepo),
		Audit:      audit,
		User:       NewUserService(base, repos.UserRepo, audit),
		Member:     NewMemberService(base, repos.MemberRepo, repos.CenterRepo),
		Center:     NewCenterService(base, repos.CenterRepo, repos.UserRepo),
	}
}
