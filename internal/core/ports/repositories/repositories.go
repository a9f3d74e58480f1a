package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LoanRepo       LoanRepositoryWithTx
	ScheduleRepo   ScheduleRepositoryFacade
	CollectionRepo CollectionRepositoryFacade
	MemberRepo     MemberRepositoryFacade
	CenterRepo     CenterRepositoryFacade
	ReportingRepo  ReportingRepository
	AuditRepo      AuditRepository
	UserRepo       UserRepositoryFacade
}
