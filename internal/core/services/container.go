package services

import (
	"time"

	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
)

// ContainerDeps bundles the repositories the service layer is built from.
type ContainerDeps struct {
	AccountRepo   portsrepo.AccountHeadRepositoryFacade
	JournalRepo   portsrepo.JournalEntryRepositoryFacade
	PeriodRepo    portsrepo.PeriodCloseRepository
	ReportingRepo portsrepo.ReportingRepository
	SettingsRepo  portsrepo.SettingsRepository
	MemberRepo    portsrepo.CompanyMemberRepository

	SettingsCacheTTL time.Duration
}

// NewServiceContainer wires repositories into the full service graph.
func NewServiceContainer(deps ContainerDeps) *portssvc.ServiceContainer {
	authorizer := NewCompanyAuthorizer(deps.MemberRepo)
	projector := NewBalanceProjector(deps.ReportingRepo)

	periodSvc := NewPeriodCloseService(deps.PeriodRepo, deps.ReportingRepo,
		WithPeriodAuthorizer(authorizer))

	return &portssvc.ServiceContainer{
		Account: NewAccountHeadService(deps.AccountRepo, projector,
			WithAccountAuthorizer(authorizer)),
		Journal: NewJournalEntryService(deps.JournalRepo, deps.AccountRepo, periodSvc,
			WithJournalAuthorizer(authorizer)),
		Period: periodSvc,
		Reporting: NewReportingService(deps.ReportingRepo, deps.AccountRepo, projector,
			WithReportingAuthorizer(authorizer)),
		Settings: NewSettingsService(deps.SettingsRepo, NewSettingsCache(deps.SettingsCacheTTL),
			WithSettingsAuthorizer(authorizer)),
		Authorizer: authorizer,
	}
}
