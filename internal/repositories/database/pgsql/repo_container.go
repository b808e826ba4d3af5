package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tradegate/trading_erp/internal/core/ports/repositories"
)

// RepositoryContainer bundles all pgsql-backed repositories.
type RepositoryContainer struct {
	Account   portsrepo.AccountHeadRepositoryFacade
	Journal   portsrepo.JournalEntryRepositoryFacade
	Sequence  portsrepo.SequenceRepository
	Period    portsrepo.PeriodCloseRepository
	Reporting portsrepo.ReportingRepository
	Settings  portsrepo.SettingsRepository
	Member    portsrepo.CompanyMemberRepository
}

// NewRepositoryContainer wires all repositories over one connection pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	accountRepo := newPgxAccountHeadRepository(pool)
	sequenceRepo := newPgxSequenceRepository(pool)
	return &RepositoryContainer{
		Account:   accountRepo,
		Journal:   newPgxJournalEntryRepository(pool, accountRepo, sequenceRepo),
		Sequence:  sequenceRepo,
		Period:    newPgxPeriodCloseRepository(pool),
		Reporting: newPgxReportingRepository(pool),
		Settings:  newPgxSettingsRepository(pool),
		Member:    newPgxCompanyMemberRepository(pool),
	}
}
