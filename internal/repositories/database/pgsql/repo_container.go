package pgsql

import (
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:      NewTxManager(dbPool),
		ChartOfAccounts: newPgxChartOfAccountRepository(dbPool),
		JournalRepo:     newPgxJournalRepository(dbPool),
		CashAccountRepo: newPgxCashAccountRepository(dbPool),
		PeriodRepo:      newPgxPeriodRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
