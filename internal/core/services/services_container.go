package services

import (
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.ChartOfAccounts = NewChartOfAccountService(repos.ChartOfAccounts)
	container.Journal = NewJournalService(repos.UnitOfWork, repos.JournalRepo, repos.ChartOfAccounts)
	container.CashBalance = NewCashBalanceService(repos.UnitOfWork, repos.CashAccountRepo, WithOverdraft(cfg.CashAllowOverdraft))

	// The generator posts through the other services so every posting shares their checks.
	container.AutoJournal = NewAutoJournalService(
		repos.UnitOfWork,
		repos.CashAccountRepo,
		container.ChartOfAccounts,
		container.CashBalance,
		container.Journal,
	)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.PeriodRepo)

	return container
}
