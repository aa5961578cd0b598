package services

import (
	"context"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
)

// ChartOfAccountSvc resolves ledger accounts for postings.
type ChartOfAccountSvc interface {
	// Lookup returns the active account with the code. A missing or inactive
	// code is a configuration error that also matches apperrors.ErrNotFound.
	Lookup(ctx context.Context, code string) (*domain.ChartOfAccount, error)

	ResolveCashAccountCoa(cashAccountType domain.CashAccountType) (string, error)
	ResolveSavingTypeCoa(savingsType domain.SavingsType) (string, error)

	ListChartOfAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error)
}
