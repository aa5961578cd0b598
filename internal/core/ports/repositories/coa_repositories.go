package repositories

import (
	"context"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
)

// ChartOfAccountReader defines read operations for the chart of accounts
type ChartOfAccountReader interface {
	// FindByCode returns the account with the given code, active or not.
	FindByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error)

	// FindByIDs returns the accounts found, keyed by ID. Missing IDs are absent from the map.
	FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.ChartOfAccount, error)

	ListChartOfAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error)
}
