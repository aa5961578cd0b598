package repositories

import (
	"context"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
)

// ReportingRepository defines read-only aggregations over posted journal details
type ReportingRepository interface {
	// SumByAccount returns debit and credit totals for each account with at least one matching line.
	SumByAccount(ctx context.Context, filter domain.LedgerFilter) ([]domain.AccountTotal, error)

	// SumByAccountAndSource is SumByAccount further grouped by journal source module.
	SumByAccountAndSource(ctx context.Context, filter domain.LedgerFilter) ([]domain.AccountSourceTotal, error)

	// ListLedgerLines returns matching lines ordered by journal ID then detail ID.
	ListLedgerLines(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerLine, error)
}
