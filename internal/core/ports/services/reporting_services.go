package services

import (
	"context"
	"time"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
)

// ReportingService defines the interface for financial reporting
type ReportingService interface {
	// TrialBalance lists every account with activity on or before asOf, optionally
	// restricted to an accounting period.
	TrialBalance(ctx context.Context, asOf time.Time, periodID *int64) (*domain.TrialBalanceReport, error)

	// GeneralLedger returns per-account lines with running balances in journal-id order.
	GeneralLedger(ctx context.Context, startDate, endDate time.Time, accountID *int64) (*domain.GeneralLedgerReport, error)

	IncomeStatement(ctx context.Context, startDate, endDate time.Time, compare bool) (*domain.IncomeStatementReport, error)

	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	CashFlow(ctx context.Context, startDate, endDate time.Time) (*domain.CashFlowReport, error)
}
