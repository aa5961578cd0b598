package services

import (
	"context"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashBalanceSvc maintains the running balance of cash accounts.
type CashBalanceSvc interface {
	// UpdateBalance adds or subtracts amount under a row lock. Run it inside a UnitOfWork
	// together with the journal it belongs to.
	UpdateBalance(ctx context.Context, cashAccountID int64, amount decimal.Decimal, direction domain.BalanceDirection, userID string) (*domain.CashAccount, error)

	GetCashAccount(ctx context.Context, cashAccountID int64) (*domain.CashAccount, error)
	ListCashAccounts(ctx context.Context) ([]domain.CashAccount, error)
}
