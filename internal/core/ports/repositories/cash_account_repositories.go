package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashAccountRepository defines persistence operations for cash accounts
type CashAccountRepository interface {
	FindCashAccountByID(ctx context.Context, id int64) (*domain.CashAccount, error)

	// FindCashAccountByIDForUpdate locks the row until the surrounding UnitOfWork ends.
	FindCashAccountByIDForUpdate(ctx context.Context, id int64) (*domain.CashAccount, error)

	// FindActiveCashAccountByType returns the first active account of the type by ID.
	FindActiveCashAccountByType(ctx context.Context, accountType domain.CashAccountType) (*domain.CashAccount, error)

	ListCashAccounts(ctx context.Context) ([]domain.CashAccount, error)

	UpdateCashAccountBalance(ctx context.Context, id int64, balance decimal.Decimal, userID string, updatedAt time.Time) error
}
