package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

type cashBalanceService struct {
	BaseService
	uow            portsrepo.UnitOfWork
	repo           portsrepo.CashAccountRepository
	allowOverdraft bool
}

// CashBalanceOption configures the cash balance service.
type CashBalanceOption func(*cashBalanceService)

// WithOverdraft sets whether balances may go negative.
func WithOverdraft(allow bool) CashBalanceOption {
	return func(s *cashBalanceService) {
		s.allowOverdraft = allow
	}
}

// NewCashBalanceService creates the cash balance tracker. Overdrafts are allowed by default.
func NewCashBalanceService(uow portsrepo.UnitOfWork, repo portsrepo.CashAccountRepository, opts ...CashBalanceOption) portssvc.CashBalanceSvc {
	s := &cashBalanceService{uow: uow, repo: repo, allowOverdraft: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CashBalanceSvc = (*cashBalanceService)(nil)

func (s *cashBalanceService) UpdateBalance(ctx context.Context, cashAccountID int64, amount decimal.Decimal, direction domain.BalanceDirection, userID string) (*domain.CashAccount, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: balance change must be positive, got %s", apperrors.ErrValidation, amount.String())
	}
	if err := accounting.CheckCents("balance change", amount); err != nil {
		return nil, err
	}
	if direction != domain.BalanceAdd && direction != domain.BalanceSubtract {
		return nil, fmt.Errorf("%w: unknown balance direction %q", apperrors.ErrValidation, direction)
	}

	var result *domain.CashAccount
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		acc, err := s.repo.FindCashAccountByIDForUpdate(ctx, cashAccountID)
		if err != nil {
			return err
		}

		balance := acc.CurrentBalance.Add(amount)
		if direction == domain.BalanceSubtract {
			balance = acc.CurrentBalance.Sub(amount)
		}
		if balance.IsNegative() && !s.allowOverdraft {
			return fmt.Errorf("%w: cash account %s balance %s is insufficient for %s",
				apperrors.ErrValidation, acc.Code, acc.CurrentBalance.StringFixed(2), amount.StringFixed(2))
		}

		now := s.Now()
		if err := s.repo.UpdateCashAccountBalance(ctx, acc.ID, balance, userID, now); err != nil {
			return err
		}
		acc.CurrentBalance = balance
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = userID
		result = acc
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Cash balance updated",
		slog.Int64("cash_account_id", cashAccountID),
		slog.String("direction", string(direction)),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("balance", result.CurrentBalance.StringFixed(2)))
	return result, nil
}

func (s *cashBalanceService) GetCashAccount(ctx context.Context, cashAccountID int64) (*domain.CashAccount, error) {
	return s.repo.FindCashAccountByID(ctx, cashAccountID)
}

func (s *cashBalanceService) ListCashAccounts(ctx context.Context) ([]domain.CashAccount, error) {
	return s.repo.ListCashAccounts(ctx)
}
