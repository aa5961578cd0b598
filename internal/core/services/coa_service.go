package services

import (
	"context"
	"errors"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
)

type chartOfAccountService struct {
	BaseService
	repo portsrepo.ChartOfAccountReader
}

// NewChartOfAccountService creates the chart-of-accounts registry.
func NewChartOfAccountService(repo portsrepo.ChartOfAccountReader) portssvc.ChartOfAccountSvc {
	return &chartOfAccountService{repo: repo}
}

var _ portssvc.ChartOfAccountSvc = (*chartOfAccountService)(nil)

func (s *chartOfAccountService) Lookup(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	coa, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewConfigurationError("chart of account "+code+" is not seeded", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if !coa.IsActive {
		return nil, apperrors.NewConfigurationError("chart of account "+code+" is inactive", apperrors.ErrNotFound)
	}
	return coa, nil
}

func (s *chartOfAccountService) ResolveCashAccountCoa(cashAccountType domain.CashAccountType) (string, error) {
	code, ok := domain.CashAccountCoa[cashAccountType]
	if !ok {
		return "", apperrors.NewConfigurationError("no chart of account mapped for cash account type "+string(cashAccountType), nil)
	}
	return code, nil
}

func (s *chartOfAccountService) ResolveSavingTypeCoa(savingsType domain.SavingsType) (string, error) {
	code, ok := domain.SavingTypeCoa[savingsType]
	if !ok {
		return "", apperrors.NewConfigurationError("no chart of account mapped for savings type "+string(savingsType), nil)
	}
	return code, nil
}

func (s *chartOfAccountService) ListChartOfAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error) {
	return s.repo.ListChartOfAccounts(ctx, includeInactive)
}
