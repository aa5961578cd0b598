package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/core/services"
	"github.com/SscSPs/coop_ledger/internal/platform/config"
	"github.com/SscSPs/coop_ledger/internal/repositories/database/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUser = "user-1"

// ledgerSuite wires the real services over a seeded in-memory store.
type ledgerSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	svc   *portssvc.ServiceContainer
	cfg   *config.Config
}

func (s *ledgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewSeededStore()
	if s.cfg == nil {
		s.cfg = &config.Config{CashAllowOverdraft: true}
	}
	s.svc = services.NewServiceContainer(s.cfg, s.store.Provider())
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func (s *ledgerSuite) coa(code string) domain.ChartOfAccount {
	coa, err := s.store.FindByCode(s.ctx, code)
	s.Require().NoError(err)
	return *coa
}

func (s *ledgerSuite) cashAccount(t domain.CashAccountType) domain.CashAccount {
	acc, err := s.store.FindActiveCashAccountByType(s.ctx, t)
	s.Require().NoError(err)
	return *acc
}

func (s *ledgerSuite) balanceOf(id int64) decimal.Decimal {
	acc, err := s.svc.CashBalance.GetCashAccount(s.ctx, id)
	s.Require().NoError(err)
	return acc.CurrentBalance
}

func (s *ledgerSuite) line(code string, debit, credit int64) domain.JournalLineDraft {
	return domain.JournalLineDraft{ChartOfAccountID: s.coa(code).ID, Debit: dec(debit), Credit: dec(credit)}
}

func (s *ledgerSuite) manualJournal(date time.Time, lines ...domain.JournalLineDraft) *domain.Journal {
	j, err := s.svc.Journal.CreateJournal(s.ctx, domain.JournalDraft{
		JournalType:     domain.JournalGeneral,
		Description:     "manual entry",
		TransactionDate: date,
		IsEditable:      true,
		SourceModule:    domain.SourceManual,
		Lines:           lines,
	}, testUser)
	s.Require().NoError(err)
	return j
}

// lineFor returns the detail posted to code, failing if there is none.
func (s *ledgerSuite) lineFor(j *domain.Journal, code string) domain.JournalDetail {
	for _, d := range j.Details {
		if d.AccountCode == code {
			return d
		}
	}
	s.FailNow("no line for account " + code)
	return domain.JournalDetail{}
}

func (s *ledgerSuite) journalCount() int {
	page, _, err := s.store.ListJournals(s.ctx, domain.JournalFilter{}, 1000, nil)
	s.Require().NoError(err)
	return len(page)
}
