package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock ChartOfAccountSvc ---
type MockChartOfAccountService struct {
	mock.Mock
}

func (m *MockChartOfAccountService) Lookup(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartOfAccount), args.Error(1)
}
func (m *MockChartOfAccountService) ResolveCashAccountCoa(t domain.CashAccountType) (string, error) {
	args := m.Called(t)
	return args.String(0), args.Error(1)
}
func (m *MockChartOfAccountService) ResolveSavingTypeCoa(t domain.SavingsType) (string, error) {
	args := m.Called(t)
	return args.String(0), args.Error(1)
}
func (m *MockChartOfAccountService) ListChartOfAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartOfAccount), args.Error(1)
}

var _ portssvc.ChartOfAccountSvc = (*MockChartOfAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalsResponse), args.Error(1)
}
func (m *MockJournalService) CreateJournal(ctx context.Context, draft domain.JournalDraft, creatorUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, draft, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) UpdateJournal(ctx context.Context, journalID int64, update domain.JournalUpdate, requestingUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, update, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}
func (m *MockJournalService) DeleteJournal(ctx context.Context, journalID int64, requestingUserID string) error {
	args := m.Called(ctx, journalID, requestingUserID)
	return args.Error(0)
}
func (m *MockJournalService) LockJournal(ctx context.Context, journalID int64, requestingUserID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock CashBalanceSvc ---
type MockCashBalanceService struct {
	mock.Mock
}

func (m *MockCashBalanceService) UpdateBalance(ctx context.Context, cashAccountID int64, amount decimal.Decimal, direction domain.BalanceDirection, userID string) (*domain.CashAccount, error) {
	args := m.Called(ctx, cashAccountID, amount, direction, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}
func (m *MockCashBalanceService) GetCashAccount(ctx context.Context, cashAccountID int64) (*domain.CashAccount, error) {
	args := m.Called(ctx, cashAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashAccount), args.Error(1)
}
func (m *MockCashBalanceService) ListCashAccounts(ctx context.Context) ([]domain.CashAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashAccount), args.Error(1)
}

var _ portssvc.CashBalanceSvc = (*MockCashBalanceService)(nil)

// --- Mock AutoJournalSvc ---
type MockAutoJournalService struct {
	mock.Mock
}

func (m *MockAutoJournalService) journal(args mock.Arguments) (*domain.Journal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockAutoJournalService) Post(ctx context.Context, event domain.BusinessEvent, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, event, userID))
}
func (m *MockAutoJournalService) PostWithin(ctx context.Context, event domain.BusinessEvent, userID string, apply func(ctx context.Context) error) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, event, userID, apply))
}
func (m *MockAutoJournalService) OnSavingApproved(ctx context.Context, e domain.SavingApproved, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, e, userID))
}
func (m *MockAutoJournalService) OnLoanDisbursed(ctx context.Context, e domain.LoanDisbursed, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, e, userID))
}
func (m *MockAutoJournalService) OnInstallmentPaid(ctx context.Context, e domain.InstallmentPaid, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, e, userID))
}
func (m *MockAutoJournalService) OnCashTransferApproved(ctx context.Context, e domain.CashTransferApproved, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, e, userID))
}
func (m *MockAutoJournalService) OnSalaryDeductionProcessed(ctx context.Context, e domain.SalaryDeductionProcessed, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, e, userID))
}
func (m *MockAutoJournalService) OnServiceAllowanceProcessed(ctx context.Context, e domain.ServiceAllowanceProcessed, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, e, userID))
}
func (m *MockAutoJournalService) OnEarlySettlement(ctx context.Context, e domain.EarlySettlement, userID string) (*domain.Journal, error) {
	return m.journal(m.Called(ctx, e, userID))
}

var _ portssvc.AutoJournalSvc = (*MockAutoJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, asOf time.Time, periodID *int64) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, asOf, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}
func (m *MockReportingService) GeneralLedger(ctx context.Context, startDate, endDate time.Time, accountID *int64) (*domain.GeneralLedgerReport, error) {
	args := m.Called(ctx, startDate, endDate, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralLedgerReport), args.Error(1)
}
func (m *MockReportingService) IncomeStatement(ctx context.Context, startDate, endDate time.Time, compare bool) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, startDate, endDate, compare)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}
func (m *MockReportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}
func (m *MockReportingService) CashFlow(ctx context.Context, startDate, endDate time.Time) (*domain.CashFlowReport, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashFlowReport), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
