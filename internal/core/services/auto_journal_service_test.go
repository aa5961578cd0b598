package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/core/services"
	"github.com/SscSPs/coop_ledger/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AutoJournalServiceTestSuite struct {
	ledgerSuite
}

func TestAutoJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AutoJournalServiceTestSuite))
}

func (s *AutoJournalServiceTestSuite) assertSpecial(j *domain.Journal, source domain.SourceModule, ref domain.ReferenceType, refID int64) {
	s.Require().NotNil(j)
	s.Equal(domain.JournalSpecial, j.JournalType)
	s.True(j.IsAutoGenerated)
	s.False(j.IsEditable)
	s.Equal(source, j.SourceModule)
	s.Require().NotNil(j.Reference)
	s.Equal(ref, j.Reference.Type)
	s.Equal(refID, j.Reference.ID)
	s.True(j.TotalDebit.Equal(j.TotalCredit), "journal must balance")
	s.Contains(j.JournalNumber, "JK-")
}

func (s *AutoJournalServiceTestSuite) TestSavingApproved() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	j, err := s.svc.AutoJournal.OnSavingApproved(s.ctx, domain.SavingApproved{
		SavingID:        11,
		CashAccountID:   kas.ID,
		SavingsType:     domain.SavingsVoluntary,
		Amount:          dec(500000),
		TransactionDate: day(2025, 1, 10),
	}, testUser)
	s.Require().NoError(err)

	s.assertSpecial(j, domain.SourceSavings, domain.RefSaving, 11)
	s.Len(j.Details, 2)
	s.True(s.lineFor(j, domain.CoaKasUmum).Debit.Equal(dec(500000)))
	s.True(s.lineFor(j, domain.CoaSavingsVoluntary).Credit.Equal(dec(500000)))
	s.True(s.balanceOf(kas.ID).Equal(dec(500000)))
}

func (s *AutoJournalServiceTestSuite) TestSavingApproved_BankAccountPostsToBankCode() {
	bank := s.cashAccount(domain.CashAccountTypeV)

	j, err := s.svc.AutoJournal.OnSavingApproved(s.ctx, domain.SavingApproved{
		SavingID: 12, CashAccountID: bank.ID, SavingsType: domain.SavingsPrincipal,
		Amount: dec(100000), TransactionDate: day(2025, 1, 10),
	}, testUser)
	s.Require().NoError(err)
	s.True(s.lineFor(j, domain.CoaKasV).Debit.Equal(dec(100000)))
	s.True(s.lineFor(j, domain.CoaSavingsPrincipal).Credit.Equal(dec(100000)))
}

func (s *AutoJournalServiceTestSuite) TestLoanDisbursed() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	j, err := s.svc.AutoJournal.OnLoanDisbursed(s.ctx, domain.LoanDisbursed{
		LoanID:          7,
		CashAccountID:   kas.ID,
		Principal:       dec(6000000),
		TransactionDate: day(2025, 1, 12),
	}, testUser)
	s.Require().NoError(err)

	s.assertSpecial(j, domain.SourceLoans, domain.RefLoan, 7)
	s.Len(j.Details, 2)
	s.True(s.lineFor(j, domain.CoaLoanReceivable).Debit.Equal(dec(6000000)))
	s.True(s.lineFor(j, domain.CoaKasUmum).Credit.Equal(dec(6000000)))
	s.True(s.balanceOf(kas.ID).Equal(dec(-6000000)))
}

func (s *AutoJournalServiceTestSuite) TestInstallmentPaid_WithoutInterestHasTwoLines() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	j, err := s.svc.AutoJournal.OnInstallmentPaid(s.ctx, domain.InstallmentPaid{
		InstallmentID:   3,
		LoanID:          7,
		CashAccountID:   kas.ID,
		PrincipalAmount: dec(500000),
		InterestAmount:  decimal.Zero,
		TransactionDate: day(2025, 2, 1),
	}, testUser)
	s.Require().NoError(err)

	s.assertSpecial(j, domain.SourceInstallments, domain.RefInstallment, 3)
	s.Len(j.Details, 2)
	s.True(s.lineFor(j, domain.CoaKasUmum).Debit.Equal(dec(500000)))
	s.True(s.lineFor(j, domain.CoaLoanReceivable).Credit.Equal(dec(500000)))
}

func (s *AutoJournalServiceTestSuite) TestInstallmentPaid_WithInterestHasThreeLines() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	j, err := s.svc.AutoJournal.OnInstallmentPaid(s.ctx, domain.InstallmentPaid{
		InstallmentID: 4, LoanID: 7, CashAccountID: kas.ID,
		PrincipalAmount: dec(500000), InterestAmount: dec(25000), TransactionDate: day(2025, 2, 1),
	}, testUser)
	s.Require().NoError(err)

	s.Len(j.Details, 3)
	cash := s.lineFor(j, domain.CoaKasUmum).Debit
	principal := s.lineFor(j, domain.CoaLoanReceivable).Credit
	interest := s.lineFor(j, domain.CoaInterestIncome).Credit
	s.True(cash.Equal(dec(525000)))
	s.True(principal.Add(interest).Equal(cash))
	s.True(s.balanceOf(kas.ID).Equal(dec(525000)))
}

func (s *AutoJournalServiceTestSuite) TestCashTransferApproved() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	bank := s.cashAccount(domain.CashAccountTypeV)

	j, err := s.svc.AutoJournal.OnCashTransferApproved(s.ctx, domain.CashTransferApproved{
		TransferID:               5,
		SourceCashAccountID:      kas.ID,
		DestinationCashAccountID: bank.ID,
		Amount:                   dec(200000),
		TransactionDate:          day(2025, 2, 3),
	}, testUser)
	s.Require().NoError(err)

	s.assertSpecial(j, domain.SourceCashTransfers, domain.RefCashTransfer, 5)
	s.True(s.lineFor(j, domain.CoaKasV).Debit.Equal(dec(200000)))
	s.True(s.lineFor(j, domain.CoaKasUmum).Credit.Equal(dec(200000)))
	s.True(s.balanceOf(kas.ID).Equal(dec(-200000)))
	s.True(s.balanceOf(bank.ID).Equal(dec(200000)))
}

func (s *AutoJournalServiceTestSuite) TestInstallmentPaid_FractionOfACentIsRejected() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	halfCent := decimal.RequireFromString("0.005")

	j, err := s.svc.AutoJournal.OnInstallmentPaid(s.ctx, domain.InstallmentPaid{
		InstallmentID: 8, LoanID: 7, CashAccountID: kas.ID,
		PrincipalAmount: halfCent, InterestAmount: halfCent, TransactionDate: day(2025, 2, 1),
	}, testUser)

	s.Nil(j)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.True(s.balanceOf(kas.ID).IsZero())
	s.Equal(0, s.journalCount())
}

func (s *AutoJournalServiceTestSuite) TestSalaryDeduction_FractionalSplitIsRejected() {
	halfCent := decimal.RequireFromString("0.005")

	_, err := s.svc.AutoJournal.OnSalaryDeductionProcessed(s.ctx, domain.SalaryDeductionProcessed{
		SalaryDeductionID: 9,
		LoanDeduction:     decimal.RequireFromString("0.01"),
		PrincipalPortion:  &halfCent,
		InterestPortion:   &halfCent,
		TransactionDate:   day(2025, 2, 25),
	}, testUser)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(0, s.journalCount())
}

func (s *AutoJournalServiceTestSuite) TestCashTransferApproved_LocksAccountsInIDOrder() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	bank := s.cashAccount(domain.CashAccountTypeV)
	s.Require().Less(kas.ID, bank.ID)

	cash := &recordingCashBalance{CashBalanceSvc: s.svc.CashBalance}
	autoJournal := services.NewAutoJournalService(s.store, s.store, s.svc.ChartOfAccounts, cash, s.svc.Journal)

	// Both directions must touch the lower ID first.
	for i, tr := range []struct{ from, to int64 }{{bank.ID, kas.ID}, {kas.ID, bank.ID}} {
		cash.ids = nil
		_, err := autoJournal.OnCashTransferApproved(s.ctx, domain.CashTransferApproved{
			TransferID: int64(20 + i), SourceCashAccountID: tr.from, DestinationCashAccountID: tr.to,
			Amount: dec(1000), TransactionDate: day(2025, 2, 3),
		}, testUser)
		s.Require().NoError(err)
		s.Equal([]int64{kas.ID, bank.ID}, cash.ids)
	}
	s.True(s.balanceOf(kas.ID).IsZero())
	s.True(s.balanceOf(bank.ID).IsZero())
}

func (s *AutoJournalServiceTestSuite) TestCashTransferApproved_SameAccountIsRejected() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	_, err := s.svc.AutoJournal.OnCashTransferApproved(s.ctx, domain.CashTransferApproved{
		TransferID: 6, SourceCashAccountID: kas.ID, DestinationCashAccountID: kas.ID,
		Amount: dec(1), TransactionDate: day(2025, 2, 3),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AutoJournalServiceTestSuite) TestSalaryDeduction_DefaultsLoanToPrincipal() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	j, err := s.svc.AutoJournal.OnSalaryDeductionProcessed(s.ctx, domain.SalaryDeductionProcessed{
		SalaryDeductionID: 9,
		LoanDeduction:     dec(300000),
		SavingsDeduction:  dec(50000),
		OtherDeductions:   decimal.Zero,
		TransactionDate:   day(2025, 2, 25),
	}, testUser)
	s.Require().NoError(err)

	s.assertSpecial(j, domain.SourceSalaryDeductions, domain.RefSalaryDeduction, 9)
	s.Len(j.Details, 3)
	s.True(s.lineFor(j, domain.CoaKasUmum).Debit.Equal(dec(350000)))
	s.True(s.lineFor(j, domain.CoaLoanReceivable).Credit.Equal(dec(300000)))
	s.True(s.lineFor(j, domain.CoaSavingsMandatory).Credit.Equal(dec(50000)))
	s.True(s.balanceOf(kas.ID).Equal(dec(350000)))
}

func (s *AutoJournalServiceTestSuite) TestSalaryDeduction_WithSplitAndOtherIncome() {
	interest := dec(20000)

	j, err := s.svc.AutoJournal.OnSalaryDeductionProcessed(s.ctx, domain.SalaryDeductionProcessed{
		SalaryDeductionID: 10,
		LoanDeduction:     dec(300000),
		InterestPortion:   &interest,
		SavingsDeduction:  dec(50000),
		OtherDeductions:   dec(5000),
		TransactionDate:   day(2025, 2, 25),
	}, testUser)
	s.Require().NoError(err)

	s.Len(j.Details, 5)
	s.True(s.lineFor(j, domain.CoaKasUmum).Debit.Equal(dec(355000)))
	s.True(s.lineFor(j, domain.CoaLoanReceivable).Credit.Equal(dec(280000)))
	s.True(s.lineFor(j, domain.CoaInterestIncome).Credit.Equal(dec(20000)))
	s.True(s.lineFor(j, domain.CoaOtherIncome).Credit.Equal(dec(5000)))
}

func (s *AutoJournalServiceTestSuite) TestSalaryDeduction_MismatchedSplitIsRejected() {
	principal, interest := dec(100), dec(100)

	_, err := s.svc.AutoJournal.OnSalaryDeductionProcessed(s.ctx, domain.SalaryDeductionProcessed{
		SalaryDeductionID: 11, LoanDeduction: dec(300),
		PrincipalPortion: &principal, InterestPortion: &interest,
		TransactionDate: day(2025, 2, 25),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(0, s.journalCount())
}

func (s *AutoJournalServiceTestSuite) TestSalaryDeduction_NothingDeductedPostsNothing() {
	j, err := s.svc.AutoJournal.OnSalaryDeductionProcessed(s.ctx, domain.SalaryDeductionProcessed{
		SalaryDeductionID: 12,
		TransactionDate:   day(2025, 2, 25),
	}, testUser)
	s.NoError(err)
	s.Nil(j)
	s.Equal(0, s.journalCount())
}

func (s *AutoJournalServiceTestSuite) TestServiceAllowance() {
	interest := dec(15000)

	j, err := s.svc.AutoJournal.OnServiceAllowanceProcessed(s.ctx, domain.ServiceAllowanceProcessed{
		ServiceAllowanceID: 2,
		InstallmentPaid:    dec(115000),
		InterestPortion:    &interest,
		TransactionDate:    day(2025, 3, 1),
	}, testUser)
	s.Require().NoError(err)

	s.assertSpecial(j, domain.SourceServiceAllowances, domain.RefServiceAllowance, 2)
	s.True(s.lineFor(j, domain.CoaKasUmum).Debit.Equal(dec(115000)))
	s.True(s.lineFor(j, domain.CoaLoanReceivable).Credit.Equal(dec(100000)))
	s.True(s.lineFor(j, domain.CoaInterestIncome).Credit.Equal(dec(15000)))

	none, err := s.svc.AutoJournal.OnServiceAllowanceProcessed(s.ctx, domain.ServiceAllowanceProcessed{
		ServiceAllowanceID: 3, TransactionDate: day(2025, 3, 1),
	}, testUser)
	s.NoError(err)
	s.Nil(none)
}

func (s *AutoJournalServiceTestSuite) TestEarlySettlement() {
	bank := s.cashAccount(domain.CashAccountTypeV)

	j, err := s.svc.AutoJournal.OnEarlySettlement(s.ctx, domain.EarlySettlement{
		LoanID:           7,
		CashAccountID:    bank.ID,
		SettlementAmount: dec(2500000),
		TransactionDate:  day(2025, 4, 1),
	}, testUser)
	s.Require().NoError(err)

	s.assertSpecial(j, domain.SourceLoans, domain.RefLoan, 7)
	s.Len(j.Details, 2)
	s.True(s.lineFor(j, domain.CoaKasV).Debit.Equal(dec(2500000)))
	s.True(s.lineFor(j, domain.CoaLoanReceivable).Credit.Equal(dec(2500000)))
	s.True(s.balanceOf(bank.ID).Equal(dec(2500000)))
}

func (s *AutoJournalServiceTestSuite) TestMissingCoaAbortsPostingAndBalance() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	s.store.RemoveChartOfAccount(domain.CoaSavingsVoluntary)

	j, err := s.svc.AutoJournal.OnSavingApproved(s.ctx, domain.SavingApproved{
		SavingID: 1, CashAccountID: kas.ID, SavingsType: domain.SavingsVoluntary,
		Amount: dec(500000), TransactionDate: day(2025, 1, 10),
	}, testUser)

	s.Nil(j)
	s.ErrorIs(err, apperrors.ErrConfiguration)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.True(s.balanceOf(kas.ID).IsZero())
	s.Equal(0, s.journalCount())
}

func (s *AutoJournalServiceTestSuite) TestInactiveCoaAbortsPosting() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	s.Require().NoError(s.store.SetChartOfAccountActive(domain.CoaLoanReceivable, false))

	_, err := s.svc.AutoJournal.OnLoanDisbursed(s.ctx, domain.LoanDisbursed{
		LoanID: 1, CashAccountID: kas.ID, Principal: dec(1000), TransactionDate: day(2025, 1, 10),
	}, testUser)

	s.ErrorIs(err, apperrors.ErrConfiguration)
	s.True(s.balanceOf(kas.ID).IsZero())
}

func (s *AutoJournalServiceTestSuite) TestUnknownSavingsTypeIsConfigurationError() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	_, err := s.svc.AutoJournal.OnSavingApproved(s.ctx, domain.SavingApproved{
		SavingID: 1, CashAccountID: kas.ID, SavingsType: "lottery",
		Amount: dec(1), TransactionDate: day(2025, 1, 10),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrConfiguration)
}

func (s *AutoJournalServiceTestSuite) TestInvalidEventIsRejected() {
	_, err := s.svc.AutoJournal.OnLoanDisbursed(s.ctx, domain.LoanDisbursed{
		LoanID: 1, CashAccountID: 1, Principal: dec(-5), TransactionDate: day(2025, 1, 10),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.AutoJournal.Post(s.ctx, nil, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AutoJournalServiceTestSuite) TestPostWithin_BusinessChangeFailureRollsBackEverything() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	applyErr := errors.New("saving already approved")

	j, err := s.svc.AutoJournal.PostWithin(s.ctx, domain.SavingApproved{
		SavingID: 1, CashAccountID: kas.ID, SavingsType: domain.SavingsMandatory,
		Amount: dec(1000), TransactionDate: day(2025, 1, 10),
	}, testUser, func(ctx context.Context) error {
		return applyErr
	})

	s.Nil(j)
	s.ErrorIs(err, applyErr)
	s.True(s.balanceOf(kas.ID).IsZero())
	s.Equal(0, s.journalCount())
}

func (s *AutoJournalServiceTestSuite) TestPostWithin_PostingFailureRollsBackBusinessChange() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	bank := s.cashAccount(domain.CashAccountTypeV)
	s.store.RemoveChartOfAccount(domain.CoaLoanReceivable)

	// apply stands in for the loan module marking the loan disbursed; here it moves bank cash.
	j, err := s.svc.AutoJournal.PostWithin(s.ctx, domain.LoanDisbursed{
		LoanID: 1, CashAccountID: kas.ID, Principal: dec(1000), TransactionDate: day(2025, 1, 10),
	}, testUser, func(ctx context.Context) error {
		_, err := s.svc.CashBalance.UpdateBalance(ctx, bank.ID, dec(42), domain.BalanceAdd, testUser)
		return err
	})

	s.Nil(j)
	s.ErrorIs(err, apperrors.ErrConfiguration)
	s.True(s.balanceOf(bank.ID).IsZero())
	s.True(s.balanceOf(kas.ID).IsZero())
}

func (s *AutoJournalServiceTestSuite) TestAutoJournalsAreNotEditable() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	j, err := s.svc.AutoJournal.OnSavingApproved(s.ctx, domain.SavingApproved{
		SavingID: 1, CashAccountID: kas.ID, SavingsType: domain.SavingsHoliday,
		Amount: dec(1000), TransactionDate: day(2025, 1, 10),
	}, testUser)
	s.Require().NoError(err)

	_, err = s.svc.Journal.UpdateJournal(s.ctx, j.JournalID, domain.JournalUpdate{
		Description:     "tamper",
		TransactionDate: day(2025, 1, 10),
		Lines:           []domain.JournalLineDraft{s.line(domain.CoaKasUmum, 1, 0), s.line(domain.CoaSavingsHoliday, 0, 1)},
	}, testUser)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

// recordingCashBalance remembers the order in which cash accounts were updated.
type recordingCashBalance struct {
	portssvc.CashBalanceSvc
	ids []int64
}

func (r *recordingCashBalance) UpdateBalance(ctx context.Context, cashAccountID int64, amount decimal.Decimal, direction domain.BalanceDirection, userID string) (*domain.CashAccount, error) {
	r.ids = append(r.ids, cashAccountID)
	return r.CashBalanceSvc.UpdateBalance(ctx, cashAccountID, amount, direction, userID)
}

type NoOverdraftTestSuite struct {
	ledgerSuite
}

func TestNoOverdraftTestSuite(t *testing.T) {
	s := new(NoOverdraftTestSuite)
	s.cfg = &config.Config{CashAllowOverdraft: false}
	suite.Run(t, s)
}

func (s *NoOverdraftTestSuite) TestLoanFromEmptyDrawerIsRejected() {
	kas := s.cashAccount(domain.CashAccountTypeI)

	_, err := s.svc.AutoJournal.OnLoanDisbursed(s.ctx, domain.LoanDisbursed{
		LoanID: 1, CashAccountID: kas.ID, Principal: dec(1000), TransactionDate: day(2025, 1, 10),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal(0, s.journalCount())
}

func (s *NoOverdraftTestSuite) TestLoanWithinBalanceIsPosted() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	_, err := s.svc.AutoJournal.OnSavingApproved(s.ctx, domain.SavingApproved{
		SavingID: 1, CashAccountID: kas.ID, SavingsType: domain.SavingsPrincipal,
		Amount: dec(5000), TransactionDate: day(2025, 1, 1),
	}, testUser)
	s.Require().NoError(err)

	_, err = s.svc.AutoJournal.OnLoanDisbursed(s.ctx, domain.LoanDisbursed{
		LoanID: 1, CashAccountID: kas.ID, Principal: dec(5000), TransactionDate: day(2025, 1, 10),
	}, testUser)
	s.Require().NoError(err)
	s.True(s.balanceOf(kas.ID).IsZero())
}
