package services_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	ledgerSuite
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) TestCreateJournal_Success() {
	j := s.manualJournal(day(2025, 1, 15),
		s.line(domain.CoaKasUmum, 1000, 0),
		s.line(domain.CoaPrincipalEquity, 0, 1000),
	)

	s.Equal("JU-202501-00001", j.JournalNumber)
	s.True(j.TotalDebit.Equal(dec(1000)))
	s.True(j.TotalDebit.Equal(j.TotalCredit))
	s.Len(j.Details, 2)
	s.Equal(domain.CoaKasUmum, j.Details[0].AccountCode)
	s.Equal("manual entry", j.Details[0].Description)
	s.Equal(testUser, j.CreatedBy)

	stored, err := s.svc.Journal.GetJournalByID(s.ctx, j.JournalID)
	s.Require().NoError(err)
	s.Equal(j.JournalNumber, stored.JournalNumber)
	s.Len(stored.Details, 2)
}

func (s *JournalServiceTestSuite) TestCreateJournal_NumbersPerTypeAndMonth() {
	s.manualJournal(day(2025, 1, 1), s.line(domain.CoaKasUmum, 1, 0), s.line(domain.CoaPrincipalEquity, 0, 1))
	second := s.manualJournal(day(2025, 1, 31), s.line(domain.CoaKasUmum, 1, 0), s.line(domain.CoaPrincipalEquity, 0, 1))
	february := s.manualJournal(day(2025, 2, 1), s.line(domain.CoaKasUmum, 1, 0), s.line(domain.CoaPrincipalEquity, 0, 1))

	s.Equal("JU-202501-00002", second.JournalNumber)
	s.Equal("JU-202502-00001", february.JournalNumber)
}

func (s *JournalServiceTestSuite) TestCreateJournal_UnbalancedIsRejected() {
	_, err := s.svc.Journal.CreateJournal(s.ctx, domain.JournalDraft{
		JournalType:     domain.JournalGeneral,
		Description:     "bad",
		TransactionDate: day(2025, 1, 15),
		Lines: []domain.JournalLineDraft{
			s.line(domain.CoaKasUmum, 1000, 0),
			s.line(domain.CoaPrincipalEquity, 0, 900),
		},
	}, testUser)

	s.ErrorIs(err, apperrors.ErrUnbalanced)
	s.Equal(0, s.journalCount())
}

func (s *JournalServiceTestSuite) TestCreateJournal_RejectsBadInput() {
	valid := []domain.JournalLineDraft{s.line(domain.CoaKasUmum, 10, 0), s.line(domain.CoaPrincipalEquity, 0, 10)}

	tests := []struct {
		name  string
		draft domain.JournalDraft
	}{
		{"missing description", domain.JournalDraft{JournalType: domain.JournalGeneral, TransactionDate: day(2025, 1, 1), Lines: valid}},
		{"unknown type", domain.JournalDraft{JournalType: "weird", Description: "x", TransactionDate: day(2025, 1, 1), Lines: valid}},
		{"missing date", domain.JournalDraft{JournalType: domain.JournalGeneral, Description: "x", Lines: valid}},
		{"single line", domain.JournalDraft{JournalType: domain.JournalGeneral, Description: "x", TransactionDate: day(2025, 1, 1), Lines: valid[:1]}},
		{"unknown account", domain.JournalDraft{JournalType: domain.JournalGeneral, Description: "x", TransactionDate: day(2025, 1, 1), Lines: []domain.JournalLineDraft{
			valid[0], {ChartOfAccountID: 9999, Credit: dec(10)},
		}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Journal.CreateJournal(s.ctx, tt.draft, testUser)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.Equal(0, s.journalCount())
}

func (s *JournalServiceTestSuite) TestCreateJournal_InactiveAccountIsRejected() {
	s.Require().NoError(s.store.SetChartOfAccountActive(domain.CoaPrincipalEquity, false))

	_, err := s.svc.Journal.CreateJournal(s.ctx, domain.JournalDraft{
		JournalType:     domain.JournalGeneral,
		Description:     "x",
		TransactionDate: day(2025, 1, 1),
		Lines:           []domain.JournalLineDraft{s.line(domain.CoaKasUmum, 10, 0), s.line(domain.CoaPrincipalEquity, 0, 10)},
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestUpdateJournal_ReplacesLines() {
	j := s.manualJournal(day(2025, 1, 15), s.line(domain.CoaKasUmum, 1000, 0), s.line(domain.CoaPrincipalEquity, 0, 1000))

	updated, err := s.svc.Journal.UpdateJournal(s.ctx, j.JournalID, domain.JournalUpdate{
		Description:     "corrected",
		TransactionDate: day(2025, 1, 16),
		Lines: []domain.JournalLineDraft{
			s.line(domain.CoaOperationalExpense, 250, 0),
			s.line(domain.CoaKasUmum, 0, 200),
			s.line(domain.CoaOtherIncome, 0, 50),
		},
	}, "user-2")
	s.Require().NoError(err)

	s.Equal(j.JournalNumber, updated.JournalNumber)
	s.Equal("corrected", updated.Description)
	s.Len(updated.Details, 3)
	s.True(updated.TotalDebit.Equal(dec(250)))
	s.True(updated.TotalCredit.Equal(dec(250)))
	s.Equal("user-2", updated.LastUpdatedBy)
}

func (s *JournalServiceTestSuite) TestUpdateJournal_UnbalancedLeavesJournalUntouched() {
	j := s.manualJournal(day(2025, 1, 15), s.line(domain.CoaKasUmum, 1000, 0), s.line(domain.CoaPrincipalEquity, 0, 1000))

	_, err := s.svc.Journal.UpdateJournal(s.ctx, j.JournalID, domain.JournalUpdate{
		Description:     "broken",
		TransactionDate: day(2025, 1, 15),
		Lines:           []domain.JournalLineDraft{s.line(domain.CoaKasUmum, 10, 0), s.line(domain.CoaPrincipalEquity, 0, 5)},
	}, testUser)
	s.ErrorIs(err, apperrors.ErrUnbalanced)

	stored, err := s.svc.Journal.GetJournalByID(s.ctx, j.JournalID)
	s.Require().NoError(err)
	s.Equal("manual entry", stored.Description)
	s.True(stored.TotalDebit.Equal(dec(1000)))
}

func (s *JournalServiceTestSuite) TestLockedJournalCannotBeChanged() {
	j := s.manualJournal(day(2025, 1, 15), s.line(domain.CoaKasUmum, 1000, 0), s.line(domain.CoaPrincipalEquity, 0, 1000))

	locked, err := s.svc.Journal.LockJournal(s.ctx, j.JournalID, testUser)
	s.Require().NoError(err)
	s.True(locked.IsLocked)
	s.Require().NotNil(locked.LockedBy)
	s.Equal(testUser, *locked.LockedBy)

	_, err = s.svc.Journal.UpdateJournal(s.ctx, j.JournalID, domain.JournalUpdate{
		Description:     "nope",
		TransactionDate: day(2025, 1, 15),
		Lines:           []domain.JournalLineDraft{s.line(domain.CoaKasUmum, 5, 0), s.line(domain.CoaPrincipalEquity, 0, 5)},
	}, testUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	err = s.svc.Journal.DeleteJournal(s.ctx, j.JournalID, testUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.Journal.LockJournal(s.ctx, j.JournalID, testUser)
	s.ErrorIs(err, apperrors.ErrConflict)

	stored, err := s.svc.Journal.GetJournalByID(s.ctx, j.JournalID)
	s.Require().NoError(err)
	s.Equal("manual entry", stored.Description)
	s.True(stored.TotalDebit.Equal(dec(1000)))
}

func (s *JournalServiceTestSuite) TestDeleteJournal() {
	j := s.manualJournal(day(2025, 1, 15), s.line(domain.CoaKasUmum, 1000, 0), s.line(domain.CoaPrincipalEquity, 0, 1000))

	s.Require().NoError(s.svc.Journal.DeleteJournal(s.ctx, j.JournalID, testUser))

	_, err := s.svc.Journal.GetJournalByID(s.ctx, j.JournalID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestDeleteJournal_SpecialAlwaysForbidden() {
	kas := s.cashAccount(domain.CashAccountTypeI)
	j, err := s.svc.AutoJournal.OnSavingApproved(s.ctx, domain.SavingApproved{
		SavingID: 1, CashAccountID: kas.ID, SavingsType: domain.SavingsVoluntary,
		Amount: dec(100), TransactionDate: day(2025, 1, 1),
	}, testUser)
	s.Require().NoError(err)

	err = s.svc.Journal.DeleteJournal(s.ctx, j.JournalID, testUser)
	s.ErrorIs(err, apperrors.ErrForbidden)

	_, err = s.svc.Journal.LockJournal(s.ctx, j.JournalID, testUser)
	s.Require().NoError(err)
	err = s.svc.Journal.DeleteJournal(s.ctx, j.JournalID, testUser)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.Equal(1, s.journalCount())
}

func (s *JournalServiceTestSuite) TestConcurrentCreationNeverSharesANumber() {
	const workers = 25
	lines := []domain.JournalLineDraft{s.line(domain.CoaKasUmum, 10, 0), s.line(domain.CoaPrincipalEquity, 0, 10)}

	var wg sync.WaitGroup
	numbers := make(chan string, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			j, err := s.svc.Journal.CreateJournal(s.ctx, domain.JournalDraft{
				JournalType:     domain.JournalGeneral,
				Description:     fmt.Sprintf("concurrent %d", i),
				TransactionDate: day(2025, 3, 10),
				Lines:           lines,
			}, testUser)
			if err != nil {
				errs <- err
				return
			}
			numbers <- j.JournalNumber
		}(i)
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		s.NoError(err)
	}
	seen := make(map[string]bool)
	for n := range numbers {
		s.False(seen[n], "duplicate journal number %s", n)
		seen[n] = true
	}
	s.Len(seen, workers)
	s.True(seen[fmt.Sprintf("JU-202503-%05d", workers)])
}

func (s *JournalServiceTestSuite) TestListJournals_Paginates() {
	for i := 1; i <= 3; i++ {
		s.manualJournal(day(2025, 1, i), s.line(domain.CoaKasUmum, 10, 0), s.line(domain.CoaPrincipalEquity, 0, 10))
	}

	first, err := s.svc.Journal.ListJournals(s.ctx, dto.ListJournalsParams{Limit: 2})
	s.Require().NoError(err)
	s.Len(first.Journals, 2)
	s.Require().NotNil(first.NextToken)
	s.Equal("2025-01-03", first.Journals[0].TransactionDate)

	second, err := s.svc.Journal.ListJournals(s.ctx, dto.ListJournalsParams{Limit: 2, NextToken: first.NextToken})
	s.Require().NoError(err)
	s.Len(second.Journals, 1)
	s.Nil(second.NextToken)
	s.Equal("2025-01-01", second.Journals[0].TransactionDate)

	filtered, err := s.svc.Journal.ListJournals(s.ctx, dto.ListJournalsParams{JournalType: string(domain.JournalSpecial)})
	s.Require().NoError(err)
	s.Empty(filtered.Journals)
}
