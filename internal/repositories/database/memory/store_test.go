package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func journalOn(store *Store, d string, lines ...domain.JournalDetail) domain.Journal {
	return store.InsertJournalUnchecked(domain.Journal{
		JournalType:     domain.JournalGeneral,
		Description:     "test",
		TransactionDate: date(d),
		SourceModule:    domain.SourceManual,
		Details:         lines,
	})
}

func TestStore_DoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore()
	kas, err := store.FindActiveCashAccountByType(ctx, domain.CashAccountTypeI)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Do(ctx, func(ctx context.Context) error {
		require.NoError(t, store.UpdateCashAccountBalance(ctx, kas.ID, decimal.NewFromInt(100), "u1", time.Now()))
		_, err := store.NextJournalNumber(ctx, domain.JournalSpecial, date("2025-03-01"))
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	after, err := store.FindCashAccountByID(ctx, kas.ID)
	require.NoError(t, err)
	assert.True(t, after.CurrentBalance.IsZero())

	number, err := store.NextJournalNumber(ctx, domain.JournalSpecial, date("2025-03-01"))
	require.NoError(t, err)
	assert.Equal(t, "JK-202503-00001", number)
}

func TestStore_NestedDoJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore()

	err := store.Do(ctx, func(ctx context.Context) error {
		return store.Do(ctx, func(ctx context.Context) error {
			_, err := store.FindCashAccountByIDForUpdate(ctx, 1)
			return err
		})
	})
	assert.NoError(t, err)

	_, err = store.FindCashAccountByIDForUpdate(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrInternal)
}

func TestStore_JournalNumbersRestartPerMonthAndType(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	n1, _ := store.NextJournalNumber(ctx, domain.JournalGeneral, date("2025-01-31"))
	n2, _ := store.NextJournalNumber(ctx, domain.JournalGeneral, date("2025-01-02"))
	n3, _ := store.NextJournalNumber(ctx, domain.JournalGeneral, date("2025-02-01"))
	n4, _ := store.NextJournalNumber(ctx, domain.JournalAdjustment, date("2025-01-05"))

	assert.Equal(t, "JU-202501-00001", n1)
	assert.Equal(t, "JU-202501-00002", n2)
	assert.Equal(t, "JU-202502-00001", n3)
	assert.Equal(t, "JP-202501-00001", n4)
}

func TestStore_SaveJournalRejectsDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	j := &domain.Journal{JournalNumber: "JU-202501-00001", TransactionDate: date("2025-01-01")}
	require.NoError(t, store.SaveJournal(ctx, j))
	assert.Equal(t, int64(1), j.JournalID)

	err := store.SaveJournal(ctx, &domain.Journal{JournalNumber: "JU-202501-00001"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestStore_ListJournalsPaginatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	journalOn(store, "2025-01-01")
	journalOn(store, "2025-01-03")
	journalOn(store, "2025-01-03")
	journalOn(store, "2025-01-02")

	page, next, err := store.ListJournals(ctx, domain.JournalFilter{}, 2, nil)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.NotNil(t, next)
	assert.Equal(t, int64(3), page[0].JournalID)
	assert.Equal(t, int64(2), page[1].JournalID)

	page, next, err = store.ListJournals(ctx, domain.JournalFilter{}, 2, next)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Nil(t, next)
	assert.Equal(t, int64(4), page[0].JournalID)
	assert.Equal(t, int64(1), page[1].JournalID)

	bad := "%%%"
	_, _, err = store.ListJournals(ctx, domain.JournalFilter{}, 2, &bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestStore_LockJournalOnlyOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	j := journalOn(store, "2025-01-01")

	require.NoError(t, store.LockJournal(ctx, j.JournalID, "u1", time.Now()))
	err := store.LockJournal(ctx, j.JournalID, "u1", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestStore_SumByAccountFiltersCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	store := NewSeededStore()
	kas, _ := store.FindByCode(ctx, domain.CoaKasUmum)
	voluntary, _ := store.FindByCode(ctx, domain.CoaSavingsVoluntary)

	journalOn(store, "2025-01-10",
		domain.JournalDetail{ChartOfAccountID: kas.ID, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
		domain.JournalDetail{ChartOfAccountID: voluntary.ID, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
	)
	journalOn(store, "2025-02-10",
		domain.JournalDetail{ChartOfAccountID: kas.ID, Debit: decimal.NewFromInt(200), Credit: decimal.Zero},
		domain.JournalDetail{ChartOfAccountID: voluntary.ID, Debit: decimal.Zero, Credit: decimal.NewFromInt(200)},
	)

	to := date("2025-01-31")
	totals, err := store.SumByAccount(ctx, domain.LedgerFilter{To: &to})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, domain.CoaKasUmum, totals[0].Account.Code)
	assert.True(t, totals[0].Debit.Equal(decimal.NewFromInt(500)))

	cash, err := store.SumByAccount(ctx, domain.LedgerFilter{AccountTypes: []string{"cash", "BANK"}})
	require.NoError(t, err)
	require.Len(t, cash, 1)
	assert.True(t, cash[0].Debit.Equal(decimal.NewFromInt(700)))
}
