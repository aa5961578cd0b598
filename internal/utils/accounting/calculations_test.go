package accounting

import (
	"testing"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func TestCalculateTotals(t *testing.T) {
	debit, credit := CalculateTotals([]domain.JournalDetail{
		{Debit: d("100.50")},
		{Credit: d("60.25")},
		{Credit: d("40.25")},
	})
	assert.True(t, debit.Equal(d("100.50")))
	assert.True(t, credit.Equal(d("100.50")))

	debit, credit = CalculateTotals(nil)
	assert.True(t, debit.IsZero())
	assert.True(t, credit.IsZero())
}

func TestValidateJournalLines(t *testing.T) {
	tests := []struct {
		name    string
		lines   []domain.JournalLineDraft
		wantErr error
	}{
		{
			name: "balanced",
			lines: []domain.JournalLineDraft{
				{ChartOfAccountID: 1, Debit: d("500000")},
				{ChartOfAccountID: 2, Credit: d("500000")},
			},
		},
		{
			name:    "single line",
			lines:   []domain.JournalLineDraft{{ChartOfAccountID: 1, Debit: d("1")}},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "both sides on one line",
			lines: []domain.JournalLineDraft{
				{ChartOfAccountID: 1, Debit: d("1"), Credit: d("1")},
				{ChartOfAccountID: 2, Credit: d("1")},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "empty line",
			lines: []domain.JournalLineDraft{
				{ChartOfAccountID: 1},
				{ChartOfAccountID: 2, Credit: d("1")},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "negative",
			lines: []domain.JournalLineDraft{
				{ChartOfAccountID: 1, Debit: d("-1")},
				{ChartOfAccountID: 2, Credit: d("-1")},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "unbalanced",
			lines: []domain.JournalLineDraft{
				{ChartOfAccountID: 1, Debit: d("100")},
				{ChartOfAccountID: 2, Credit: d("99.99")},
			},
			wantErr: apperrors.ErrUnbalanced,
		},
		{
			name: "fraction of a cent",
			lines: []domain.JournalLineDraft{
				{ChartOfAccountID: 1, Debit: d("0.01")},
				{ChartOfAccountID: 2, Credit: d("0.005")},
				{ChartOfAccountID: 3, Credit: d("0.005")},
			},
			wantErr: apperrors.ErrValidation,
		},
		{
			name: "whole cents",
			lines: []domain.JournalLineDraft{
				{ChartOfAccountID: 1, Debit: d("0.03")},
				{ChartOfAccountID: 2, Credit: d("0.01")},
				{ChartOfAccountID: 3, Credit: d("0.020")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit, err := ValidateJournalLines(tt.lines)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, debit.Equal(credit))
		})
	}
}

func TestSplitLoanPayment(t *testing.T) {
	p, i, err := SplitLoanPayment(d("300000"), nil, nil)
	require.NoError(t, err)
	assert.True(t, p.Equal(d("300000")))
	assert.True(t, i.IsZero())

	p, i, err = SplitLoanPayment(d("300000"), dp("250000"), nil)
	require.NoError(t, err)
	assert.True(t, p.Equal(d("250000")))
	assert.True(t, i.Equal(d("50000")))

	p, i, err = SplitLoanPayment(d("300000"), nil, dp("20000"))
	require.NoError(t, err)
	assert.True(t, p.Equal(d("280000")))
	assert.True(t, i.Equal(d("20000")))

	_, _, err = SplitLoanPayment(d("300000"), dp("250000"), dp("10000"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = SplitLoanPayment(d("300000"), dp("400000"), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = SplitLoanPayment(d("0.01"), dp("0.005"), dp("0.005"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, _, err = SplitLoanPayment(d("100.005"), nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCheckCents(t *testing.T) {
	assert.NoError(t, CheckCents("amount", d("12.34")))
	assert.NoError(t, CheckCents("amount", d("12.300")))
	assert.NoError(t, CheckCents("amount", d("5")))
	assert.ErrorIs(t, CheckCents("amount", d("12.345")), apperrors.ErrValidation)
}

func TestPercentageChangeAndTrend(t *testing.T) {
	assert.True(t, PercentageChange(d("150"), d("100")).Equal(d("50")))
	assert.True(t, PercentageChange(d("50"), d("-100")).Equal(d("150")))
	assert.True(t, PercentageChange(d("10"), decimal.Zero).Equal(d("100")))
	assert.True(t, PercentageChange(decimal.Zero, decimal.Zero).IsZero())

	assert.Equal(t, domain.TrendUp, TrendOf(d("1")))
	assert.Equal(t, domain.TrendDown, TrendOf(d("-0.01")))
	assert.Equal(t, domain.TrendFlat, TrendOf(decimal.Zero))
}

func TestOperatingMarginAndNormalBalance(t *testing.T) {
	assert.True(t, OperatingMargin(d("25"), d("75")).Equal(d("33.33")))
	assert.True(t, OperatingMargin(d("25"), decimal.Zero).IsZero())

	assert.True(t, NormalBalance(true, d("100"), d("30")).Equal(d("70")))
	assert.True(t, NormalBalance(false, d("100"), d("30")).Equal(d("-70")))
}
