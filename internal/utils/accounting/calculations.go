package accounting

import (
	"fmt"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the scale of every stored amount.
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// IsWholeCents reports whether amount is stored without rounding.
func IsWholeCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(MoneyPlaces))
}

// CheckCents rejects an amount with more than two decimal places.
func CheckCents(name string, amount decimal.Decimal) error {
	if !IsWholeCents(amount) {
		return fmt.Errorf("%w: %s %s has more than %d decimal places", apperrors.ErrValidation, name, amount.String(), MoneyPlaces)
	}
	return nil
}

// CalculateTotals sums the debit and credit columns of a journal's lines.
// Call it after any line mutation and before persisting the header totals.
func CalculateTotals(details []domain.JournalDetail) (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero
	for _, d := range details {
		debit = debit.Add(d.Debit)
		credit = credit.Add(d.Credit)
	}
	return debit, credit
}

// ValidateJournalLines checks the shape of every line and that the lines balance.
// It returns the totals on success.
func ValidateJournalLines(lines []domain.JournalLineDraft) (decimal.Decimal, decimal.Decimal, error) {
	if len(lines) < 2 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: journal must have at least two lines", apperrors.ErrValidation)
	}

	debit, credit := decimal.Zero, decimal.Zero
	for i, line := range lines {
		if line.ChartOfAccountID <= 0 {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if !line.Debit.IsZero() && !line.Credit.IsZero() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has both debit and credit", apperrors.ErrValidation, i+1)
		}
		if line.Debit.IsZero() && line.Credit.IsZero() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has no amount", apperrors.ErrValidation, i+1)
		}
		if !IsWholeCents(line.Debit) || !IsWholeCents(line.Credit) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: line %d has a fraction of a cent", apperrors.ErrValidation, i+1)
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}

	if !debit.Equal(credit) {
		return debit, credit, fmt.Errorf("%w: debit %s, credit %s", apperrors.ErrUnbalanced, debit.StringFixed(2), credit.StringFixed(2))
	}
	return debit, credit, nil
}

// NormalBalance returns an account balance on its normal side.
func NormalBalance(isDebit bool, debit, credit decimal.Decimal) decimal.Decimal {
	if isDebit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// SplitLoanPayment splits a loan payment into principal and interest.
// With no split supplied the whole amount is principal; with one portion supplied
// the other is the remainder. A supplied split must add up to total.
func SplitLoanPayment(total decimal.Decimal, principal, interest *decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	if err := CheckCents("payment", total); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if principal != nil {
		if err := CheckCents("principal portion", *principal); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}
	if interest != nil {
		if err := CheckCents("interest portion", *interest); err != nil {
			return decimal.Zero, decimal.Zero, err
		}
	}

	switch {
	case principal == nil && interest == nil:
		return total, decimal.Zero, nil
	case principal != nil && interest == nil:
		if principal.GreaterThan(total) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: principal portion %s exceeds payment %s", apperrors.ErrValidation, principal.String(), total.String())
		}
		return *principal, total.Sub(*principal), nil
	case principal == nil && interest != nil:
		if interest.GreaterThan(total) {
			return decimal.Zero, decimal.Zero, fmt.Errorf("%w: interest portion %s exceeds payment %s", apperrors.ErrValidation, interest.String(), total.String())
		}
		return total.Sub(*interest), *interest, nil
	}
	if !principal.Add(*interest).Equal(total) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("%w: principal %s and interest %s do not add up to %s",
			apperrors.ErrValidation, principal.String(), interest.String(), total.String())
	}
	return *principal, *interest, nil
}

// OperatingMargin is net income as a percentage of revenue, 0 when there is no revenue.
func OperatingMargin(netIncome, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return netIncome.Div(revenue).Mul(hundred).Round(2)
}

// PercentageChange compares current against previous using |previous| as the base.
func PercentageChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsZero() {
			return decimal.Zero
		}
		return hundred
	}
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred).Round(2)
}

// TrendOf classifies a change.
func TrendOf(change decimal.Decimal) domain.Trend {
	switch change.Sign() {
	case 1:
		return domain.TrendUp
	case -1:
		return domain.TrendDown
	}
	return domain.TrendFlat
}
