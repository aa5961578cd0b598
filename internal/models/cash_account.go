package models

import "github.com/shopspring/decimal"

// CashAccount is a row of cash_accounts.
type CashAccount struct {
	ID             int64           `db:"id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Type           string          `db:"type"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
