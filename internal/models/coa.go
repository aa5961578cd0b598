package models

import "database/sql"

// ChartOfAccount is a row of chart_of_accounts.
type ChartOfAccount struct {
	ID          int64          `db:"id"`
	Code        string         `db:"code"`
	Name        string         `db:"name"`
	Category    string         `db:"category"`
	AccountType string         `db:"account_type"`
	IsDebit     bool           `db:"is_debit"`
	IsActive    bool           `db:"is_active"`
	Description sql.NullString `db:"description"`
	AuditFields
}
