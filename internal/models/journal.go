package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Journal is a row of journals.
type Journal struct {
	ID              int64           `db:"id"`
	JournalNumber   string          `db:"journal_number"`
	JournalType     string          `db:"journal_type"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	IsLocked        bool            `db:"is_locked"`
	IsAutoGenerated bool            `db:"is_auto_generated"`
	IsEditable      bool            `db:"is_editable"`
	SourceModule    string          `db:"source_module"`
	ReferenceType   sql.NullString  `db:"reference_type"`
	ReferenceID     sql.NullInt64   `db:"reference_id"`
	TotalDebit      decimal.Decimal `db:"total_debit"`
	TotalCredit     decimal.Decimal `db:"total_credit"`
	LockedAt        sql.NullTime    `db:"locked_at"`
	LockedBy        sql.NullString  `db:"locked_by"`
	AuditFields
}

// JournalDetail is a row of journal_details, optionally joined with its account.
type JournalDetail struct {
	ID               int64           `db:"id"`
	JournalID        int64           `db:"journal_id"`
	ChartOfAccountID int64           `db:"chart_of_account_id"`
	AccountCode      string          `db:"code"`
	AccountName      string          `db:"name"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
	Description      string          `db:"description"`
}
