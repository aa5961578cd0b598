package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalType classifies journals and determines their number prefix.
type JournalType string

const (
	JournalGeneral    JournalType = "general"
	JournalSpecial    JournalType = "special"
	JournalAdjustment JournalType = "adjustment"
	JournalClosing    JournalType = "closing"
	JournalOpening    JournalType = "opening"
)

// IsValid reports whether t is a known journal type.
func (t JournalType) IsValid() bool {
	_, ok := journalPrefixes[t]
	return ok
}

var journalPrefixes = map[JournalType]string{
	JournalGeneral:    "JU",
	JournalSpecial:    "JK",
	JournalAdjustment: "JP",
	JournalClosing:    "JT",
	JournalOpening:    "JA",
}

// NumberPrefix returns the journal number prefix for the type.
func (t JournalType) NumberPrefix() string {
	if p, ok := journalPrefixes[t]; ok {
		return p
	}
	return "JU"
}

// SourceModule identifies the subsystem that produced a journal.
type SourceModule string

const (
	SourceManual            SourceModule = "manual"
	SourceSavings           SourceModule = "savings"
	SourceLoans             SourceModule = "loans"
	SourceInstallments      SourceModule = "installments"
	SourceCashTransfers     SourceModule = "cash_transfers"
	SourceSalaryDeductions  SourceModule = "salary_deductions"
	SourceServiceAllowances SourceModule = "service_allowances"
)

// ReferenceType is the kind of business entity a journal points back to.
type ReferenceType string

const (
	RefSaving           ReferenceType = "Saving"
	RefLoan             ReferenceType = "Loan"
	RefInstallment      ReferenceType = "Installment"
	RefCashTransfer     ReferenceType = "CashTransfer"
	RefSalaryDeduction  ReferenceType = "SalaryDeduction"
	RefServiceAllowance ReferenceType = "ServiceAllowance"
)

// JournalReference is a non-owning pointer to the entity that triggered a journal.
type JournalReference struct {
	Type ReferenceType `json:"type"`
	ID   int64         `json:"id"`
}

// Journal is a double-entry header and its lines.
type Journal struct {
	JournalID       int64             `json:"journalID"`
	JournalNumber   string            `json:"journalNumber"`
	JournalType     JournalType       `json:"journalType"`
	Description     string            `json:"description"`
	TransactionDate time.Time         `json:"transactionDate"`
	IsLocked        bool              `json:"isLocked"`
	IsAutoGenerated bool              `json:"isAutoGenerated"`
	IsEditable      bool              `json:"isEditable"`
	SourceModule    SourceModule      `json:"sourceModule"`
	Reference       *JournalReference `json:"reference,omitempty"`
	TotalDebit      decimal.Decimal   `json:"totalDebit"`
	TotalCredit     decimal.Decimal   `json:"totalCredit"`
	LockedAt        *time.Time        `json:"lockedAt,omitempty"`
	LockedBy        *string           `json:"lockedBy,omitempty"`
	Details         []JournalDetail   `json:"details,omitempty"`
	AuditFields
}

// JournalDetail is a single debit or credit line.
type JournalDetail struct {
	DetailID         int64           `json:"detailID"`
	JournalID        int64           `json:"journalID"`
	ChartOfAccountID int64           `json:"chartOfAccountID"`
	AccountCode      string          `json:"accountCode,omitempty"`
	AccountName      string          `json:"accountName,omitempty"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      string          `json:"description"`
}

// JournalLineDraft is an unsaved journal line.
type JournalLineDraft struct {
	ChartOfAccountID int64
	Debit            decimal.Decimal
	Credit           decimal.Decimal
	Description      string
}

// JournalDraft is everything needed to create a journal except its number.
type JournalDraft struct {
	JournalType     JournalType
	Description     string
	TransactionDate time.Time
	IsAutoGenerated bool
	IsEditable      bool
	SourceModule    SourceModule
	Reference       *JournalReference
	Lines           []JournalLineDraft
}

// JournalUpdate replaces a journal's header fields and all of its lines.
type JournalUpdate struct {
	Description     string
	TransactionDate time.Time
	Lines           []JournalLineDraft
}

// JournalFilter narrows journal listings.
type JournalFilter struct {
	From         *time.Time
	To           *time.Time
	JournalType  *JournalType
	SourceModule *SourceModule
}
