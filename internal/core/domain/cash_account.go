package domain

import "github.com/shopspring/decimal"

// CashAccountType is the tag a cooperative uses to distinguish its cash drawers.
type CashAccountType string

const (
	CashAccountTypeI   CashAccountType = "I"
	CashAccountTypeII  CashAccountType = "II"
	CashAccountTypeIII CashAccountType = "III"
	CashAccountTypeIV  CashAccountType = "IV"
	CashAccountTypeV   CashAccountType = "V"
)

// CashAccount is a physical or bank cash holding with a running balance.
type CashAccount struct {
	ID             int64           `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           CashAccountType `json:"type"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// BalanceDirection says whether an amount is added to or subtracted from a balance.
type BalanceDirection string

const (
	BalanceAdd      BalanceDirection = "add"
	BalanceSubtract BalanceDirection = "subtract"
)

// CashMovement is a planned balance change on one cash account.
type CashMovement struct {
	CashAccountID int64
	Amount        decimal.Decimal
	Direction     BalanceDirection
}

// DefaultCashAccounts are seeded alongside the chart of accounts.
var DefaultCashAccounts = []CashAccount{
	{Code: "KAS-I", Name: "Kas Umum", Type: CashAccountTypeI, IsActive: true},
	{Code: "KAS-II", Name: "Kas Sosial", Type: CashAccountTypeII, IsActive: true},
	{Code: "KAS-III", Name: "Kas Pengadaan", Type: CashAccountTypeIII, IsActive: true},
	{Code: "KAS-IV", Name: "Kas Hadiah", Type: CashAccountTypeIV, IsActive: true},
	{Code: "KAS-V", Name: "Bank", Type: CashAccountTypeV, IsActive: true},
}
