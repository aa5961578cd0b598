package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountingPeriod is a named date range used to scope reports.
type AccountingPeriod struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsClosed  bool      `json:"isClosed"`
}

// LedgerFilter selects journal details by their journal's date and their account.
// Nil bounds are open.
type LedgerFilter struct {
	From         *time.Time
	To           *time.Time
	AccountID    *int64
	Categories   []AccountCategory
	AccountTypes []string // matched case-insensitively
}

// AccountTotal is the debit and credit sum of one account's lines.
type AccountTotal struct {
	Account ChartOfAccount
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// AccountSourceTotal is an AccountTotal further split by the journal's source module.
type AccountSourceTotal struct {
	AccountTotal
	SourceModule SourceModule
}

// LedgerLine is one journal detail joined with its journal header and account.
type LedgerLine struct {
	JournalID          int64
	DetailID           int64
	JournalNumber      string
	TransactionDate    time.Time
	JournalDescription string
	SourceModule       SourceModule
	Account            ChartOfAccount
	Debit              decimal.Decimal
	Credit             decimal.Decimal
	Description        string
}

// TrialBalanceRow is one account's totals and its net balance column.
type TrialBalanceRow struct {
	AccountID     int64           `json:"accountID"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	Category      AccountCategory `json:"category"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	DebitBalance  decimal.Decimal `json:"debitBalance"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
}

// TrialBalanceReport lists every account with activity up to AsOf.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Period      *AccountingPeriod `json:"period,omitempty"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
	Difference  decimal.Decimal   `json:"difference"`
}

// GeneralLedgerEntry is one line in an account's ledger with the balance after it.
type GeneralLedgerEntry struct {
	JournalID       int64           `json:"journalID"`
	DetailID        int64           `json:"detailID"`
	JournalNumber   string          `json:"journalNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	RunningBalance  decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerAccount groups ledger entries for one account.
type GeneralLedgerAccount struct {
	AccountID     int64                `json:"accountID"`
	AccountCode   string               `json:"accountCode"`
	AccountName   string               `json:"accountName"`
	Category      AccountCategory      `json:"category"`
	Entries       []GeneralLedgerEntry `json:"entries"`
	TotalDebit    decimal.Decimal      `json:"totalDebit"`
	TotalCredit   decimal.Decimal      `json:"totalCredit"`
	EndingBalance decimal.Decimal      `json:"endingBalance"`
}

// GeneralLedgerReport is the general ledger for a date range.
type GeneralLedgerReport struct {
	StartDate time.Time              `json:"startDate"`
	EndDate   time.Time              `json:"endDate"`
	Accounts  []GeneralLedgerAccount `json:"accounts"`
}

// AccountBalance is an account's balance on its reporting side.
type AccountBalance struct {
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// IncomeStatementSummary holds the totals of an income statement.
type IncomeStatementSummary struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	NetIncome       decimal.Decimal `json:"netIncome"`
	OperatingMargin decimal.Decimal `json:"operatingMargin"`
}

// Trend is the direction of net income against the prior period.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// IncomeStatementComparison compares a statement with the preceding period of equal length.
type IncomeStatementComparison struct {
	PreviousStartDate time.Time              `json:"previousStartDate"`
	PreviousEndDate   time.Time              `json:"previousEndDate"`
	Previous          IncomeStatementSummary `json:"previous"`
	NetIncomeChange   decimal.Decimal        `json:"netIncomeChange"`
	PercentageChange  decimal.Decimal        `json:"percentageChange"`
	RevenueChange     decimal.Decimal        `json:"revenueChange"`
	ExpenseChange     decimal.Decimal        `json:"expenseChange"`
	Trend             Trend                  `json:"trend"`
}

// IncomeStatementReport is revenue and expense activity over a range.
type IncomeStatementReport struct {
	StartDate  time.Time                  `json:"startDate"`
	EndDate    time.Time                  `json:"endDate"`
	Revenue    []AccountBalance           `json:"revenue"`
	Expenses   []AccountBalance           `json:"expenses"`
	Summary    IncomeStatementSummary     `json:"summary"`
	Comparison *IncomeStatementComparison `json:"comparison,omitempty"`
}

// BalanceSheetSection is one category block of a balance sheet.
type BalanceSheetSection struct {
	Accounts []AccountBalance `json:"accounts"`
	Total    decimal.Decimal  `json:"total"`
}

// BalanceSheetSummary carries the accounting equation check.
type BalanceSheetSummary struct {
	TotalAssets               decimal.Decimal `json:"totalAssets"`
	TotalLiabilities          decimal.Decimal `json:"totalLiabilities"`
	TotalEquity               decimal.Decimal `json:"totalEquity"`
	NetIncome                 decimal.Decimal `json:"netIncome"`
	TotalEquityWithIncome     decimal.Decimal `json:"totalEquityWithIncome"`
	TotalLiabilitiesAndEquity decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	IsBalanced                bool            `json:"isBalanced"`
	Difference                decimal.Decimal `json:"difference"`
}

// BalanceSheetReport is the financial position as of a date.
type BalanceSheetReport struct {
	AsOf        time.Time           `json:"asOf"`
	Assets      BalanceSheetSection `json:"assets"`
	Liabilities BalanceSheetSection `json:"liabilities"`
	Equity      BalanceSheetSection `json:"equity"`
	Summary     BalanceSheetSummary `json:"summary"`
}

// CashFlowSource is cash movement attributed to one source module.
type CashFlowSource struct {
	SourceModule SourceModule    `json:"sourceModule"`
	CashIn       decimal.Decimal `json:"cashIn"`
	CashOut      decimal.Decimal `json:"cashOut"`
	NetFlow      decimal.Decimal `json:"netFlow"`
}

// CashFlowAccount is the movement through one cash or bank account.
type CashFlowAccount struct {
	AccountID   int64            `json:"accountID"`
	AccountCode string           `json:"accountCode"`
	AccountName string           `json:"accountName"`
	CashIn      decimal.Decimal  `json:"cashIn"`
	CashOut     decimal.Decimal  `json:"cashOut"`
	NetFlow     decimal.Decimal  `json:"netFlow"`
	BySource    []CashFlowSource `json:"bySource"`
}

// CashFlowReport summarizes cash movement over a range.
type CashFlowReport struct {
	StartDate    time.Time         `json:"startDate"`
	EndDate      time.Time         `json:"endDate"`
	Accounts     []CashFlowAccount `json:"accounts"`
	TotalCashIn  decimal.Decimal   `json:"totalCashIn"`
	TotalCashOut decimal.Decimal   `json:"totalCashOut"`
	NetFlow      decimal.Decimal   `json:"netFlow"`
}
