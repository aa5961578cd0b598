package domain

// AccountCategory is the top-level classification of a chart-of-accounts entry.
type AccountCategory string

const (
	CategoryAssets      AccountCategory = "assets"
	CategoryLiabilities AccountCategory = "liabilities"
	CategoryEquity      AccountCategory = "equity"
	CategoryRevenue     AccountCategory = "revenue"
	CategoryExpenses    AccountCategory = "expenses"
)

// IsValid reports whether c is one of the known categories.
func (c AccountCategory) IsValid() bool {
	switch c {
	case CategoryAssets, CategoryLiabilities, CategoryEquity, CategoryRevenue, CategoryExpenses:
		return true
	}
	return false
}

// DefaultIsDebit returns the conventional normal balance side of the category.
// Assets and expenses are debit-normal, everything else is credit-normal.
func (c AccountCategory) DefaultIsDebit() bool {
	return c == CategoryAssets || c == CategoryExpenses
}

// Account subtypes the cash-flow summary treats as cash.
const (
	AccountTypeCash = "Cash"
	AccountTypeBank = "Bank"
)

// ChartOfAccount is a single ledger account.
type ChartOfAccount struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    AccountCategory `json:"category"`
	AccountType string          `json:"accountType"`
	IsDebit     bool            `json:"isDebit"`
	IsActive    bool            `json:"isActive"`
	Description string          `json:"description,omitempty"`
	AuditFields
}

// Fixed account codes referenced by automatic postings.
const (
	CoaKasUmum              = "1-101"
	CoaKasII                = "1-102"
	CoaKasIII               = "1-103"
	CoaKasIV                = "1-104"
	CoaKasV                 = "1-105"
	CoaLoanReceivable       = "1-201"
	CoaSavingsPrincipal     = "2-201"
	CoaSavingsMandatory     = "2-202"
	CoaSavingsVoluntary     = "2-203"
	CoaSavingsHoliday       = "2-204"
	CoaInterestIncome       = "4-101"
	CoaOtherIncome          = "4-102"
	CoaRetainedEarnings     = "3-201"
	CoaOperationalExpense   = "5-101"
	CoaPrincipalEquity      = "3-101"
	CoaBankAccount          = "1-106"
	CoaAllowanceForLoanLoss = "1-202"
)

// CashAccountCoa maps a cash-account type tag to its ledger account code.
var CashAccountCoa = map[CashAccountType]string{
	CashAccountTypeI:   CoaKasUmum,
	CashAccountTypeII:  CoaKasII,
	CashAccountTypeIII: CoaKasIII,
	CashAccountTypeIV:  CoaKasIV,
	CashAccountTypeV:   CoaKasV,
}

// SavingsType identifies the kind of member saving.
type SavingsType string

const (
	SavingsPrincipal SavingsType = "principal"
	SavingsMandatory SavingsType = "mandatory"
	SavingsVoluntary SavingsType = "voluntary"
	SavingsHoliday   SavingsType = "holiday"
)

// SavingTypeCoa maps a savings type to its liability account code.
var SavingTypeCoa = map[SavingsType]string{
	SavingsPrincipal: CoaSavingsPrincipal,
	SavingsMandatory: CoaSavingsMandatory,
	SavingsVoluntary: CoaSavingsVoluntary,
	SavingsHoliday:   CoaSavingsHoliday,
}

// DefaultChart is the reference chart seeded into a fresh database.
var DefaultChart = []ChartOfAccount{
	{Code: CoaKasUmum, Name: "Kas Umum", Category: CategoryAssets, AccountType: AccountTypeCash, IsDebit: true, IsActive: true},
	{Code: CoaKasII, Name: "Kas Sosial", Category: CategoryAssets, AccountType: AccountTypeCash, IsDebit: true, IsActive: true},
	{Code: CoaKasIII, Name: "Kas Pengadaan", Category: CategoryAssets, AccountType: AccountTypeCash, IsDebit: true, IsActive: true},
	{Code: CoaKasIV, Name: "Kas Hadiah", Category: CategoryAssets, AccountType: AccountTypeCash, IsDebit: true, IsActive: true},
	{Code: CoaKasV, Name: "Bank", Category: CategoryAssets, AccountType: AccountTypeBank, IsDebit: true, IsActive: true},
	{Code: CoaBankAccount, Name: "Bank Lainnya", Category: CategoryAssets, AccountType: AccountTypeBank, IsDebit: true, IsActive: true},
	{Code: CoaLoanReceivable, Name: "Piutang Anggota", Category: CategoryAssets, AccountType: "Receivable", IsDebit: true, IsActive: true},
	{Code: CoaAllowanceForLoanLoss, Name: "Cadangan Kerugian Piutang", Category: CategoryAssets, AccountType: "Contra", IsDebit: false, IsActive: true},
	{Code: CoaSavingsPrincipal, Name: "Simpanan Pokok", Category: CategoryLiabilities, AccountType: "Savings", IsDebit: false, IsActive: true},
	{Code: CoaSavingsMandatory, Name: "Simpanan Wajib", Category: CategoryLiabilities, AccountType: "Savings", IsDebit: false, IsActive: true},
	{Code: CoaSavingsVoluntary, Name: "Simpanan Sukarela", Category: CategoryLiabilities, AccountType: "Savings", IsDebit: false, IsActive: true},
	{Code: CoaSavingsHoliday, Name: "Simpanan Hari Raya", Category: CategoryLiabilities, AccountType: "Savings", IsDebit: false, IsActive: true},
	{Code: CoaPrincipalEquity, Name: "Modal Awal", Category: CategoryEquity, AccountType: "Equity", IsDebit: false, IsActive: true},
	{Code: CoaRetainedEarnings, Name: "SHU Ditahan", Category: CategoryEquity, AccountType: "Equity", IsDebit: false, IsActive: true},
	{Code: CoaInterestIncome, Name: "Pendapatan Jasa Pinjaman", Category: CategoryRevenue, AccountType: "Income", IsDebit: false, IsActive: true},
	{Code: CoaOtherIncome, Name: "Pendapatan Lain-lain", Category: CategoryRevenue, AccountType: "Income", IsDebit: false, IsActive: true},
	{Code: CoaOperationalExpense, Name: "Beban Operasional", Category: CategoryExpenses, AccountType: "Expense", IsDebit: true, IsActive: true},
}
