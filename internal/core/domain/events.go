package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType names a business event that produces an automatic journal.
type EventType string

const (
	EventSavingApproved            EventType = "saving_approved"
	EventLoanDisbursed             EventType = "loan_disbursed"
	EventInstallmentPaid           EventType = "installment_paid"
	EventCashTransferApproved      EventType = "cash_transfer_approved"
	EventSalaryDeductionProcessed  EventType = "salary_deduction_processed"
	EventServiceAllowanceProcessed EventType = "service_allowance_processed"
	EventEarlySettlement           EventType = "early_settlement"
)

// BusinessEvent is implemented by the seven posting payloads below.
type BusinessEvent interface {
	EventType() EventType
	isBusinessEvent()
}

// SavingApproved is raised when a member saving deposit is approved.
type SavingApproved struct {
	SavingID        int64           `json:"savingId" validate:"gt=0"`
	CashAccountID   int64           `json:"cashAccountId" validate:"gt=0"`
	SavingsType     SavingsType     `json:"savingsType" validate:"required"`
	Amount          decimal.Decimal `json:"amount" validate:"gt=0"`
	TransactionDate time.Time       `json:"transactionDate" validate:"required"`
	Description     string          `json:"description,omitempty"`
}

// LoanDisbursed is raised when loan principal leaves a cash account.
type LoanDisbursed struct {
	LoanID          int64           `json:"loanId" validate:"gt=0"`
	CashAccountID   int64           `json:"cashAccountId" validate:"gt=0"`
	Principal       decimal.Decimal `json:"principal" validate:"gt=0"`
	TransactionDate time.Time       `json:"transactionDate" validate:"required"`
	Description     string          `json:"description,omitempty"`
}

// InstallmentPaid is raised when a scheduled loan installment is received.
type InstallmentPaid struct {
	InstallmentID   int64           `json:"installmentId" validate:"gt=0"`
	LoanID          int64           `json:"loanId" validate:"gt=0"`
	CashAccountID   int64           `json:"cashAccountId" validate:"gt=0"`
	PrincipalAmount decimal.Decimal `json:"principalAmount" validate:"gte=0"`
	InterestAmount  decimal.Decimal `json:"interestAmount" validate:"gte=0"`
	TransactionDate time.Time       `json:"transactionDate" validate:"required"`
	Description     string          `json:"description,omitempty"`
}

// CashTransferApproved moves money between two cash accounts.
type CashTransferApproved struct {
	TransferID               int64           `json:"transferId" validate:"gt=0"`
	SourceCashAccountID      int64           `json:"sourceCashAccountId" validate:"gt=0"`
	DestinationCashAccountID int64           `json:"destinationCashAccountId" validate:"gt=0,nefield=SourceCashAccountID"`
	Amount                   decimal.Decimal `json:"amount" validate:"gt=0"`
	TransactionDate          time.Time       `json:"transactionDate" validate:"required"`
	Description              string          `json:"description,omitempty"`
}

// SalaryDeductionProcessed is a payroll deduction batch for one member.
// PrincipalPortion and InterestPortion optionally split LoanDeduction.
type SalaryDeductionProcessed struct {
	SalaryDeductionID int64            `json:"salaryDeductionId" validate:"gt=0"`
	LoanDeduction     decimal.Decimal  `json:"loanDeduction" validate:"gte=0"`
	PrincipalPortion  *decimal.Decimal `json:"principalPortion,omitempty" validate:"omitempty,gte=0"`
	InterestPortion   *decimal.Decimal `json:"interestPortion,omitempty" validate:"omitempty,gte=0"`
	SavingsDeduction  decimal.Decimal  `json:"savingsDeduction" validate:"gte=0"`
	OtherDeductions   decimal.Decimal  `json:"otherDeductions" validate:"gte=0"`
	TransactionDate   time.Time        `json:"transactionDate" validate:"required"`
	Description       string           `json:"description,omitempty"`
}

// TotalDeductions is the sum of every deduction component.
func (e SalaryDeductionProcessed) TotalDeductions() decimal.Decimal {
	return e.LoanDeduction.Add(e.SavingsDeduction).Add(e.OtherDeductions)
}

// ServiceAllowanceProcessed is a service allowance used to pay down a loan.
type ServiceAllowanceProcessed struct {
	ServiceAllowanceID int64            `json:"serviceAllowanceId" validate:"gt=0"`
	InstallmentPaid    decimal.Decimal  `json:"installmentPaid" validate:"gte=0"`
	PrincipalPortion   *decimal.Decimal `json:"principalPortion,omitempty" validate:"omitempty,gte=0"`
	InterestPortion    *decimal.Decimal `json:"interestPortion,omitempty" validate:"omitempty,gte=0"`
	TransactionDate    time.Time        `json:"transactionDate" validate:"required"`
	Description        string           `json:"description,omitempty"`
}

// EarlySettlement pays off a loan's remaining principal, interest waived.
type EarlySettlement struct {
	LoanID           int64           `json:"loanId" validate:"gt=0"`
	CashAccountID    int64           `json:"cashAccountId" validate:"gt=0"`
	SettlementAmount decimal.Decimal `json:"settlementAmount" validate:"gt=0"`
	TransactionDate  time.Time       `json:"transactionDate" validate:"required"`
	Description      string          `json:"description,omitempty"`
}

func (SavingApproved) EventType() EventType            { return EventSavingApproved }
func (LoanDisbursed) EventType() EventType             { return EventLoanDisbursed }
func (InstallmentPaid) EventType() EventType           { return EventInstallmentPaid }
func (CashTransferApproved) EventType() EventType      { return EventCashTransferApproved }
func (SalaryDeductionProcessed) EventType() EventType  { return EventSalaryDeductionProcessed }
func (ServiceAllowanceProcessed) EventType() EventType { return EventServiceAllowanceProcessed }
func (EarlySettlement) EventType() EventType           { return EventEarlySettlement }

func (SavingApproved) isBusinessEvent()            {}
func (LoanDisbursed) isBusinessEvent()             {}
func (InstallmentPaid) isBusinessEvent()           {}
func (CashTransferApproved) isBusinessEvent()      {}
func (SalaryDeductionProcessed) isBusinessEvent()  {}
func (ServiceAllowanceProcessed) isBusinessEvent() {}
func (EarlySettlement) isBusinessEvent()           {}
