package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid transactionDate %q", apperrors.ErrValidation, s)
	}
	return t, nil
}

// SavingApprovedRequest is the payload for posting an approved saving.
type SavingApprovedRequest struct {
	SavingID        int64           `json:"savingId" binding:"required"`
	CashAccountID   int64           `json:"cashAccountId" binding:"required"`
	SavingsType     string          `json:"savingsType" binding:"required"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionDate string          `json:"transactionDate" binding:"required"`
	Description     string          `json:"description"`
}

func (r SavingApprovedRequest) ToDomain() (domain.SavingApproved, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return domain.SavingApproved{}, err
	}
	return domain.SavingApproved{
		SavingID:        r.SavingID,
		CashAccountID:   r.CashAccountID,
		SavingsType:     domain.SavingsType(r.SavingsType),
		Amount:          r.Amount,
		TransactionDate: date,
		Description:     r.Description,
	}, nil
}

// LoanDisbursedRequest is the payload for posting a loan disbursement.
type LoanDisbursedRequest struct {
	LoanID          int64           `json:"loanId" binding:"required"`
	CashAccountID   int64           `json:"cashAccountId" binding:"required"`
	Principal       decimal.Decimal `json:"principal"`
	TransactionDate string          `json:"transactionDate" binding:"required"`
	Description     string          `json:"description"`
}

func (r LoanDisbursedRequest) ToDomain() (domain.LoanDisbursed, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return domain.LoanDisbursed{}, err
	}
	return domain.LoanDisbursed{
		LoanID:          r.LoanID,
		CashAccountID:   r.CashAccountID,
		Principal:       r.Principal,
		TransactionDate: date,
		Description:     r.Description,
	}, nil
}

// InstallmentPaidRequest is the payload for posting an installment payment.
type InstallmentPaidRequest struct {
	InstallmentID   int64           `json:"installmentId" binding:"required"`
	LoanID          int64           `json:"loanId" binding:"required"`
	CashAccountID   int64           `json:"cashAccountId" binding:"required"`
	PrincipalAmount decimal.Decimal `json:"principalAmount"`
	InterestAmount  decimal.Decimal `json:"interestAmount"`
	TransactionDate string          `json:"transactionDate" binding:"required"`
	Description     string          `json:"description"`
}

func (r InstallmentPaidRequest) ToDomain() (domain.InstallmentPaid, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return domain.InstallmentPaid{}, err
	}
	return domain.InstallmentPaid{
		InstallmentID:   r.InstallmentID,
		LoanID:          r.LoanID,
		CashAccountID:   r.CashAccountID,
		PrincipalAmount: r.PrincipalAmount,
		InterestAmount:  r.InterestAmount,
		TransactionDate: date,
		Description:     r.Description,
	}, nil
}

// CashTransferRequest is the payload for posting an approved cash transfer.
type CashTransferRequest struct {
	TransferID               int64           `json:"transferId" binding:"required"`
	SourceCashAccountID      int64           `json:"sourceCashAccountId" binding:"required"`
	DestinationCashAccountID int64           `json:"destinationCashAccountId" binding:"required"`
	Amount                   decimal.Decimal `json:"amount"`
	TransactionDate          string          `json:"transactionDate" binding:"required"`
	Description              string          `json:"description"`
}

func (r CashTransferRequest) ToDomain() (domain.CashTransferApproved, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return domain.CashTransferApproved{}, err
	}
	return domain.CashTransferApproved{
		TransferID:               r.TransferID,
		SourceCashAccountID:      r.SourceCashAccountID,
		DestinationCashAccountID: r.DestinationCashAccountID,
		Amount:                   r.Amount,
		TransactionDate:          date,
		Description:              r.Description,
	}, nil
}

// SalaryDeductionRequest is the payload for posting a processed salary deduction.
type SalaryDeductionRequest struct {
	SalaryDeductionID int64            `json:"salaryDeductionId" binding:"required"`
	LoanDeduction     decimal.Decimal  `json:"loanDeduction"`
	PrincipalPortion  *decimal.Decimal `json:"principalPortion"`
	InterestPortion   *decimal.Decimal `json:"interestPortion"`
	SavingsDeduction  decimal.Decimal  `json:"savingsDeduction"`
	OtherDeductions   decimal.Decimal  `json:"otherDeductions"`
	TransactionDate   string           `json:"transactionDate" binding:"required"`
	Description       string           `json:"description"`
}

func (r SalaryDeductionRequest) ToDomain() (domain.SalaryDeductionProcessed, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return domain.SalaryDeductionProcessed{}, err
	}
	return domain.SalaryDeductionProcessed{
		SalaryDeductionID: r.SalaryDeductionID,
		LoanDeduction:     r.LoanDeduction,
		PrincipalPortion:  r.PrincipalPortion,
		InterestPortion:   r.InterestPortion,
		SavingsDeduction:  r.SavingsDeduction,
		OtherDeductions:   r.OtherDeductions,
		TransactionDate:   date,
		Description:       r.Description,
	}, nil
}

// ServiceAllowanceRequest is the payload for posting a processed service allowance.
type ServiceAllowanceRequest struct {
	ServiceAllowanceID int64            `json:"serviceAllowanceId" binding:"required"`
	InstallmentPaid    decimal.Decimal  `json:"installmentPaid"`
	PrincipalPortion   *decimal.Decimal `json:"principalPortion"`
	InterestPortion    *decimal.Decimal `json:"interestPortion"`
	TransactionDate    string           `json:"transactionDate" binding:"required"`
	Description        string           `json:"description"`
}

func (r ServiceAllowanceRequest) ToDomain() (domain.ServiceAllowanceProcessed, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return domain.ServiceAllowanceProcessed{}, err
	}
	return domain.ServiceAllowanceProcessed{
		ServiceAllowanceID: r.ServiceAllowanceID,
		InstallmentPaid:    r.InstallmentPaid,
		PrincipalPortion:   r.PrincipalPortion,
		InterestPortion:    r.InterestPortion,
		TransactionDate:    date,
		Description:        r.Description,
	}, nil
}

// EarlySettlementRequest is the payload for posting an early loan settlement.
type EarlySettlementRequest struct {
	LoanID           int64           `json:"loanId" binding:"required"`
	CashAccountID    int64           `json:"cashAccountId" binding:"required"`
	SettlementAmount decimal.Decimal `json:"settlementAmount"`
	TransactionDate  string          `json:"transactionDate" binding:"required"`
	Description      string          `json:"description"`
}

func (r EarlySettlementRequest) ToDomain() (domain.EarlySettlement, error) {
	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return domain.EarlySettlement{}, err
	}
	return domain.EarlySettlement{
		LoanID:           r.LoanID,
		CashAccountID:    r.CashAccountID,
		SettlementAmount: r.SettlementAmount,
		TransactionDate:  date,
		Description:      r.Description,
	}, nil
}

// PostingResponse is returned by every posting endpoint. Journal is nil when the
// event produced no journal, e.g. a salary deduction with nothing deducted.
type PostingResponse struct {
	Posted  bool             `json:"posted"`
	Journal *JournalResponse `json:"journal,omitempty"`
}

// ToPostingResponse converts the generator's result.
func ToPostingResponse(j *domain.Journal) PostingResponse {
	if j == nil {
		return PostingResponse{Posted: false}
	}
	resp := ToJournalResponse(j)
	return PostingResponse{Posted: true, Journal: &resp}
}
