package services

import (
	"context"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
)

// AutoJournalSvc turns business events into balanced special journals.
// Every method returns a nil journal, without error, when the event carries nothing to post.
type AutoJournalSvc interface {
	// Post dispatches on the event type and posts inside a single unit of work.
	Post(ctx context.Context, event domain.BusinessEvent, userID string) (*domain.Journal, error)

	// PostWithin runs apply, the cash movements and the journal in one unit of work so
	// the originating state change commits or rolls back together with the posting.
	PostWithin(ctx context.Context, event domain.BusinessEvent, userID string, apply func(ctx context.Context) error) (*domain.Journal, error)

	OnSavingApproved(ctx context.Context, event domain.SavingApproved, userID string) (*domain.Journal, error)
	OnLoanDisbursed(ctx context.Context, event domain.LoanDisbursed, userID string) (*domain.Journal, error)
	OnInstallmentPaid(ctx context.Context, event domain.InstallmentPaid, userID string) (*domain.Journal, error)
	OnCashTransferApproved(ctx context.Context, event domain.CashTransferApproved, userID string) (*domain.Journal, error)
	OnSalaryDeductionProcessed(ctx context.Context, event domain.SalaryDeductionProcessed, userID string) (*domain.Journal, error)
	OnServiceAllowanceProcessed(ctx context.Context, event domain.ServiceAllowanceProcessed, userID string) (*domain.Journal, error)
	OnEarlySettlement(ctx context.Context, event domain.EarlySettlement, userID string) (*domain.Journal, error)
}
