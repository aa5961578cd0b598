package services

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sort"
	"time"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/platform/metrics"
	"github.com/SscSPs/coop_ledger/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// checkEventAmounts rejects event amounts finer than a cent.
func checkEventAmounts(event domain.BusinessEvent) error {
	amounts := map[string]decimal.Decimal{}
	switch e := event.(type) {
	case domain.SavingApproved:
		amounts["amount"] = e.Amount
	case domain.LoanDisbursed:
		amounts["principal"] = e.Principal
	case domain.InstallmentPaid:
		amounts["principalAmount"] = e.PrincipalAmount
		amounts["interestAmount"] = e.InterestAmount
	case domain.CashTransferApproved:
		amounts["amount"] = e.Amount
	case domain.SalaryDeductionProcessed:
		amounts["loanDeduction"] = e.LoanDeduction
		amounts["savingsDeduction"] = e.SavingsDeduction
		amounts["otherDeductions"] = e.OtherDeductions
		if e.PrincipalPortion != nil {
			amounts["principalPortion"] = *e.PrincipalPortion
		}
		if e.InterestPortion != nil {
			amounts["interestPortion"] = *e.InterestPortion
		}
	case domain.ServiceAllowanceProcessed:
		amounts["installmentPaid"] = e.InstallmentPaid
		if e.PrincipalPortion != nil {
			amounts["principalPortion"] = *e.PrincipalPortion
		}
		if e.InterestPortion != nil {
			amounts["interestPortion"] = *e.InterestPortion
		}
	case domain.EarlySettlement:
		amounts["settlementAmount"] = e.SettlementAmount
	}
	for name, amount := range amounts {
		if err := accounting.CheckCents(name, amount); err != nil {
			return err
		}
	}
	return nil
}

type planLine struct {
	code        string
	debit       decimal.Decimal
	credit      decimal.Decimal
	description string
}

// postingPlan is an event translated into account codes and cash movements.
type postingPlan struct {
	description string
	date        time.Time
	source      domain.SourceModule
	reference   *domain.JournalReference
	lines       []planLine
	movements   []domain.CashMovement
}

func (p *postingPlan) debit(code string, amount decimal.Decimal, description string) {
	if amount.IsPositive() {
		p.lines = append(p.lines, planLine{code: code, debit: amount, credit: decimal.Zero, description: description})
	}
}

func (p *postingPlan) credit(code string, amount decimal.Decimal, description string) {
	if amount.IsPositive() {
		p.lines = append(p.lines, planLine{code: code, debit: decimal.Zero, credit: amount, description: description})
	}
}

type autoJournalService struct {
	BaseService
	uow      portsrepo.UnitOfWork
	cashRepo portsrepo.CashAccountRepository
	coa      portssvc.ChartOfAccountSvc
	cash     portssvc.CashBalanceSvc
	journals portssvc.JournalWriterSvc
	validate *validator.Validate
}

// NewAutoJournalService creates the generator that posts business events to the ledger.
func NewAutoJournalService(
	uow portsrepo.UnitOfWork,
	cashRepo portsrepo.CashAccountRepository,
	coa portssvc.ChartOfAccountSvc,
	cash portssvc.CashBalanceSvc,
	journals portssvc.JournalWriterSvc,
) portssvc.AutoJournalSvc {
	return &autoJournalService{
		uow:      uow,
		cashRepo: cashRepo,
		coa:      coa,
		cash:     cash,
		journals: journals,
		validate: newEventValidator(),
	}
}

var _ portssvc.AutoJournalSvc = (*autoJournalService)(nil)

// newEventValidator teaches the validator to compare decimals numerically.
func newEventValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

func (s *autoJournalService) Post(ctx context.Context, event domain.BusinessEvent, userID string) (*domain.Journal, error) {
	return s.PostWithin(ctx, event, userID, nil)
}

func (s *autoJournalService) PostWithin(ctx context.Context, event domain.BusinessEvent, userID string, apply func(ctx context.Context) error) (*domain.Journal, error) {
	if event == nil {
		return nil, fmt.Errorf("%w: event is required", apperrors.ErrValidation)
	}
	if err := s.validate.Struct(event); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, event.EventType(), err)
	}
	if err := checkEventAmounts(event); err != nil {
		return nil, fmt.Errorf("%s: %w", event.EventType(), err)
	}

	var journal *domain.Journal
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		if apply != nil {
			if err := apply(ctx); err != nil {
				return err
			}
		}

		plan, err := s.plan(ctx, event)
		if err != nil || plan == nil {
			return err
		}

		draft, err := s.resolve(ctx, plan)
		if err != nil {
			return err
		}

		// Rows are locked in ID order so opposing transfers cannot deadlock.
		sort.Slice(plan.movements, func(i, j int) bool {
			return plan.movements[i].CashAccountID < plan.movements[j].CashAccountID
		})
		for _, m := range plan.movements {
			if _, err := s.cash.UpdateBalance(ctx, m.CashAccountID, m.Amount, m.Direction, userID); err != nil {
				return err
			}
		}

		journal, err = s.journals.CreateJournal(ctx, draft, userID)
		return err
	})
	if err != nil {
		metrics.PostingFailures.WithLabelValues(string(event.EventType())).Inc()
		s.LogError(ctx, err, "Automatic posting rolled back", slog.String("event", string(event.EventType())))
		return nil, err
	}

	if journal == nil {
		s.LogDebug(ctx, "Event produced no journal", slog.String("event", string(event.EventType())))
	}
	return journal, nil
}

func (s *autoJournalService) OnSavingApproved(ctx context.Context, event domain.SavingApproved, userID string) (*domain.Journal, error) {
	return s.Post(ctx, event, userID)
}

func (s *autoJournalService) OnLoanDisbursed(ctx context.Context, event domain.LoanDisbursed, userID string) (*domain.Journal, error) {
	return s.Post(ctx, event, userID)
}

func (s *autoJournalService) OnInstallmentPaid(ctx context.Context, event domain.InstallmentPaid, userID string) (*domain.Journal, error) {
	return s.Post(ctx, event, userID)
}

func (s *autoJournalService) OnCashTransferApproved(ctx context.Context, event domain.CashTransferApproved, userID string) (*domain.Journal, error) {
	return s.Post(ctx, event, userID)
}

func (s *autoJournalService) OnSalaryDeductionProcessed(ctx context.Context, event domain.SalaryDeductionProcessed, userID string) (*domain.Journal, error) {
	return s.Post(ctx, event, userID)
}

func (s *autoJournalService) OnServiceAllowanceProcessed(ctx context.Context, event domain.ServiceAllowanceProcessed, userID string) (*domain.Journal, error) {
	return s.Post(ctx, event, userID)
}

func (s *autoJournalService) OnEarlySettlement(ctx context.Context, event domain.EarlySettlement, userID string) (*domain.Journal, error) {
	return s.Post(ctx, event, userID)
}

// cashAccountCoa loads an active cash account and the ledger code it posts to.
func (s *autoJournalService) cashAccountCoa(ctx context.Context, cashAccountID int64) (*domain.CashAccount, string, error) {
	acc, err := s.cashRepo.FindCashAccountByID(ctx, cashAccountID)
	if err != nil {
		return nil, "", err
	}
	if !acc.IsActive {
		return nil, "", fmt.Errorf("%w: cash account %s is inactive", apperrors.ErrValidation, acc.Code)
	}
	code, err := s.coa.ResolveCashAccountCoa(acc.Type)
	if err != nil {
		return nil, "", err
	}
	return acc, code, nil
}

// kasUmum returns the general cash drawer used by payroll-driven postings.
func (s *autoJournalService) kasUmum(ctx context.Context) (*domain.CashAccount, string, error) {
	acc, err := s.cashRepo.FindActiveCashAccountByType(ctx, domain.CashAccountTypeI)
	if err != nil {
		return nil, "", err
	}
	code, err := s.coa.ResolveCashAccountCoa(acc.Type)
	if err != nil {
		return nil, "", err
	}
	return acc, code, nil
}

func describe(given, fallback string) string {
	if given != "" {
		return given
	}
	return fallback
}

// plan returns nil when the event carries nothing to post.
func (s *autoJournalService) plan(ctx context.Context, event domain.BusinessEvent) (*postingPlan, error) {
	switch e := event.(type) {
	case domain.SavingApproved:
		return s.planSaving(ctx, e)
	case domain.LoanDisbursed:
		return s.planLoan(ctx, e)
	case domain.InstallmentPaid:
		return s.planInstallment(ctx, e)
	case domain.CashTransferApproved:
		return s.planTransfer(ctx, e)
	case domain.SalaryDeductionProcessed:
		return s.planSalaryDeduction(ctx, e)
	case domain.ServiceAllowanceProcessed:
		return s.planServiceAllowance(ctx, e)
	case domain.EarlySettlement:
		return s.planEarlySettlement(ctx, e)
	}
	return nil, fmt.Errorf("%w: unsupported event %T", apperrors.ErrValidation, event)
}

func (s *autoJournalService) planSaving(ctx context.Context, e domain.SavingApproved) (*postingPlan, error) {
	acc, cashCode, err := s.cashAccountCoa(ctx, e.CashAccountID)
	if err != nil {
		return nil, err
	}
	savingCode, err := s.coa.ResolveSavingTypeCoa(e.SavingsType)
	if err != nil {
		return nil, err
	}

	p := &postingPlan{
		description: describe(e.Description, fmt.Sprintf("Saving #%d approved (%s)", e.SavingID, e.SavingsType)),
		date:        e.TransactionDate,
		source:      domain.SourceSavings,
		reference:   &domain.JournalReference{Type: domain.RefSaving, ID: e.SavingID},
	}
	p.debit(cashCode, e.Amount, "")
	p.credit(savingCode, e.Amount, "")
	p.movements = []domain.CashMovement{{CashAccountID: acc.ID, Amount: e.Amount, Direction: domain.BalanceAdd}}
	return p, nil
}

func (s *autoJournalService) planLoan(ctx context.Context, e domain.LoanDisbursed) (*postingPlan, error) {
	acc, cashCode, err := s.cashAccountCoa(ctx, e.CashAccountID)
	if err != nil {
		return nil, err
	}

	p := &postingPlan{
		description: describe(e.Description, fmt.Sprintf("Loan #%d disbursed", e.LoanID)),
		date:        e.TransactionDate,
		source:      domain.SourceLoans,
		reference:   &domain.JournalReference{Type: domain.RefLoan, ID: e.LoanID},
	}
	p.debit(domain.CoaLoanReceivable, e.Principal, "")
	p.credit(cashCode, e.Principal, "")
	p.movements = []domain.CashMovement{{CashAccountID: acc.ID, Amount: e.Principal, Direction: domain.BalanceSubtract}}
	return p, nil
}

func (s *autoJournalService) planInstallment(ctx context.Context, e domain.InstallmentPaid) (*postingPlan, error) {
	total := e.PrincipalAmount.Add(e.InterestAmount)
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: installment #%d has nothing paid", apperrors.ErrValidation, e.InstallmentID)
	}
	acc, cashCode, err := s.cashAccountCoa(ctx, e.CashAccountID)
	if err != nil {
		return nil, err
	}

	p := &postingPlan{
		description: describe(e.Description, fmt.Sprintf("Installment #%d paid for loan #%d", e.InstallmentID, e.LoanID)),
		date:        e.TransactionDate,
		source:      domain.SourceInstallments,
		reference:   &domain.JournalReference{Type: domain.RefInstallment, ID: e.InstallmentID},
	}
	p.debit(cashCode, total, "")
	p.credit(domain.CoaLoanReceivable, e.PrincipalAmount, "Principal")
	p.credit(domain.CoaInterestIncome, e.InterestAmount, "Interest")
	p.movements = []domain.CashMovement{{CashAccountID: acc.ID, Amount: total, Direction: domain.BalanceAdd}}
	return p, nil
}

func (s *autoJournalService) planTransfer(ctx context.Context, e domain.CashTransferApproved) (*postingPlan, error) {
	src, srcCode, err := s.cashAccountCoa(ctx, e.SourceCashAccountID)
	if err != nil {
		return nil, err
	}
	dst, dstCode, err := s.cashAccountCoa(ctx, e.DestinationCashAccountID)
	if err != nil {
		return nil, err
	}

	p := &postingPlan{
		description: describe(e.Description, fmt.Sprintf("Cash transfer #%d from %s to %s", e.TransferID, src.Code, dst.Code)),
		date:        e.TransactionDate,
		source:      domain.SourceCashTransfers,
		reference:   &domain.JournalReference{Type: domain.RefCashTransfer, ID: e.TransferID},
	}
	p.debit(dstCode, e.Amount, "")
	p.credit(srcCode, e.Amount, "")
	p.movements = []domain.CashMovement{
		{CashAccountID: src.ID, Amount: e.Amount, Direction: domain.BalanceSubtract},
		{CashAccountID: dst.ID, Amount: e.Amount, Direction: domain.BalanceAdd},
	}
	return p, nil
}

func (s *autoJournalService) planSalaryDeduction(ctx context.Context, e domain.SalaryDeductionProcessed) (*postingPlan, error) {
	total := e.TotalDeductions()
	if !total.IsPositive() {
		return nil, nil
	}
	principal, interest, err := accounting.SplitLoanPayment(e.LoanDeduction, e.PrincipalPortion, e.InterestPortion)
	if err != nil {
		return nil, err
	}
	acc, cashCode, err := s.kasUmum(ctx)
	if err != nil {
		return nil, err
	}

	p := &postingPlan{
		description: describe(e.Description, fmt.Sprintf("Salary deduction #%d", e.SalaryDeductionID)),
		date:        e.TransactionDate,
		source:      domain.SourceSalaryDeductions,
		reference:   &domain.JournalReference{Type: domain.RefSalaryDeduction, ID: e.SalaryDeductionID},
	}
	p.debit(cashCode, total, "")
	p.credit(domain.CoaLoanReceivable, principal, "Loan principal")
	p.credit(domain.CoaInterestIncome, interest, "Loan interest")
	p.credit(domain.CoaSavingsMandatory, e.SavingsDeduction, "Mandatory saving")
	p.credit(domain.CoaOtherIncome, e.OtherDeductions, "Other deductions")
	p.movements = []domain.CashMovement{{CashAccountID: acc.ID, Amount: total, Direction: domain.BalanceAdd}}
	return p, nil
}

func (s *autoJournalService) planServiceAllowance(ctx context.Context, e domain.ServiceAllowanceProcessed) (*postingPlan, error) {
	if !e.InstallmentPaid.IsPositive() {
		return nil, nil
	}
	principal, interest, err := accounting.SplitLoanPayment(e.InstallmentPaid, e.PrincipalPortion, e.InterestPortion)
	if err != nil {
		return nil, err
	}
	acc, cashCode, err := s.kasUmum(ctx)
	if err != nil {
		return nil, err
	}

	p := &postingPlan{
		description: describe(e.Description, fmt.Sprintf("Service allowance #%d", e.ServiceAllowanceID)),
		date:        e.TransactionDate,
		source:      domain.SourceServiceAllowances,
		reference:   &domain.JournalReference{Type: domain.RefServiceAllowance, ID: e.ServiceAllowanceID},
	}
	p.debit(cashCode, e.InstallmentPaid, "")
	p.credit(domain.CoaLoanReceivable, principal, "Loan principal")
	p.credit(domain.CoaInterestIncome, interest, "Loan interest")
	p.movements = []domain.CashMovement{{CashAccountID: acc.ID, Amount: e.InstallmentPaid, Direction: domain.BalanceAdd}}
	return p, nil
}

func (s *autoJournalService) planEarlySettlement(ctx context.Context, e domain.EarlySettlement) (*postingPlan, error) {
	acc, cashCode, err := s.cashAccountCoa(ctx, e.CashAccountID)
	if err != nil {
		return nil, err
	}

	p := &postingPlan{
		description: describe(e.Description, fmt.Sprintf("Early settlement of loan #%d", e.LoanID)),
		date:        e.TransactionDate,
		source:      domain.SourceLoans,
		reference:   &domain.JournalReference{Type: domain.RefLoan, ID: e.LoanID},
	}
	p.debit(cashCode, e.SettlementAmount, "")
	p.credit(domain.CoaLoanReceivable, e.SettlementAmount, "")
	p.movements = []domain.CashMovement{{CashAccountID: acc.ID, Amount: e.SettlementAmount, Direction: domain.BalanceAdd}}
	return p, nil
}

// resolve looks up every code in the plan. A missing or inactive code aborts the posting.
func (s *autoJournalService) resolve(ctx context.Context, p *postingPlan) (domain.JournalDraft, error) {
	ids := make(map[string]int64, len(p.lines))
	lines := make([]domain.JournalLineDraft, 0, len(p.lines))
	for _, l := range p.lines {
		id, ok := ids[l.code]
		if !ok {
			coa, err := s.coa.Lookup(ctx, l.code)
			if err != nil {
				return domain.JournalDraft{}, err
			}
			id = coa.ID
			ids[l.code] = id
		}
		lines = append(lines, domain.JournalLineDraft{
			ChartOfAccountID: id,
			Debit:            l.debit,
			Credit:           l.credit,
			Description:      l.description,
		})
	}

	return domain.JournalDraft{
		JournalType:     domain.JournalSpecial,
		Description:     p.description,
		TransactionDate: p.date,
		IsAutoGenerated: true,
		IsEditable:      false,
		SourceModule:    p.source,
		Reference:       p.reference,
		Lines:           lines,
	}, nil
}
