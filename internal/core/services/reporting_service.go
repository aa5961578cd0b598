package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/platform/metrics"
	"github.com/SscSPs/coop_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var balanceTolerance = decimal.NewFromFloat(0.01)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	periodRepo    portsrepo.PeriodReader
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, periodRepo portsrepo.PeriodReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		periodRepo:    periodRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func checkRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", apperrors.ErrValidation)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end date %s is before start date %s", apperrors.ErrValidation,
			end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return nil
}

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time, periodID *int64) (*domain.TrialBalanceReport, error) {
	defer metrics.ObserveReport("trial_balance", time.Now())

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	filter := domain.LedgerFilter{To: &asOf}

	if periodID != nil {
		period, err := s.periodRepo.FindPeriodByID(ctx, *periodID)
		if err != nil {
			return nil, err
		}
		report.Period = period
		end := period.EndDate
		if asOf.Before(end) {
			end = asOf
		}
		filter.From = &period.StartDate
		filter.To = &end
	}

	totals, err := s.reportingRepo.SumByAccount(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	for _, t := range totals {
		row := domain.TrialBalanceRow{
			AccountID:     t.Account.ID,
			AccountCode:   t.Account.Code,
			AccountName:   t.Account.Name,
			Category:      t.Account.Category,
			TotalDebit:    t.Debit,
			TotalCredit:   t.Credit,
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}
		net := t.Debit.Sub(t.Credit)
		switch net.Sign() {
		case 1:
			row.DebitBalance = net
		case -1:
			row.CreditBalance = net.Neg()
		}
		report.TotalDebit = report.TotalDebit.Add(row.DebitBalance)
		report.TotalCredit = report.TotalCredit.Add(row.CreditBalance)
		report.Rows = append(report.Rows, row)
	}

	report.Difference = report.TotalDebit.Sub(report.TotalCredit)
	report.IsBalanced = report.TotalDebit.Round(2).Equal(report.TotalCredit.Round(2))
	if !report.IsBalanced {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("asOf", asOf.Format(time.DateOnly)),
			slog.String("difference", report.Difference.StringFixed(2)))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(report.Rows)))
	return report, nil
}

// GeneralLedger lists each account's lines with a running balance in journal-id order
func (s *reportingService) GeneralLedger(ctx context.Context, startDate, endDate time.Time, accountID *int64) (*domain.GeneralLedgerReport, error) {
	defer metrics.ObserveReport("general_ledger", time.Now())
	if err := checkRange(startDate, endDate); err != nil {
		return nil, err
	}

	lines, err := s.reportingRepo.ListLedgerLines(ctx, domain.LedgerFilter{From: &startDate, To: &endDate, AccountID: accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve ledger lines: %w", err)
	}

	report := &domain.GeneralLedgerReport{StartDate: startDate, EndDate: endDate, Accounts: []domain.GeneralLedgerAccount{}}
	index := make(map[int64]int)
	for _, l := range lines {
		i, ok := index[l.Account.ID]
		if !ok {
			report.Accounts = append(report.Accounts, domain.GeneralLedgerAccount{
				AccountID:     l.Account.ID,
				AccountCode:   l.Account.Code,
				AccountName:   l.Account.Name,
				Category:      l.Account.Category,
				Entries:       []domain.GeneralLedgerEntry{},
				TotalDebit:    decimal.Zero,
				TotalCredit:   decimal.Zero,
				EndingBalance: decimal.Zero,
			})
			i = len(report.Accounts) - 1
			index[l.Account.ID] = i
		}

		acc := &report.Accounts[i]
		acc.EndingBalance = acc.EndingBalance.Add(l.Debit).Sub(l.Credit)
		acc.TotalDebit = acc.TotalDebit.Add(l.Debit)
		acc.TotalCredit = acc.TotalCredit.Add(l.Credit)

		desc := l.Description
		if desc == "" {
			desc = l.JournalDescription
		}
		acc.Entries = append(acc.Entries, domain.GeneralLedgerEntry{
			JournalID:       l.JournalID,
			DetailID:        l.DetailID,
			JournalNumber:   l.JournalNumber,
			TransactionDate: l.TransactionDate,
			Description:     desc,
			Debit:           l.Debit,
			Credit:          l.Credit,
			RunningBalance:  acc.EndingBalance,
		})
	}

	sort.Slice(report.Accounts, func(i, j int) bool {
		return report.Accounts[i].AccountCode < report.Accounts[j].AccountCode
	})
	return report, nil
}

// incomeStatement computes revenue and expense balances over the filter range.
func (s *reportingService) incomeStatement(ctx context.Context, from, to *time.Time) ([]domain.AccountBalance, []domain.AccountBalance, domain.IncomeStatementSummary, error) {
	revenue, expenses := []domain.AccountBalance{}, []domain.AccountBalance{}
	summary := domain.IncomeStatementSummary{
		TotalRevenue:    decimal.Zero,
		TotalExpenses:   decimal.Zero,
		NetIncome:       decimal.Zero,
		OperatingMargin: decimal.Zero,
	}

	totals, err := s.reportingRepo.SumByAccount(ctx, domain.LedgerFilter{
		From:       from,
		To:         to,
		Categories: []domain.AccountCategory{domain.CategoryRevenue, domain.CategoryExpenses},
	})
	if err != nil {
		return nil, nil, summary, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	for _, t := range totals {
		b := domain.AccountBalance{
			AccountID:   t.Account.ID,
			AccountCode: t.Account.Code,
			AccountName: t.Account.Name,
			AccountType: t.Account.AccountType,
		}
		if t.Account.Category == domain.CategoryRevenue {
			b.Balance = accounting.NormalBalance(false, t.Debit, t.Credit)
			summary.TotalRevenue = summary.TotalRevenue.Add(b.Balance)
			revenue = append(revenue, b)
		} else {
			b.Balance = accounting.NormalBalance(true, t.Debit, t.Credit)
			summary.TotalExpenses = summary.TotalExpenses.Add(b.Balance)
			expenses = append(expenses, b)
		}
	}

	summary.NetIncome = summary.TotalRevenue.Sub(summary.TotalExpenses)
	summary.OperatingMargin = accounting.OperatingMargin(summary.NetIncome, summary.TotalRevenue)
	return revenue, expenses, summary, nil
}

// IncomeStatement reports revenue and expenses over a range, optionally against the preceding period
func (s *reportingService) IncomeStatement(ctx context.Context, startDate, endDate time.Time, compare bool) (*domain.IncomeStatementReport, error) {
	defer metrics.ObserveReport("income_statement", time.Now())
	if err := checkRange(startDate, endDate); err != nil {
		return nil, err
	}

	revenue, expenses, summary, err := s.incomeStatement(ctx, &startDate, &endDate)
	if err != nil {
		return nil, err
	}
	report := &domain.IncomeStatementReport{
		StartDate: startDate,
		EndDate:   endDate,
		Revenue:   revenue,
		Expenses:  expenses,
		Summary:   summary,
	}

	if compare {
		days := int(endDate.Sub(startDate).Round(24*time.Hour).Hours() / 24)
		prevEnd := startDate.AddDate(0, 0, -1)
		prevStart := prevEnd.AddDate(0, 0, -days)

		_, _, prev, err := s.incomeStatement(ctx, &prevStart, &prevEnd)
		if err != nil {
			return nil, err
		}
		change := summary.NetIncome.Sub(prev.NetIncome)
		report.Comparison = &domain.IncomeStatementComparison{
			PreviousStartDate: prevStart,
			PreviousEndDate:   prevEnd,
			Previous:          prev,
			NetIncomeChange:   change,
			PercentageChange:  accounting.PercentageChange(summary.NetIncome, prev.NetIncome),
			RevenueChange:     summary.TotalRevenue.Sub(prev.TotalRevenue),
			ExpenseChange:     summary.TotalExpenses.Sub(prev.TotalExpenses),
			Trend:             accounting.TrendOf(change),
		}
	}

	s.LogInfo(ctx, "Income statement generated successfully",
		slog.String("from", startDate.Format(time.DateOnly)),
		slog.String("to", endDate.Format(time.DateOnly)),
		slog.String("net_income", summary.NetIncome.StringFixed(2)))
	return report, nil
}

// BalanceSheet reports financial position as of a date with net income folded into equity.
// Net income is cumulative from the first journal up to asOf, since no closing journals move it into retained earnings.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	defer metrics.ObserveReport("balance_sheet", time.Now())

	totals, err := s.reportingRepo.SumByAccount(ctx, domain.LedgerFilter{
		To:         &asOf,
		Categories: []domain.AccountCategory{domain.CategoryAssets, domain.CategoryLiabilities, domain.CategoryEquity},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet data", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:        asOf,
		Assets:      domain.BalanceSheetSection{Accounts: []domain.AccountBalance{}, Total: decimal.Zero},
		Liabilities: domain.BalanceSheetSection{Accounts: []domain.AccountBalance{}, Total: decimal.Zero},
		Equity:      domain.BalanceSheetSection{Accounts: []domain.AccountBalance{}, Total: decimal.Zero},
	}
	for _, t := range totals {
		b := domain.AccountBalance{
			AccountID:   t.Account.ID,
			AccountCode: t.Account.Code,
			AccountName: t.Account.Name,
			AccountType: t.Account.AccountType,
			Balance:     accounting.NormalBalance(t.Account.IsDebit, t.Debit, t.Credit),
		}
		var section *domain.BalanceSheetSection
		switch t.Account.Category {
		case domain.CategoryAssets:
			section = &report.Assets
		case domain.CategoryLiabilities:
			section = &report.Liabilities
		default:
			section = &report.Equity
		}
		section.Accounts = append(section.Accounts, b)
		// Contra accounts carry the opposite normal side of their section.
		if t.Account.IsDebit == t.Account.Category.DefaultIsDebit() {
			section.Total = section.Total.Add(b.Balance)
		} else {
			section.Total = section.Total.Sub(b.Balance)
		}
	}

	_, _, income, err := s.incomeStatement(ctx, nil, &asOf)
	if err != nil {
		return nil, err
	}

	sum := &report.Summary
	sum.TotalAssets = report.Assets.Total
	sum.TotalLiabilities = report.Liabilities.Total
	sum.TotalEquity = report.Equity.Total
	sum.NetIncome = income.NetIncome
	sum.TotalEquityWithIncome = sum.TotalEquity.Add(sum.NetIncome)
	sum.TotalLiabilitiesAndEquity = sum.TotalLiabilities.Add(sum.TotalEquityWithIncome)
	sum.Difference = sum.TotalAssets.Sub(sum.TotalLiabilitiesAndEquity)
	sum.IsBalanced = sum.Difference.Abs().LessThan(balanceTolerance)

	if !sum.IsBalanced {
		s.GetLogger(ctx).Warn("Balance sheet does not balance",
			slog.String("asOf", asOf.Format(time.DateOnly)),
			slog.String("difference", sum.Difference.StringFixed(2)))
	}
	return report, nil
}

// CashFlow summarizes movement through cash and bank accounts, broken down by source module
func (s *reportingService) CashFlow(ctx context.Context, startDate, endDate time.Time) (*domain.CashFlowReport, error) {
	defer metrics.ObserveReport("cash_flow", time.Now())
	if err := checkRange(startDate, endDate); err != nil {
		return nil, err
	}

	totals, err := s.reportingRepo.SumByAccountAndSource(ctx, domain.LedgerFilter{
		From:         &startDate,
		To:           &endDate,
		AccountTypes: []string{domain.AccountTypeCash, domain.AccountTypeBank},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cash flow data: %w", err)
	}

	report := &domain.CashFlowReport{
		StartDate:    startDate,
		EndDate:      endDate,
		Accounts:     []domain.CashFlowAccount{},
		TotalCashIn:  decimal.Zero,
		TotalCashOut: decimal.Zero,
		NetFlow:      decimal.Zero,
	}
	index := make(map[int64]int)
	for _, t := range totals {
		i, ok := index[t.Account.ID]
		if !ok {
			report.Accounts = append(report.Accounts, domain.CashFlowAccount{
				AccountID:   t.Account.ID,
				AccountCode: t.Account.Code,
				AccountName: t.Account.Name,
				CashIn:      decimal.Zero,
				CashOut:     decimal.Zero,
				NetFlow:     decimal.Zero,
				BySource:    []domain.CashFlowSource{},
			})
			i = len(report.Accounts) - 1
			index[t.Account.ID] = i
		}

		source := t.SourceModule
		if source == "" {
			source = domain.SourceManual
		}
		acc := &report.Accounts[i]
		acc.BySource = append(acc.BySource, domain.CashFlowSource{
			SourceModule: source,
			CashIn:       t.Debit,
			CashOut:      t.Credit,
			NetFlow:      t.Debit.Sub(t.Credit),
		})
		acc.CashIn = acc.CashIn.Add(t.Debit)
		acc.CashOut = acc.CashOut.Add(t.Credit)
		acc.NetFlow = acc.CashIn.Sub(acc.CashOut)

		report.TotalCashIn = report.TotalCashIn.Add(t.Debit)
		report.TotalCashOut = report.TotalCashOut.Add(t.Credit)
	}
	report.NetFlow = report.TotalCashIn.Sub(report.TotalCashOut)
	return report, nil
}
