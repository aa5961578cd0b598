package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) *reportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// ledgerWhere renders the filter as a WHERE clause over journals j and chart_of_accounts c.
func ledgerWhere(filter domain.LedgerFilter) (string, []any) {
	args := []any{}
	clauses := []string{"TRUE"}
	add := func(clause string, v any) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.From != nil {
		add("j.transaction_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("j.transaction_date <= $%d", *filter.To)
	}
	if filter.AccountID != nil {
		add("c.id = $%d", *filter.AccountID)
	}
	if len(filter.Categories) > 0 {
		cats := make([]string, len(filter.Categories))
		for i, cat := range filter.Categories {
			cats[i] = string(cat)
		}
		add("c.category = ANY($%d)", cats)
	}
	if len(filter.AccountTypes) > 0 {
		types := make([]string, len(filter.AccountTypes))
		for i, t := range filter.AccountTypes {
			types[i] = strings.ToLower(t)
		}
		add("LOWER(c.account_type) = ANY($%d)", types)
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// SumByAccount retrieves debit and credit totals per account
func (r *reportingRepository) SumByAccount(ctx context.Context, filter domain.LedgerFilter) ([]domain.AccountTotal, error) {
	where, args := ledgerWhere(filter)
	query := `
		SELECT
			c.id, c.code, c.name, c.category, c.account_type, c.is_debit, c.is_active,
			COALESCE(SUM(d.debit), 0) AS total_debit,
			COALESCE(SUM(d.credit), 0) AS total_credit
		FROM journal_details d
		JOIN journals j ON j.id = d.journal_id
		JOIN chart_of_accounts c ON c.id = d.chart_of_account_id
		` + where + `
		GROUP BY c.id, c.code, c.name, c.category, c.account_type, c.is_debit, c.is_active
		ORDER BY c.code
	`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account totals: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountTotal{}
	for rows.Next() {
		var t domain.AccountTotal
		var category string
		if err := rows.Scan(
			&t.Account.ID, &t.Account.Code, &t.Account.Name, &category, &t.Account.AccountType,
			&t.Account.IsDebit, &t.Account.IsActive, &t.Debit, &t.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account total: %w", err)
		}
		t.Account.Category = domain.AccountCategory(category)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals: %w", err)
	}
	return result, nil
}

// SumByAccountAndSource retrieves totals per account and journal source module
func (r *reportingRepository) SumByAccountAndSource(ctx context.Context, filter domain.LedgerFilter) ([]domain.AccountSourceTotal, error) {
	where, args := ledgerWhere(filter)
	query := `
		SELECT
			c.id, c.code, c.name, c.category, c.account_type, c.is_debit, c.is_active,
			COALESCE(NULLIF(j.source_module, ''), 'manual') AS source_module,
			COALESCE(SUM(d.debit), 0) AS total_debit,
			COALESCE(SUM(d.credit), 0) AS total_credit
		FROM journal_details d
		JOIN journals j ON j.id = d.journal_id
		JOIN chart_of_accounts c ON c.id = d.chart_of_account_id
		` + where + `
		GROUP BY c.id, c.code, c.name, c.category, c.account_type, c.is_debit, c.is_active, 8
		ORDER BY c.code, 8
	`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account totals by source: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountSourceTotal{}
	for rows.Next() {
		var t domain.AccountSourceTotal
		var category, source string
		if err := rows.Scan(
			&t.Account.ID, &t.Account.Code, &t.Account.Name, &category, &t.Account.AccountType,
			&t.Account.IsDebit, &t.Account.IsActive, &source, &t.Debit, &t.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account total by source: %w", err)
		}
		t.Account.Category = domain.AccountCategory(category)
		t.SourceModule = domain.SourceModule(source)
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals by source: %w", err)
	}
	return result, nil
}

// ListLedgerLines retrieves matching lines in journal-id, detail-id order
func (r *reportingRepository) ListLedgerLines(ctx context.Context, filter domain.LedgerFilter) ([]domain.LedgerLine, error) {
	where, args := ledgerWhere(filter)
	query := `
		SELECT
			j.id, d.id, j.journal_number, j.transaction_date, j.description, j.source_module,
			c.id, c.code, c.name, c.category, c.account_type, c.is_debit, c.is_active,
			d.debit, d.credit, d.description
		FROM journal_details d
		JOIN journals j ON j.id = d.journal_id
		JOIN chart_of_accounts c ON c.id = d.chart_of_account_id
		` + where + `
		ORDER BY j.id, d.id
	`

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger lines: %w", err)
	}
	defer rows.Close()

	result := []domain.LedgerLine{}
	for rows.Next() {
		var l domain.LedgerLine
		var category, source string
		if err := rows.Scan(
			&l.JournalID, &l.DetailID, &l.JournalNumber, &l.TransactionDate, &l.JournalDescription, &source,
			&l.Account.ID, &l.Account.Code, &l.Account.Name, &category, &l.Account.AccountType, &l.Account.IsDebit, &l.Account.IsActive,
			&l.Debit, &l.Credit, &l.Description,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger line: %w", err)
		}
		l.Account.Category = domain.AccountCategory(category)
		l.SourceModule = domain.SourceModule(source)
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return result, nil
}
