// Package seed loads the reference chart of accounts and cash accounts.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
)

const (
	insertChartOfAccount = `INSERT INTO chart_of_accounts (code, name, category, account_type, is_debit, is_active, created_by, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (code) DO NOTHING`

	insertCashAccount = `INSERT INTO cash_accounts (code, name, type, current_balance, is_active, created_by, last_updated_by)
		VALUES ($1, $2, $3, 0, $4, $5, $5)
		ON CONFLICT (code) DO NOTHING`
)

// Result counts the rows actually inserted. Existing codes are left untouched.
type Result struct {
	ChartOfAccounts int64
	CashAccounts    int64
}

// Run seeds chart and cash accounts in one transaction. It is idempotent.
func Run(ctx context.Context, db *sql.DB, chart []domain.ChartOfAccount, cash []domain.CashAccount, userID string, logger *slog.Logger) (Result, error) {
	var res Result

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, coa := range chart {
		r, err := tx.ExecContext(ctx, insertChartOfAccount,
			coa.Code, coa.Name, string(coa.Category), coa.AccountType, coa.IsDebit, coa.IsActive, userID)
		if err != nil {
			return res, fmt.Errorf("failed to seed chart of account %s: %w", coa.Code, err)
		}
		n, _ := r.RowsAffected()
		res.ChartOfAccounts += n
	}

	for _, acc := range cash {
		r, err := tx.ExecContext(ctx, insertCashAccount, acc.Code, acc.Name, string(acc.Type), acc.IsActive, userID)
		if err != nil {
			return res, fmt.Errorf("failed to seed cash account %s: %w", acc.Code, err)
		}
		n, _ := r.RowsAffected()
		res.CashAccounts += n
	}

	if err := tx.Commit(); err != nil {
		return res, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	logger.Info("Seed completed",
		slog.Int64("chart_of_accounts", res.ChartOfAccounts),
		slog.Int64("cash_accounts", res.CashAccounts))
	return res, nil
}

// Defaults seeds domain.DefaultChart and domain.DefaultCashAccounts.
func Defaults(ctx context.Context, db *sql.DB, logger *slog.Logger) (Result, error) {
	return Run(ctx, db, domain.DefaultChart, domain.DefaultCashAccounts, "system", logger)
}
