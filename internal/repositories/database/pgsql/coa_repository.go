package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/coop_ledger/internal/models"
	"github.com/SscSPs/coop_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const coaColumns = `id, code, name, category, account_type, is_debit, is_active, description,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxChartOfAccountRepository struct {
	BaseRepository
}

func newPgxChartOfAccountRepository(pool *pgxpool.Pool) *PgxChartOfAccountRepository {
	return &PgxChartOfAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChartOfAccountReader = (*PgxChartOfAccountRepository)(nil)

func scanChartOfAccount(row pgx.Row) (models.ChartOfAccount, error) {
	var m models.ChartOfAccount
	err := row.Scan(
		&m.ID, &m.Code, &m.Name, &m.Category, &m.AccountType, &m.IsDebit, &m.IsActive, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// FindByCode retrieves an account by its code.
func (r *PgxChartOfAccountRepository) FindByCode(ctx context.Context, code string) (*domain.ChartOfAccount, error) {
	query := `SELECT ` + coaColumns + ` FROM chart_of_accounts WHERE code = $1`
	m, err := scanChartOfAccount(r.conn(ctx).QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("chart of account " + code)
		}
		return nil, fmt.Errorf("error querying chart of account %s: %w", code, err)
	}
	coa := mapping.ToDomainChartOfAccount(m)
	return &coa, nil
}

// FindByIDs retrieves the accounts with the given IDs.
func (r *PgxChartOfAccountRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.ChartOfAccount, error) {
	result := make(map[int64]domain.ChartOfAccount, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `SELECT ` + coaColumns + ` FROM chart_of_accounts WHERE id = ANY($1)`
	rows, err := r.conn(ctx).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("error querying chart of accounts by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanChartOfAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chart of account: %w", err)
		}
		result[m.ID] = mapping.ToDomainChartOfAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart of accounts: %w", err)
	}
	return result, nil
}

// ListChartOfAccounts lists accounts ordered by code.
func (r *PgxChartOfAccountRepository) ListChartOfAccounts(ctx context.Context, includeInactive bool) ([]domain.ChartOfAccount, error) {
	query := `SELECT ` + coaColumns + ` FROM chart_of_accounts WHERE ($1 OR is_active) ORDER BY code`
	rows, err := r.conn(ctx).Query(ctx, query, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("error listing chart of accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.ChartOfAccount{}
	for rows.Next() {
		m, err := scanChartOfAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning chart of account: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainChartOfAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chart of accounts: %w", err)
	}
	return accounts, nil
}
