package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/coop_ledger/internal/models"
	"github.com/SscSPs/coop_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const cashAccountColumns = `id, code, name, type, current_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxCashAccountRepository struct {
	BaseRepository
}

func newPgxCashAccountRepository(pool *pgxpool.Pool) *PgxCashAccountRepository {
	return &PgxCashAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashAccountRepository = (*PgxCashAccountRepository)(nil)

func scanCashAccount(row pgx.Row) (models.CashAccount, error) {
	var m models.CashAccount
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.Type, &m.CurrentBalance, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	return m, err
}

func (r *PgxCashAccountRepository) findOne(ctx context.Context, query string, label string, args ...any) (*domain.CashAccount, error) {
	m, err := scanCashAccount(r.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cash account " + label)
		}
		return nil, fmt.Errorf("error querying cash account %s: %w", label, err)
	}
	acc := mapping.ToDomainCashAccount(m)
	return &acc, nil
}

func (r *PgxCashAccountRepository) FindCashAccountByID(ctx context.Context, id int64) (*domain.CashAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts WHERE id = $1`
	return r.findOne(ctx, query, strconv.FormatInt(id, 10), id)
}

// FindCashAccountByIDForUpdate must be called inside a transaction for the lock to be held.
func (r *PgxCashAccountRepository) FindCashAccountByIDForUpdate(ctx context.Context, id int64) (*domain.CashAccount, error) {
	if !inTx(ctx) {
		return nil, apperrors.NewAppError(500, "cash account row lock requires a transaction", apperrors.ErrInternal)
	}
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, query, strconv.FormatInt(id, 10), id)
}

func (r *PgxCashAccountRepository) FindActiveCashAccountByType(ctx context.Context, accountType domain.CashAccountType) (*domain.CashAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts WHERE type = $1 AND is_active ORDER BY id LIMIT 1`
	return r.findOne(ctx, query, "of type "+string(accountType), string(accountType))
}

func (r *PgxCashAccountRepository) ListCashAccounts(ctx context.Context) ([]domain.CashAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts ORDER BY id`
	rows, err := r.conn(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing cash accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.CashAccount{}
	for rows.Next() {
		m, err := scanCashAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning cash account: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainCashAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cash accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxCashAccountRepository) UpdateCashAccountBalance(ctx context.Context, id int64, balance decimal.Decimal, userID string, updatedAt time.Time) error {
	query := `
		UPDATE cash_accounts
		SET current_balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE id = $4
	`
	tag, err := r.conn(ctx).Exec(ctx, query, balance, updatedAt, userID, id)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update cash account balance", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("cash account " + strconv.FormatInt(id, 10))
	}
	return nil
}
