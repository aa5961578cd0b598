package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PeriodReader = (*PgxPeriodRepository)(nil)

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID int64) (*domain.AccountingPeriod, error) {
	query := `SELECT id, name, start_date, end_date, is_closed FROM accounting_periods WHERE id = $1`
	var p domain.AccountingPeriod
	err := r.conn(ctx).QueryRow(ctx, query, periodID).Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.IsClosed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("accounting period " + strconv.FormatInt(periodID, 10))
		}
		return nil, fmt.Errorf("error querying accounting period: %w", err)
	}
	return &p, nil
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.AccountingPeriod, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT id, name, start_date, end_date, is_closed FROM accounting_periods ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing accounting periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		var p domain.AccountingPeriod
		if err := rows.Scan(&p.ID, &p.Name, &p.StartDate, &p.EndDate, &p.IsClosed); err != nil {
			return nil, fmt.Errorf("error scanning accounting period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}
