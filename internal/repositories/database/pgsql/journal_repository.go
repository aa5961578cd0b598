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
	"github.com/SscSPs/coop_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `id, journal_number, journal_type, description, transaction_date,
	is_locked, is_auto_generated, is_editable, source_module, reference_type, reference_id,
	total_debit, total_credit, locked_at, locked_by,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journals and their details.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.ID, &m.JournalNumber, &m.JournalType, &m.Description, &m.TransactionDate,
		&m.IsLocked, &m.IsAutoGenerated, &m.IsEditable, &m.SourceModule, &m.ReferenceType, &m.ReferenceID,
		&m.TotalDebit, &m.TotalCredit, &m.LockedAt, &m.LockedBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// NextJournalNumber draws the next sequence value for (type, YYYYMM). The upsert
// row-locks the sequence until the surrounding transaction ends, so concurrent
// postings of the same type and month serialize here.
func (r *PgxJournalRepository) NextJournalNumber(ctx context.Context, journalType domain.JournalType, date time.Time) (string, error) {
	period := date.Format("200601")
	query := `
		INSERT INTO journal_sequences (journal_type, period, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (journal_type, period)
		DO UPDATE SET last_value = journal_sequences.last_value + 1
		RETURNING last_value
	`
	var seq int64
	if err := r.conn(ctx).QueryRow(ctx, query, string(journalType), period).Scan(&seq); err != nil {
		return "", apperrors.NewAppError(500, "failed to draw journal number", err)
	}
	return fmt.Sprintf("%s-%s-%05d", journalType.NumberPrefix(), period, seq), nil
}

// SaveJournal inserts the journal header and queues its details in a batch.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal *domain.Journal) error {
	q := r.conn(ctx)
	m := mapping.ToModelJournal(*journal)

	query := `
		INSERT INTO journals (
			journal_number, journal_type, description, transaction_date,
			is_locked, is_auto_generated, is_editable, source_module, reference_type, reference_id,
			total_debit, total_credit, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id
	`
	err := q.QueryRow(ctx, query,
		m.JournalNumber, m.JournalType, m.Description, m.TransactionDate,
		m.IsLocked, m.IsAutoGenerated, m.IsEditable, m.SourceModule, m.ReferenceType, m.ReferenceID,
		m.TotalDebit, m.TotalCredit, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&journal.JournalID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal number %s", apperrors.ErrDuplicate, m.JournalNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal "+m.JournalNumber, err)
	}

	return r.insertDetails(ctx, q, journal)
}

func (r *PgxJournalRepository) insertDetails(ctx context.Context, q querier, journal *domain.Journal) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_details (journal_id, chart_of_account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range journal.Details {
		d := &journal.Details[i]
		d.JournalID = journal.JournalID
		batch.Queue(query, d.JournalID, d.ChartOfAccountID, d.Debit, d.Credit, d.Description).
			QueryRow(func(row pgx.Row) error {
				return row.Scan(&d.DetailID)
			})
	}

	br := q.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert details for journal "+journal.JournalNumber, err)
	}
	return nil
}

// FindJournalByID retrieves a journal with its details.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1`
	return r.findJournal(ctx, query, journalID)
}

// FindJournalByIDForUpdate retrieves a journal and locks its header row.
func (r *PgxJournalRepository) FindJournalByIDForUpdate(ctx context.Context, journalID int64) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE id = $1 FOR UPDATE`
	return r.findJournal(ctx, query, journalID)
}

func (r *PgxJournalRepository) findJournal(ctx context.Context, query string, journalID int64) (*domain.Journal, error) {
	m, err := scanJournal(r.conn(ctx).QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal " + strconv.FormatInt(journalID, 10))
		}
		return nil, fmt.Errorf("error querying journal %d: %w", journalID, err)
	}

	journal := mapping.ToDomainJournal(m)
	details, err := r.findDetails(ctx, journalID)
	if err != nil {
		return nil, err
	}
	journal.Details = details
	return &journal, nil
}

func (r *PgxJournalRepository) findDetails(ctx context.Context, journalID int64) ([]domain.JournalDetail, error) {
	query := `
		SELECT d.id, d.journal_id, d.chart_of_account_id, c.code, c.name, d.debit, d.credit, d.description
		FROM journal_details d
		JOIN chart_of_accounts c ON c.id = d.chart_of_account_id
		WHERE d.journal_id = $1
		ORDER BY d.id
	`
	rows, err := r.conn(ctx).Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("error querying journal details: %w", err)
	}
	defer rows.Close()

	details := []domain.JournalDetail{}
	for rows.Next() {
		var m models.JournalDetail
		if err := rows.Scan(&m.ID, &m.JournalID, &m.ChartOfAccountID, &m.AccountCode, &m.AccountName, &m.Debit, &m.Credit, &m.Description); err != nil {
			return nil, fmt.Errorf("error scanning journal detail: %w", err)
		}
		details = append(details, mapping.ToDomainJournalDetail(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal details: %w", err)
	}
	return details, nil
}

// ListJournals lists journal headers newest first using keyset pagination.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := []any{}
	where := "WHERE TRUE"
	addArg := func(clause string, v any) {
		args = append(args, v)
		where += fmt.Sprintf(" AND "+clause, len(args))
	}

	if filter.From != nil {
		addArg("transaction_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		addArg("transaction_date <= $%d", *filter.To)
	}
	if filter.JournalType != nil {
		addArg("journal_type = $%d", string(*filter.JournalType))
	}
	if filter.SourceModule != nil {
		addArg("source_module = $%d", string(*filter.SourceModule))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastID, err := pagination.DecodeJournalToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, lastDate, lastID)
		where += fmt.Sprintf(" AND (transaction_date, id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query := fmt.Sprintf(`SELECT %s FROM journals %s ORDER BY transaction_date DESC, id DESC LIMIT $%d`, journalColumns, where, len(args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("error scanning journal: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journals: %w", err)
	}

	var next *string
	if len(journals) > limit {
		journals = journals[:limit]
		last := journals[len(journals)-1]
		token := pagination.EncodeJournalToken(last.TransactionDate, last.JournalID)
		next = &token
	}
	return journals, next, nil
}

// ReplaceJournal rewrites the header and swaps every detail row.
func (r *PgxJournalRepository) ReplaceJournal(ctx context.Context, journal *domain.Journal) error {
	q := r.conn(ctx)
	m := mapping.ToModelJournal(*journal)

	query := `
		UPDATE journals
		SET description = $1, transaction_date = $2, total_debit = $3, total_credit = $4,
			last_updated_at = $5, last_updated_by = $6
		WHERE id = $7
	`
	tag, err := q.Exec(ctx, query, m.Description, m.TransactionDate, m.TotalDebit, m.TotalCredit, m.LastUpdatedAt, m.LastUpdatedBy, m.ID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+m.JournalNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + strconv.FormatInt(m.ID, 10))
	}

	if _, err := q.Exec(ctx, `DELETE FROM journal_details WHERE journal_id = $1`, m.ID); err != nil {
		return apperrors.NewAppError(500, "failed to delete details for journal "+m.JournalNumber, err)
	}
	return r.insertDetails(ctx, q, journal)
}

// DeleteJournal deletes the details, then the header.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID int64) error {
	q := r.conn(ctx)
	if _, err := q.Exec(ctx, `DELETE FROM journal_details WHERE journal_id = $1`, journalID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal details", err)
	}
	tag, err := q.Exec(ctx, `DELETE FROM journals WHERE id = $1`, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("journal " + strconv.FormatInt(journalID, 10))
	}
	return nil
}

// LockJournal flips is_locked. The WHERE clause keeps the lock one-directional.
func (r *PgxJournalRepository) LockJournal(ctx context.Context, journalID int64, userID string, lockedAt time.Time) error {
	query := `
		UPDATE journals
		SET is_locked = TRUE, locked_at = $1, locked_by = $2, last_updated_at = $1, last_updated_by = $2
		WHERE id = $3 AND NOT is_locked
	`
	tag, err := r.conn(ctx).Exec(ctx, query, lockedAt, userID, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock journal", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal %d is missing or already locked", apperrors.ErrConflict, journalID)
	}
	return nil
}
