package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalByID retrieves a journal with its details.
	FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// ListJournals retrieves a page of journal headers, newest transaction date first.
	// It returns the journals, a token for the next page, and an error.
	ListJournals(ctx context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.Journal, *string, error)
}

// JournalWriter defines write operations for journal data. Callers run these inside a UnitOfWork.
type JournalWriter interface {
	// NextJournalNumber draws the next number for the journal type in the month of date.
	NextJournalNumber(ctx context.Context, journalType domain.JournalType, date time.Time) (string, error)

	// SaveJournal inserts the header and details and fills in the generated IDs.
	SaveJournal(ctx context.Context, journal *domain.Journal) error

	// FindJournalByIDForUpdate loads the journal header and locks its row.
	FindJournalByIDForUpdate(ctx context.Context, journalID int64) (*domain.Journal, error)

	// ReplaceJournal rewrites the header and replaces all details.
	ReplaceJournal(ctx context.Context, journal *domain.Journal) error

	// DeleteJournal removes the details, then the header.
	DeleteJournal(ctx context.Context, journalID int64) error

	LockJournal(ctx context.Context, journalID int64, userID string, lockedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
