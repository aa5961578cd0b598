package services

import (
	"context"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/SscSPs/coop_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalByID retrieves a journal with its lines.
	GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// ListJournals retrieves a paginated list of journals.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateJournal validates and persists a balanced journal with a fresh number.
	CreateJournal(ctx context.Context, draft domain.JournalDraft, creatorUserID string) (*domain.Journal, error)

	// UpdateJournal replaces the header fields and every line of an unlocked, editable journal.
	UpdateJournal(ctx context.Context, journalID int64, update domain.JournalUpdate, requestingUserID string) (*domain.Journal, error)

	// DeleteJournal removes an unlocked, non-special journal.
	DeleteJournal(ctx context.Context, journalID int64, requestingUserID string) error

	// LockJournal makes a journal immutable. There is no unlock.
	LockJournal(ctx context.Context, journalID int64, requestingUserID string) (*domain.Journal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
