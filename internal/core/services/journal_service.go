package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/SscSPs/coop_ledger/internal/platform/metrics"
	"github.com/SscSPs/coop_ledger/internal/utils/accounting"
)

const defaultJournalPageSize = 20

// journalService provides core journal operations.
type journalService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	journalRepo portsrepo.JournalRepositoryFacade
	coaRepo     portsrepo.ChartOfAccountReader
}

// NewJournalService creates a new JournalService.
func NewJournalService(uow portsrepo.UnitOfWork, journalRepo portsrepo.JournalRepositoryFacade, coaRepo portsrepo.ChartOfAccountReader) portssvc.JournalSvcFacade {
	return &journalService{
		uow:         uow,
		journalRepo: journalRepo,
		coaRepo:     coaRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// prepareLines validates the lines and resolves their accounts. Every account must
// exist and be active. Blank line descriptions inherit the journal description.
func (s *journalService) prepareLines(ctx context.Context, lines []domain.JournalLineDraft, journalDescription string) ([]domain.JournalDetail, error) {
	if _, _, err := accounting.ValidateJournalLines(lines); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ChartOfAccountID)
	}
	accounts, err := s.coaRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for journal lines: %w", err)
	}

	details := make([]domain.JournalDetail, len(lines))
	for i, l := range lines {
		coa, ok := accounts[l.ChartOfAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: line %d references unknown account %d", apperrors.ErrValidation, i+1, l.ChartOfAccountID)
		}
		if !coa.IsActive {
			return nil, fmt.Errorf("%w: line %d references inactive account %s", apperrors.ErrValidation, i+1, coa.Code)
		}
		desc := strings.TrimSpace(l.Description)
		if desc == "" {
			desc = journalDescription
		}
		details[i] = domain.JournalDetail{
			ChartOfAccountID: coa.ID,
			AccountCode:      coa.Code,
			AccountName:      coa.Name,
			Debit:            l.Debit,
			Credit:           l.Credit,
			Description:      desc,
		}
	}
	return details, nil
}

// CreateJournal validates the draft, draws a number and saves header and lines atomically.
func (s *journalService) CreateJournal(ctx context.Context, draft domain.JournalDraft, creatorUserID string) (*domain.Journal, error) {
	if !draft.JournalType.IsValid() {
		return nil, fmt.Errorf("%w: unknown journal type %q", apperrors.ErrValidation, draft.JournalType)
	}
	description := strings.TrimSpace(draft.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}
	if draft.TransactionDate.IsZero() {
		return nil, fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
	}
	source := draft.SourceModule
	if source == "" {
		source = domain.SourceManual
	}

	details, err := s.prepareLines(ctx, draft.Lines, description)
	if err != nil {
		s.LogDebug(ctx, "Rejected journal draft", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.Now()
	journal := &domain.Journal{
		JournalType:     draft.JournalType,
		Description:     description,
		TransactionDate: draft.TransactionDate,
		IsAutoGenerated: draft.IsAutoGenerated,
		IsEditable:      draft.IsEditable,
		SourceModule:    source,
		Reference:       draft.Reference,
		Details:         details,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	journal.TotalDebit, journal.TotalCredit = accounting.CalculateTotals(details)

	err = s.uow.Do(ctx, func(ctx context.Context) error {
		number, err := s.journalRepo.NextJournalNumber(ctx, journal.JournalType, journal.TransactionDate)
		if err != nil {
			return err
		}
		journal.JournalNumber = number
		return s.journalRepo.SaveJournal(ctx, journal)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_type", string(journal.JournalType)))
		return nil, err
	}

	metrics.JournalsPosted.WithLabelValues(string(journal.SourceModule)).Inc()
	s.LogInfo(ctx, "Journal created",
		slog.Int64("journal_id", journal.JournalID),
		slog.String("journal_number", journal.JournalNumber),
		slog.String("source_module", string(journal.SourceModule)),
		slog.String("total", journal.TotalDebit.StringFixed(2)))
	return journal, nil
}

// GetJournalByID retrieves a journal with its lines.
func (s *journalService) GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	return s.journalRepo.FindJournalByID(ctx, journalID)
}

// ListJournals retrieves a page of journal headers.
func (s *journalService) ListJournals(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	filter, err := params.ToFilter()
	if err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultJournalPageSize
	}

	journals, next, err := s.journalRepo.ListJournals(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return dto.ToListJournalsResponse(journals, next), nil
}

// UpdateJournal replaces the description, date and lines of an unlocked, editable journal.
func (s *journalService) UpdateJournal(ctx context.Context, journalID int64, update domain.JournalUpdate, requestingUserID string) (*domain.Journal, error) {
	description := strings.TrimSpace(update.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: journal description is required", apperrors.ErrValidation)
	}
	if update.TransactionDate.IsZero() {
		return nil, fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
	}

	var updated *domain.Journal
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		journal, err := s.journalRepo.FindJournalByIDForUpdate(ctx, journalID)
		if err != nil {
			return err
		}
		if journal.IsLocked {
			return fmt.Errorf("%w: journal %s is locked", apperrors.ErrForbidden, journal.JournalNumber)
		}
		if !journal.IsEditable || journal.IsAutoGenerated {
			return fmt.Errorf("%w: journal %s is not editable", apperrors.ErrForbidden, journal.JournalNumber)
		}

		details, err := s.prepareLines(ctx, update.Lines, description)
		if err != nil {
			return err
		}

		journal.Description = description
		journal.TransactionDate = update.TransactionDate
		journal.Details = details
		journal.TotalDebit, journal.TotalCredit = accounting.CalculateTotals(details)
		journal.LastUpdatedAt = s.Now()
		journal.LastUpdatedBy = requestingUserID

		if err := s.journalRepo.ReplaceJournal(ctx, journal); err != nil {
			return err
		}
		updated = journal
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal updated", slog.Int64("journal_id", journalID), slog.String("user_id", requestingUserID))
	return s.journalRepo.FindJournalByID(ctx, updated.JournalID)
}

// DeleteJournal removes an unlocked journal. Special journals are never deletable.
func (s *journalService) DeleteJournal(ctx context.Context, journalID int64, requestingUserID string) error {
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		journal, err := s.journalRepo.FindJournalByIDForUpdate(ctx, journalID)
		if err != nil {
			return err
		}
		if journal.IsLocked {
			return fmt.Errorf("%w: journal %s is locked", apperrors.ErrForbidden, journal.JournalNumber)
		}
		if journal.JournalType == domain.JournalSpecial {
			return fmt.Errorf("%w: special journal %s cannot be deleted", apperrors.ErrForbidden, journal.JournalNumber)
		}
		return s.journalRepo.DeleteJournal(ctx, journalID)
	})
	if err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal deleted", slog.Int64("journal_id", journalID), slog.String("user_id", requestingUserID))
	return nil
}

// LockJournal makes a journal permanently immutable.
func (s *journalService) LockJournal(ctx context.Context, journalID int64, requestingUserID string) (*domain.Journal, error) {
	err := s.uow.Do(ctx, func(ctx context.Context) error {
		journal, err := s.journalRepo.FindJournalByIDForUpdate(ctx, journalID)
		if err != nil {
			return err
		}
		if journal.IsLocked {
			return fmt.Errorf("%w: journal %s is already locked", apperrors.ErrConflict, journal.JournalNumber)
		}
		return s.journalRepo.LockJournal(ctx, journalID, requestingUserID, s.Now())
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal locked", slog.Int64("journal_id", journalID), slog.String("user_id", requestingUserID))
	return s.journalRepo.FindJournalByID(ctx, journalID)
}
