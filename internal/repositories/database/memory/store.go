// Package memory is an in-process implementation of every repository port.
// It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/coop_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/coop_ledger/internal/utils/accounting"
	"github.com/SscSPs/coop_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type txCtxKey struct{}

type state struct {
	coas      map[int64]domain.ChartOfAccount
	cash      map[int64]domain.CashAccount
	periods   map[int64]domain.AccountingPeriod
	journals  map[int64]domain.Journal
	sequences map[string]int64

	nextCoaID, nextCashID, nextPeriodID, nextJournalID, nextDetailID int64
}

func newState() *state {
	return &state{
		coas:      make(map[int64]domain.ChartOfAccount),
		cash:      make(map[int64]domain.CashAccount),
		periods:   make(map[int64]domain.AccountingPeriod),
		journals:  make(map[int64]domain.Journal),
		sequences: make(map[string]int64),
	}
}

func (s *state) clone() *state {
	c := *s
	c.coas = make(map[int64]domain.ChartOfAccount, len(s.coas))
	for k, v := range s.coas {
		c.coas[k] = v
	}
	c.cash = make(map[int64]domain.CashAccount, len(s.cash))
	for k, v := range s.cash {
		c.cash[k] = v
	}
	c.periods = make(map[int64]domain.AccountingPeriod, len(s.periods))
	for k, v := range s.periods {
		c.periods[k] = v
	}
	c.journals = make(map[int64]domain.Journal, len(s.journals))
	for k, v := range s.journals {
		c.journals[k] = copyJournal(v)
	}
	c.sequences = make(map[string]int64, len(s.sequences))
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	return &c
}

func copyJournal(j domain.Journal) domain.Journal {
	j.Details = append([]domain.JournalDetail(nil), j.Details...)
	if j.Reference != nil {
		ref := *j.Reference
		j.Reference = &ref
	}
	return j
}

// Store keeps all ledger data in memory. Units of work are serialized and roll
// back by restoring a snapshot taken when they began.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state
}

var (
	_ portsrepo.UnitOfWork              = (*Store)(nil)
	_ portsrepo.ChartOfAccountReader    = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade = (*Store)(nil)
	_ portsrepo.CashAccountRepository   = (*Store)(nil)
	_ portsrepo.PeriodReader            = (*Store)(nil)
	_ portsrepo.ReportingRepository     = (*Store)(nil)
)

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

// NewSeededStore returns a store holding the default chart and cash accounts.
func NewSeededStore() *Store {
	s := NewStore()
	for _, coa := range domain.DefaultChart {
		s.AddChartOfAccount(coa)
	}
	for _, acc := range domain.DefaultCashAccounts {
		s.AddCashAccount(acc)
	}
	return s
}

// Provider exposes the store through every repository port.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UnitOfWork:      s,
		ChartOfAccounts: s,
		JournalRepo:     s,
		CashAccountRepo: s,
		PeriodRepo:      s,
		ReportingRepo:   s,
	}
}

// Do runs fn as a serialized unit of work, restoring the prior state if fn fails.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txCtxKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// AddChartOfAccount inserts coa with a fresh ID and returns the stored copy.
func (s *Store) AddChartOfAccount(coa domain.ChartOfAccount) domain.ChartOfAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.nextCoaID++
	coa.ID = s.data.nextCoaID
	s.data.coas[coa.ID] = coa
	return coa
}

// SetChartOfAccountActive toggles the active flag of the account with code.
func (s *Store) SetChartOfAccountActive(code string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, coa := range s.data.coas {
		if coa.Code == code {
			coa.IsActive = active
			s.data.coas[id] = coa
			return nil
		}
	}
	return apperrors.NewNotFoundError("chart of account " + code)
}

// RemoveChartOfAccount deletes the account with code, simulating an unseeded chart.
func (s *Store) RemoveChartOfAccount(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, coa := range s.data.coas {
		if coa.Code == code {
			delete(s.data.coas, id)
		}
	}
}

// AddCashAccount inserts acc with a fresh ID and returns the stored copy.
func (s *Store) AddCashAccount(acc domain.CashAccount) domain.CashAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.nextCashID++
	acc.ID = s.data.nextCashID
	s.data.cash[acc.ID] = acc
	return acc
}

// AddPeriod inserts an accounting period with a fresh ID.
func (s *Store) AddPeriod(p domain.AccountingPeriod) domain.AccountingPeriod {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.nextPeriodID++
	p.ID = s.data.nextPeriodID
	s.data.periods[p.ID] = p
	return p
}

// InsertJournalUnchecked stores j as given, without balance checks or numbering.
// It exists to load legacy or corrupt data for reconciliation.
func (s *Store) InsertJournalUnchecked(j domain.Journal) domain.Journal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertJournal(&j)
	return copyJournal(j)
}

func (s *Store) insertJournal(j *domain.Journal) {
	s.data.nextJournalID++
	j.JournalID = s.data.nextJournalID
	for i := range j.Details {
		s.data.nextDetailID++
		j.Details[i].DetailID = s.data.nextDetailID
		j.Details[i].JournalID = j.JournalID
	}
	s.data.journals[j.JournalID] = copyJournal(*j)
}

// --- chart of accounts ---

func (s *Store) FindByCode(_ context.Context, code string) (*domain.ChartOfAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, coa := range s.data.coas {
		if coa.Code == code {
			c := coa
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFoundError("chart of account " + code)
}

func (s *Store) FindByIDs(_ context.Context, ids []int64) (map[int64]domain.ChartOfAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[int64]domain.ChartOfAccount, len(ids))
	for _, id := range ids {
		if coa, ok := s.data.coas[id]; ok {
			result[id] = coa
		}
	}
	return result, nil
}

func (s *Store) ListChartOfAccounts(_ context.Context, includeInactive bool) ([]domain.ChartOfAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.ChartOfAccount{}
	for _, coa := range s.data.coas {
		if includeInactive || coa.IsActive {
			result = append(result, coa)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

// --- cash accounts ---

func (s *Store) FindCashAccountByID(_ context.Context, id int64) (*domain.CashAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.data.cash[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("cash account " + strconv.FormatInt(id, 10))
	}
	return &acc, nil
}

// FindCashAccountByIDForUpdate needs a unit of work; the serialized Do is the lock.
func (s *Store) FindCashAccountByIDForUpdate(ctx context.Context, id int64) (*domain.CashAccount, error) {
	if ctx.Value(txCtxKey{}) == nil {
		return nil, apperrors.NewAppError(500, "cash account row lock requires a transaction", apperrors.ErrInternal)
	}
	return s.FindCashAccountByID(ctx, id)
}

func (s *Store) FindActiveCashAccountByType(_ context.Context, accountType domain.CashAccountType) (*domain.CashAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.CashAccount
	for _, acc := range s.data.cash {
		if acc.Type != accountType || !acc.IsActive {
			continue
		}
		if found == nil || acc.ID < found.ID {
			a := acc
			found = &a
		}
	}
	if found == nil {
		return nil, apperrors.NewNotFoundError("cash account of type " + string(accountType))
	}
	return found, nil
}

func (s *Store) ListCashAccounts(_ context.Context) ([]domain.CashAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.CashAccount, 0, len(s.data.cash))
	for _, acc := range s.data.cash {
		result = append(result, acc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpdateCashAccountBalance(_ context.Context, id int64, balance decimal.Decimal, userID string, updatedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.data.cash[id]
	if !ok {
		return apperrors.NewNotFoundError("cash account " + strconv.FormatInt(id, 10))
	}
	acc.CurrentBalance = balance
	acc.LastUpdatedAt = updatedAt
	acc.LastUpdatedBy = userID
	s.data.cash[id] = acc
	return nil
}

// --- periods ---

func (s *Store) FindPeriodByID(_ context.Context, periodID int64) (*domain.AccountingPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data.periods[periodID]
	if !ok {
		return nil, apperrors.NewNotFoundError("accounting period " + strconv.FormatInt(periodID, 10))
	}
	return &p, nil
}

func (s *Store) ListPeriods(_ context.Context) ([]domain.AccountingPeriod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.AccountingPeriod, 0, len(s.data.periods))
	for _, p := range s.data.periods {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

// --- journals ---

func (s *Store) NextJournalNumber(_ context.Context, journalType domain.JournalType, date time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	period := date.Format("200601")
	key := string(journalType) + "|" + period
	s.data.sequences[key]++
	return fmt.Sprintf("%s-%s-%05d", journalType.NumberPrefix(), period, s.data.sequences[key]), nil
}

func (s *Store) SaveJournal(_ context.Context, journal *domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.data.journals {
		if existing.JournalNumber == journal.JournalNumber {
			return fmt.Errorf("%w: journal number %s", apperrors.ErrDuplicate, journal.JournalNumber)
		}
	}
	s.insertJournal(journal)
	return nil
}

func (s *Store) FindJournalByID(_ context.Context, journalID int64) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.data.journals[journalID]
	if !ok {
		return nil, apperrors.NewNotFoundError("journal " + strconv.FormatInt(journalID, 10))
	}
	out := s.withAccounts(copyJournal(j))
	return &out, nil
}

func (s *Store) FindJournalByIDForUpdate(ctx context.Context, journalID int64) (*domain.Journal, error) {
	return s.FindJournalByID(ctx, journalID)
}

// withAccounts fills in account code and name the way the SQL join does.
func (s *Store) withAccounts(j domain.Journal) domain.Journal {
	for i, d := range j.Details {
		if coa, ok := s.data.coas[d.ChartOfAccountID]; ok {
			j.Details[i].AccountCode = coa.Code
			j.Details[i].AccountName = coa.Name
		}
	}
	return j
}

func (s *Store) ListJournals(_ context.Context, filter domain.JournalFilter, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	var (
		afterDate time.Time
		afterID   int64
		keyset    bool
	)
	if nextToken != nil && *nextToken != "" {
		d, id, err := pagination.DecodeJournalToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		afterDate, afterID, keyset = d, id, true
	}

	s.mu.RLock()
	matched := []domain.Journal{}
	for _, j := range s.data.journals {
		if filter.From != nil && j.TransactionDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && j.TransactionDate.After(*filter.To) {
			continue
		}
		if filter.JournalType != nil && j.JournalType != *filter.JournalType {
			continue
		}
		if filter.SourceModule != nil && j.SourceModule != *filter.SourceModule {
			continue
		}
		if keyset && !journalBefore(j, afterDate, afterID) {
			continue
		}
		h := j
		h.Details = nil
		matched = append(matched, h)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, k int) bool {
		return journalBefore(matched[k], matched[i].TransactionDate, matched[i].JournalID)
	})

	var next *string
	if len(matched) > limit {
		matched = matched[:limit]
		last := matched[len(matched)-1]
		token := pagination.EncodeJournalToken(last.TransactionDate, last.JournalID)
		next = &token
	}
	return matched, next, nil
}

// journalBefore reports whether (j.date, j.id) sorts strictly before (date, id).
func journalBefore(j domain.Journal, date time.Time, id int64) bool {
	jd := j.TransactionDate.Truncate(24 * time.Hour)
	date = date.Truncate(24 * time.Hour)
	if jd.Equal(date) {
		return j.JournalID < id
	}
	return jd.Before(date)
}

func (s *Store) ReplaceJournal(_ context.Context, journal *domain.Journal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.data.journals[journal.JournalID]
	if !ok {
		return apperrors.NewNotFoundError("journal " + strconv.FormatInt(journal.JournalID, 10))
	}
	existing.Description = journal.Description
	existing.TransactionDate = journal.TransactionDate
	existing.TotalDebit, existing.TotalCredit = accounting.CalculateTotals(journal.Details)
	existing.LastUpdatedAt = journal.LastUpdatedAt
	existing.LastUpdatedBy = journal.LastUpdatedBy
	existing.Details = nil
	for _, d := range journal.Details {
		s.data.nextDetailID++
		d.DetailID = s.data.nextDetailID
		d.JournalID = existing.JournalID
		existing.Details = append(existing.Details, d)
	}
	s.data.journals[existing.JournalID] = existing
	journal.Details = append([]domain.JournalDetail(nil), existing.Details...)
	return nil
}

func (s *Store) DeleteJournal(_ context.Context, journalID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data.journals[journalID]; !ok {
		return apperrors.NewNotFoundError("journal " + strconv.FormatInt(journalID, 10))
	}
	delete(s.data.journals, journalID)
	return nil
}

func (s *Store) LockJournal(_ context.Context, journalID int64, userID string, lockedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.data.journals[journalID]
	if !ok || j.IsLocked {
		return fmt.Errorf("%w: journal %d is missing or already locked", apperrors.ErrConflict, journalID)
	}
	j.IsLocked = true
	j.LockedAt = &lockedAt
	j.LockedBy = &userID
	j.LastUpdatedAt = lockedAt
	j.LastUpdatedBy = userID
	s.data.journals[journalID] = j
	return nil
}

// --- reporting ---

func matchesLedger(filter domain.LedgerFilter, j domain.Journal, coa domain.ChartOfAccount) bool {
	if filter.From != nil && j.TransactionDate.Before(*filter.From) {
		return false
	}
	if filter.To != nil && j.TransactionDate.After(*filter.To) {
		return false
	}
	if filter.AccountID != nil && coa.ID != *filter.AccountID {
		return false
	}
	if len(filter.Categories) > 0 {
		found := false
		for _, c := range filter.Categories {
			if coa.Category == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(filter.AccountTypes) > 0 {
		found := false
		for _, t := range filter.AccountTypes {
			if strings.EqualFold(coa.AccountType, t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ledgerLines returns matching lines ordered by journal ID then detail ID. Callers hold mu.
func (s *Store) ledgerLines(filter domain.LedgerFilter) []domain.LedgerLine {
	ids := make([]int64, 0, len(s.data.journals))
	for id := range s.data.journals {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := []domain.LedgerLine{}
	for _, id := range ids {
		j := s.data.journals[id]
		details := append([]domain.JournalDetail(nil), j.Details...)
		sort.Slice(details, func(a, b int) bool { return details[a].DetailID < details[b].DetailID })
		for _, d := range details {
			coa, ok := s.data.coas[d.ChartOfAccountID]
			if !ok || !matchesLedger(filter, j, coa) {
				continue
			}
			lines = append(lines, domain.LedgerLine{
				JournalID:          j.JournalID,
				DetailID:           d.DetailID,
				JournalNumber:      j.JournalNumber,
				TransactionDate:    j.TransactionDate,
				JournalDescription: j.Description,
				SourceModule:       j.SourceModule,
				Account:            coa,
				Debit:              d.Debit,
				Credit:             d.Credit,
				Description:        d.Description,
			})
		}
	}
	return lines
}

func (s *Store) ListLedgerLines(_ context.Context, filter domain.LedgerFilter) ([]domain.LedgerLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledgerLines(filter), nil
}

func (s *Store) SumByAccount(_ context.Context, filter domain.LedgerFilter) ([]domain.AccountTotal, error) {
	s.mu.RLock()
	lines := s.ledgerLines(filter)
	s.mu.RUnlock()

	byID := make(map[int64]*domain.AccountTotal)
	for _, l := range lines {
		t, ok := byID[l.Account.ID]
		if !ok {
			t = &domain.AccountTotal{Account: l.Account, Debit: decimal.Zero, Credit: decimal.Zero}
			byID[l.Account.ID] = t
		}
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
	}

	result := make([]domain.AccountTotal, 0, len(byID))
	for _, t := range byID {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Account.Code < result[j].Account.Code })
	return result, nil
}

func (s *Store) SumByAccountAndSource(_ context.Context, filter domain.LedgerFilter) ([]domain.AccountSourceTotal, error) {
	s.mu.RLock()
	lines := s.ledgerLines(filter)
	s.mu.RUnlock()

	type key struct {
		id     int64
		source domain.SourceModule
	}
	byKey := make(map[key]*domain.AccountSourceTotal)
	for _, l := range lines {
		source := l.SourceModule
		if source == "" {
			source = domain.SourceManual
		}
		k := key{l.Account.ID, source}
		t, ok := byKey[k]
		if !ok {
			t = &domain.AccountSourceTotal{
				AccountTotal: domain.AccountTotal{Account: l.Account, Debit: decimal.Zero, Credit: decimal.Zero},
				SourceModule: source,
			}
			byKey[k] = t
		}
		t.Debit = t.Debit.Add(l.Debit)
		t.Credit = t.Credit.Add(l.Credit)
	}

	result := make([]domain.AccountSourceTotal, 0, len(byKey))
	for _, t := range byKey {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Account.Code != result[j].Account.Code {
			return result[i].Account.Code < result[j].Account.Code
		}
		return result[i].SourceModule < result[j].SourceModule
	})
	return result, nil
}
