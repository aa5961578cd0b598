package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/coop_ledger/internal/apperrors"
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// JournalLineRequest is one line of a manual journal.
type JournalLineRequest struct {
	ChartOfAccountID int64           `json:"chartOfAccountID" binding:"required,gt=0"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      string          `json:"description" binding:"max=255"`
}

// CreateJournalRequest is the payload for a manual journal.
type CreateJournalRequest struct {
	JournalType     domain.JournalType   `json:"journalType" binding:"required,oneof=general adjustment closing opening"`
	Description     string               `json:"description" binding:"required,max=500"`
	TransactionDate string               `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalRequest replaces a journal's header and lines.
type UpdateJournalRequest struct {
	Description     string               `json:"description" binding:"required,max=500"`
	TransactionDate string               `json:"transactionDate" binding:"required,datetime=2006-01-02"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

func toLineDrafts(lines []JournalLineRequest) []domain.JournalLineDraft {
	drafts := make([]domain.JournalLineDraft, len(lines))
	for i, l := range lines {
		drafts[i] = domain.JournalLineDraft{
			ChartOfAccountID: l.ChartOfAccountID,
			Debit:            l.Debit,
			Credit:           l.Credit,
			Description:      l.Description,
		}
	}
	return drafts
}

// ToDomain converts the request into a manual journal draft.
func (r CreateJournalRequest) ToDomain() (domain.JournalDraft, error) {
	date, err := time.Parse(DateLayout, r.TransactionDate)
	if err != nil {
		return domain.JournalDraft{}, fmt.Errorf("%w: invalid transactionDate", apperrors.ErrValidation)
	}
	return domain.JournalDraft{
		JournalType:     r.JournalType,
		Description:     r.Description,
		TransactionDate: date,
		IsEditable:      true,
		SourceModule:    domain.SourceManual,
		Lines:           toLineDrafts(r.Lines),
	}, nil
}

// ToDomain converts the request into a journal update.
func (r UpdateJournalRequest) ToDomain() (domain.JournalUpdate, error) {
	date, err := time.Parse(DateLayout, r.TransactionDate)
	if err != nil {
		return domain.JournalUpdate{}, fmt.Errorf("%w: invalid transactionDate", apperrors.ErrValidation)
	}
	return domain.JournalUpdate{
		Description:     r.Description,
		TransactionDate: date,
		Lines:           toLineDrafts(r.Lines),
	}, nil
}

// ListJournalsParams holds query parameters for listing journals.
type ListJournalsParams struct {
	Limit        int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken    *string `form:"nextToken"`
	From         string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To           string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	JournalType  string  `form:"journalType" binding:"omitempty,oneof=general special adjustment closing opening"`
	SourceModule string  `form:"sourceModule"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListJournalsParams) ToFilter() (domain.JournalFilter, error) {
	var f domain.JournalFilter
	if p.From != "" {
		from, err := time.Parse(DateLayout, p.From)
		if err != nil {
			return f, fmt.Errorf("%w: invalid from date", apperrors.ErrValidation)
		}
		f.From = &from
	}
	if p.To != "" {
		to, err := time.Parse(DateLayout, p.To)
		if err != nil {
			return f, fmt.Errorf("%w: invalid to date", apperrors.ErrValidation)
		}
		f.To = &to
	}
	if p.JournalType != "" {
		jt := domain.JournalType(p.JournalType)
		f.JournalType = &jt
	}
	if p.SourceModule != "" {
		sm := domain.SourceModule(p.SourceModule)
		f.SourceModule = &sm
	}
	return f, nil
}

// JournalDetailResponse defines the data returned for a journal line.
type JournalDetailResponse struct {
	DetailID         int64           `json:"detailID"`
	ChartOfAccountID int64           `json:"chartOfAccountID"`
	AccountCode      string          `json:"accountCode,omitempty"`
	AccountName      string          `json:"accountName,omitempty"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
	Description      string          `json:"description"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID       int64                   `json:"journalID"`
	JournalNumber   string                  `json:"journalNumber"`
	JournalType     string                  `json:"journalType"`
	Description     string                  `json:"description"`
	TransactionDate string                  `json:"transactionDate"`
	IsLocked        bool                    `json:"isLocked"`
	IsAutoGenerated bool                    `json:"isAutoGenerated"`
	IsEditable      bool                    `json:"isEditable"`
	SourceModule    string                  `json:"sourceModule"`
	ReferenceType   *string                 `json:"referenceType,omitempty"`
	ReferenceID     *int64                  `json:"referenceID,omitempty"`
	TotalDebit      decimal.Decimal         `json:"totalDebit"`
	TotalCredit     decimal.Decimal         `json:"totalCredit"`
	LockedAt        *time.Time              `json:"lockedAt,omitempty"`
	LockedBy        *string                 `json:"lockedBy,omitempty"`
	Details         []JournalDetailResponse `json:"details,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	CreatedBy       string                  `json:"createdBy"`
}

// ListJournalsResponse wraps a page of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:       j.JournalID,
		JournalNumber:   j.JournalNumber,
		JournalType:     string(j.JournalType),
		Description:     j.Description,
		TransactionDate: j.TransactionDate.Format(DateLayout),
		IsLocked:        j.IsLocked,
		IsAutoGenerated: j.IsAutoGenerated,
		IsEditable:      j.IsEditable,
		SourceModule:    string(j.SourceModule),
		TotalDebit:      j.TotalDebit,
		TotalCredit:     j.TotalCredit,
		LockedAt:        j.LockedAt,
		LockedBy:        j.LockedBy,
		CreatedAt:       j.CreatedAt,
		CreatedBy:       j.CreatedBy,
	}
	if j.Reference != nil {
		refType := string(j.Reference.Type)
		refID := j.Reference.ID
		resp.ReferenceType = &refType
		resp.ReferenceID = &refID
	}
	if len(j.Details) > 0 {
		resp.Details = make([]JournalDetailResponse, len(j.Details))
		for i, d := range j.Details {
			resp.Details[i] = JournalDetailResponse{
				DetailID:         d.DetailID,
				ChartOfAccountID: d.ChartOfAccountID,
				AccountCode:      d.AccountCode,
				AccountName:      d.AccountName,
				Debit:            d.Debit,
				Credit:           d.Credit,
				Description:      d.Description,
			}
		}
	}
	return resp
}

// ToListJournalsResponse converts a page of journals.
func ToListJournalsResponse(journals []domain.Journal, nextToken *string) *ListJournalsResponse {
	resp := &ListJournalsResponse{
		Journals:  make([]JournalResponse, len(journals)),
		NextToken: nextToken,
	}
	for i := range journals {
		resp.Journals[i] = ToJournalResponse(&journals[i])
	}
	return resp
}
