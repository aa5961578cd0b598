package mapping

import (
	"database/sql"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/SscSPs/coop_ledger/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	m := models.Journal{
		ID:              d.JournalID,
		JournalNumber:   d.JournalNumber,
		JournalType:     string(d.JournalType),
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		IsLocked:        d.IsLocked,
		IsAutoGenerated: d.IsAutoGenerated,
		IsEditable:      d.IsEditable,
		SourceModule:    string(d.SourceModule),
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.Reference != nil {
		m.ReferenceType = sql.NullString{String: string(d.Reference.Type), Valid: true}
		m.ReferenceID = sql.NullInt64{Int64: d.Reference.ID, Valid: true}
	}
	if d.LockedAt != nil {
		m.LockedAt = sql.NullTime{Time: *d.LockedAt, Valid: true}
	}
	if d.LockedBy != nil {
		m.LockedBy = sql.NullString{String: *d.LockedBy, Valid: true}
	}
	return m
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	d := domain.Journal{
		JournalID:       m.ID,
		JournalNumber:   m.JournalNumber,
		JournalType:     domain.JournalType(m.JournalType),
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		IsLocked:        m.IsLocked,
		IsAutoGenerated: m.IsAutoGenerated,
		IsEditable:      m.IsEditable,
		SourceModule:    domain.SourceModule(m.SourceModule),
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.ReferenceType.Valid && m.ReferenceID.Valid {
		d.Reference = &domain.JournalReference{
			Type: domain.ReferenceType(m.ReferenceType.String),
			ID:   m.ReferenceID.Int64,
		}
	}
	if m.LockedAt.Valid {
		t := m.LockedAt.Time
		d.LockedAt = &t
	}
	if m.LockedBy.Valid {
		s := m.LockedBy.String
		d.LockedBy = &s
	}
	return d
}

// ToDomainJournalDetail converts a model JournalDetail to a domain JournalDetail
func ToDomainJournalDetail(m models.JournalDetail) domain.JournalDetail {
	return domain.JournalDetail{
		DetailID:         m.ID,
		JournalID:        m.JournalID,
		ChartOfAccountID: m.ChartOfAccountID,
		AccountCode:      m.AccountCode,
		AccountName:      m.AccountName,
		Debit:            m.Debit,
		Credit:           m.Credit,
		Description:      m.Description,
	}
}

// ToModelJournalDetail converts a domain JournalDetail to a model JournalDetail
func ToModelJournalDetail(d domain.JournalDetail) models.JournalDetail {
	return models.JournalDetail{
		ID:               d.DetailID,
		JournalID:        d.JournalID,
		ChartOfAccountID: d.ChartOfAccountID,
		AccountCode:      d.AccountCode,
		AccountName:      d.AccountName,
		Debit:            d.Debit,
		Credit:           d.Credit,
		Description:      d.Description,
	}
}
