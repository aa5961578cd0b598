package mapping

import (
	"database/sql"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/SscSPs/coop_ledger/internal/models"
)

// ToModelChartOfAccount converts a domain ChartOfAccount to a model ChartOfAccount
func ToModelChartOfAccount(d domain.ChartOfAccount) models.ChartOfAccount {
	return models.ChartOfAccount{
		ID:          d.ID,
		Code:        d.Code,
		Name:        d.Name,
		Category:    string(d.Category),
		AccountType: d.AccountType,
		IsDebit:     d.IsDebit,
		IsActive:    d.IsActive,
		Description: sql.NullString{String: d.Description, Valid: d.Description != ""},
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainChartOfAccount converts a model ChartOfAccount to a domain ChartOfAccount
func ToDomainChartOfAccount(m models.ChartOfAccount) domain.ChartOfAccount {
	return domain.ChartOfAccount{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		Category:    domain.AccountCategory(m.Category),
		AccountType: m.AccountType,
		IsDebit:     m.IsDebit,
		IsActive:    m.IsActive,
		Description: m.Description.String,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
