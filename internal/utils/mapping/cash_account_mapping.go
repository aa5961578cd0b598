package mapping

import (
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/SscSPs/coop_ledger/internal/models"
)

// ToDomainCashAccount converts a model CashAccount to a domain CashAccount
func ToDomainCashAccount(m models.CashAccount) domain.CashAccount {
	return domain.CashAccount{
		ID:             m.ID,
		Code:           m.Code,
		Name:           m.Name,
		Type:           domain.CashAccountType(m.Type),
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCashAccount converts a domain CashAccount to a model CashAccount
func ToModelCashAccount(d domain.CashAccount) models.CashAccount {
	return models.CashAccount{
		ID:             d.ID,
		Code:           d.Code,
		Name:           d.Name,
		Type:           string(d.Type),
		CurrentBalance: d.CurrentBalance,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}
