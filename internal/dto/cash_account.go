package dto

import (
	"github.com/SscSPs/coop_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CashAccountResponse defines the data returned for a cash account.
type CashAccountResponse struct {
	ID             int64           `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

// ToCashAccountResponse converts a domain cash account.
func ToCashAccountResponse(a *domain.CashAccount) CashAccountResponse {
	return CashAccountResponse{
		ID:             a.ID,
		Code:           a.Code,
		Name:           a.Name,
		Type:           string(a.Type),
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
	}
}

// ToCashAccountResponses converts a slice of domain cash accounts.
func ToCashAccountResponses(accounts []domain.CashAccount) []CashAccountResponse {
	resp := make([]CashAccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = ToCashAccountResponse(&accounts[i])
	}
	return resp
}
