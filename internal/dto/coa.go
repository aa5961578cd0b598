package dto

import "github.com/SscSPs/coop_ledger/internal/core/domain"

// ChartOfAccountResponse defines the data returned for a ledger account.
type ChartOfAccountResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	AccountType string `json:"accountType"`
	IsDebit     bool   `json:"isDebit"`
	IsActive    bool   `json:"isActive"`
	Description string `json:"description,omitempty"`
}

// ToChartOfAccountResponses converts a slice of domain accounts.
func ToChartOfAccountResponses(accounts []domain.ChartOfAccount) []ChartOfAccountResponse {
	resp := make([]ChartOfAccountResponse, len(accounts))
	for i, a := range accounts {
		resp[i] = ChartOfAccountResponse{
			ID:          a.ID,
			Code:        a.Code,
			Name:        a.Name,
			Category:    string(a.Category),
			AccountType: a.AccountType,
			IsDebit:     a.IsDebit,
			IsActive:    a.IsActive,
			Description: a.Description,
		}
	}
	return resp
}
