package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type cashAccountHandler struct {
	cashService portssvc.CashBalanceSvc
}

func newCashAccountHandler(svc portssvc.CashBalanceSvc) *cashAccountHandler {
	return &cashAccountHandler{cashService: svc}
}

// registerCashAccountRoutes registers read-only cash account routes. Balances only
// change through postings.
func registerCashAccountRoutes(rg *gin.RouterGroup, svc portssvc.CashBalanceSvc) {
	h := newCashAccountHandler(svc)
	cash := rg.Group("/cash-accounts")
	{
		cash.GET("", h.listCashAccounts)
		cash.GET("/:cashAccountID", h.getCashAccount)
	}
}

// listCashAccounts godoc
// @Summary List cash accounts
// @Tags cash-accounts
// @Produce json
// @Success 200 {array} dto.CashAccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list cash accounts"
// @Security BearerAuth
// @Router /cash-accounts [get]
func (h *cashAccountHandler) listCashAccounts(c *gin.Context) {
	accounts, err := h.cashService.ListCashAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "list cash accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAccountResponses(accounts))
}

// getCashAccount godoc
// @Summary Get a cash account and its current balance
// @Tags cash-accounts
// @Produce json
// @Param cashAccountID path int true "Cash account ID"
// @Success 200 {object} dto.CashAccountResponse
// @Failure 400 {object} map[string]string "Invalid cash account ID"
// @Failure 404 {object} map[string]string "Cash account not found"
// @Security BearerAuth
// @Router /cash-accounts/{cashAccountID} [get]
func (h *cashAccountHandler) getCashAccount(c *gin.Context) {
	id, ok := pathID(c, "cashAccountID")
	if !ok {
		return
	}
	acc, err := h.cashService.GetCashAccount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "retrieve cash account")
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAccountResponse(acc))
}
