package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/SscSPs/coop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type coaHandler struct {
	coaService portssvc.ChartOfAccountSvc
}

func newCoaHandler(svc portssvc.ChartOfAccountSvc) *coaHandler {
	return &coaHandler{coaService: svc}
}

// registerCoaRoutes registers chart-of-accounts routes
func registerCoaRoutes(rg *gin.RouterGroup, svc portssvc.ChartOfAccountSvc) {
	h := newCoaHandler(svc)
	rg.GET("/chart-of-accounts", h.listChartOfAccounts)
}

// listChartOfAccounts godoc
// @Summary List chart of accounts
// @Description Lists ledger accounts ordered by code
// @Tags chart-of-accounts
// @Produce json
// @Param includeInactive query bool false "Include inactive accounts"
// @Success 200 {array} dto.ChartOfAccountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list chart of accounts"
// @Security BearerAuth
// @Router /chart-of-accounts [get]
func (h *coaHandler) listChartOfAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	includeInactive, err := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))
	if err != nil {
		logger.Warn("Invalid includeInactive flag", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "includeInactive must be a boolean"})
		return
	}

	accounts, err := h.coaService.ListChartOfAccounts(c.Request.Context(), includeInactive)
	if err != nil {
		respondError(c, err, "list chart of accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToChartOfAccountResponses(accounts))
}
