package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/SscSPs/coop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              time.Now,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/general-ledger", h.getGeneralLedger)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/cash-flow", h.getCashFlow)
	}
}

// queryDate parses a YYYY-MM-DD query parameter, falling back to def when absent.
func queryDate(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	t, err := time.Parse(dto.DateLayout, raw)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invalid date format", slog.String(name, raw), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// queryID parses an optional positive int64 query parameter.
func queryID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return nil, false
	}
	return &id, true
}

// dateRange reads startDate and endDate, defaulting to the current month to date.
func (h *reportingHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := h.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	firstDayOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	start, ok := queryDate(c, "startDate", firstDayOfMonth)
	if !ok {
		return start, start, false
	}
	end, ok := queryDate(c, "endDate", today)
	return start, end, ok
}

func (h *reportingHandler) today() time.Time {
	now := h.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Generates a trial balance report as of a specific date, optionally within an accounting period
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Param periodId query int false "Accounting period ID"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	asOf, ok := queryDate(c, "asOf", h.today())
	if !ok {
		return
	}
	periodID, ok := queryID(c, "periodId")
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf, periodID)
	if err != nil {
		respondError(c, err, "generate trial balance report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getGeneralLedger godoc
// @Summary Generate general ledger report
// @Description Lists lines per account with a running balance
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param endDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Param accountId query int false "Restrict to one chart-of-accounts ID"
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}
	accountID, ok := queryID(c, "accountId")
	if !ok {
		return
	}

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), start, end, accountID)
	if err != nil {
		respondError(c, err, "generate general ledger report")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Revenue and expenses for a period, optionally compared with the preceding period of equal length
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param endDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Param compare query bool false "Include comparison with the previous period"
// @Success 200 {object} domain.IncomeStatementReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}
	compare, err := strconv.ParseBool(c.DefaultQuery("compare", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "compare must be a boolean"})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), start, end, compare)
	if err != nil {
		respondError(c, err, "generate income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Generates a balance sheet report as of a specific date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	asOf, ok := queryDate(c, "asOf", h.today())
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, err, "generate balance sheet report")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Balance sheet report generated successfully",
		slog.Int("asset_accounts", len(report.Assets.Accounts)),
		slog.Int("liability_accounts", len(report.Liabilities.Accounts)),
		slog.Int("equity_accounts", len(report.Equity.Accounts)),
		slog.Bool("balanced", report.Summary.IsBalanced))
	c.JSON(http.StatusOK, report)
}

// getCashFlow godoc
// @Summary Generate cash flow summary
// @Description Movement through cash and bank accounts broken down by source module
// @Tags reports
// @Produce json
// @Param startDate query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param endDate query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} domain.CashFlowReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err, "generate cash flow report")
		return
	}
	c.JSON(http.StatusOK, report)
}
