package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/coop_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/SscSPs/coop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler receives business events from the operational modules and
// turns them into automatic journals.
type postingHandler struct {
	autoJournal portssvc.AutoJournalSvc
}

func newPostingHandler(svc portssvc.AutoJournalSvc) *postingHandler {
	return &postingHandler{autoJournal: svc}
}

// registerPostingRoutes registers one endpoint per business event.
func registerPostingRoutes(rg *gin.RouterGroup, svc portssvc.AutoJournalSvc) {
	h := newPostingHandler(svc)

	postings := rg.Group("/postings", middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager))
	{
		postings.POST("/saving-approved", h.savingApproved)
		postings.POST("/loan-disbursed", h.loanDisbursed)
		postings.POST("/installment-paid", h.installmentPaid)
		postings.POST("/cash-transfer-approved", h.cashTransferApproved)
		postings.POST("/salary-deduction-processed", h.salaryDeductionProcessed)
		postings.POST("/service-allowance-processed", h.serviceAllowanceProcessed)
		postings.POST("/early-settlement", h.earlySettlement)
	}
}

type eventRequest[E domain.BusinessEvent] interface {
	ToDomain() (E, error)
}

// post binds the request body, converts it and hands the event to the generator.
func post[E domain.BusinessEvent, R eventRequest[E]](h *postingHandler, c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req R
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind posting request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	event, err := req.ToDomain()
	if err != nil {
		respondError(c, err, "post "+string(event.EventType()))
		return
	}
	logger = logger.With(slog.String("event", string(event.EventType())))

	journal, err := h.autoJournal.Post(c.Request.Context(), event, userID)
	if err != nil {
		respondError(c, err, "post "+string(event.EventType()))
		return
	}

	if journal == nil {
		logger.Info("Event carried nothing to post")
		c.JSON(http.StatusOK, dto.ToPostingResponse(nil))
		return
	}
	logger.Info("Event posted", slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToPostingResponse(journal))
}

// savingApproved godoc
// @Summary Post an approved saving
// @Description Debits the cash account's ledger account and credits the savings liability
// @Tags postings
// @Accept json
// @Produce json
// @Param event body dto.SavingApprovedRequest true "Saving approved event"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 404 {object} map[string]string "Cash account not found"
// @Failure 422 {object} map[string]string "Chart of accounts not configured"
// @Security BearerAuth
// @Router /postings/saving-approved [post]
func (h *postingHandler) savingApproved(c *gin.Context) {
	post[domain.SavingApproved, dto.SavingApprovedRequest](h, c)
}

// loanDisbursed godoc
// @Summary Post a loan disbursement
// @Tags postings
// @Accept json
// @Produce json
// @Param event body dto.LoanDisbursedRequest true "Loan disbursed event"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 422 {object} map[string]string "Chart of accounts not configured"
// @Security BearerAuth
// @Router /postings/loan-disbursed [post]
func (h *postingHandler) loanDisbursed(c *gin.Context) {
	post[domain.LoanDisbursed, dto.LoanDisbursedRequest](h, c)
}

// installmentPaid godoc
// @Summary Post an installment payment
// @Tags postings
// @Accept json
// @Produce json
// @Param event body dto.InstallmentPaidRequest true "Installment paid event"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 422 {object} map[string]string "Chart of accounts not configured"
// @Security BearerAuth
// @Router /postings/installment-paid [post]
func (h *postingHandler) installmentPaid(c *gin.Context) {
	post[domain.InstallmentPaid, dto.InstallmentPaidRequest](h, c)
}

// cashTransferApproved godoc
// @Summary Post an approved cash transfer
// @Tags postings
// @Accept json
// @Produce json
// @Param event body dto.CashTransferRequest true "Cash transfer event"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 422 {object} map[string]string "Chart of accounts not configured"
// @Security BearerAuth
// @Router /postings/cash-transfer-approved [post]
func (h *postingHandler) cashTransferApproved(c *gin.Context) {
	post[domain.CashTransferApproved, dto.CashTransferRequest](h, c)
}

// salaryDeductionProcessed godoc
// @Summary Post a processed salary deduction
// @Tags postings
// @Accept json
// @Produce json
// @Param event body dto.SalaryDeductionRequest true "Salary deduction event"
// @Success 201 {object} dto.PostingResponse
// @Success 200 {object} dto.PostingResponse "Nothing was deducted"
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 422 {object} map[string]string "Chart of accounts not configured"
// @Security BearerAuth
// @Router /postings/salary-deduction-processed [post]
func (h *postingHandler) salaryDeductionProcessed(c *gin.Context) {
	post[domain.SalaryDeductionProcessed, dto.SalaryDeductionRequest](h, c)
}

// serviceAllowanceProcessed godoc
// @Summary Post a processed service allowance
// @Tags postings
// @Accept json
// @Produce json
// @Param event body dto.ServiceAllowanceRequest true "Service allowance event"
// @Success 201 {object} dto.PostingResponse
// @Success 200 {object} dto.PostingResponse "Nothing was paid"
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 422 {object} map[string]string "Chart of accounts not configured"
// @Security BearerAuth
// @Router /postings/service-allowance-processed [post]
func (h *postingHandler) serviceAllowanceProcessed(c *gin.Context) {
	post[domain.ServiceAllowanceProcessed, dto.ServiceAllowanceRequest](h, c)
}

// earlySettlement godoc
// @Summary Post an early loan settlement
// @Tags postings
// @Accept json
// @Produce json
// @Param event body dto.EarlySettlementRequest true "Early settlement event"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid event"
// @Failure 422 {object} map[string]string "Chart of accounts not configured"
// @Security BearerAuth
// @Router /postings/early-settlement [post]
func (h *postingHandler) earlySettlement(c *gin.Context) {
	post[domain.EarlySettlement, dto.EarlySettlementRequest](h, c)
}
