package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/coop_ledger/internal/core/ports/services"
	"github.com/SscSPs/coop_ledger/internal/dto"
	"github.com/SscSPs/coop_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers journal specific routes. Reads are open to every
// authenticated role; writes need manager or admin, and locking needs admin.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	writers := middleware.RequireRole(middleware.RoleAdmin, middleware.RoleManager)
	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.POST("", writers, h.createJournal)
		journals.PUT("/:journalID", writers, h.updateJournal)
		journals.DELETE("/:journalID", writers, h.deleteJournal)
		journals.POST("/:journalID/lock", middleware.RequireRole(middleware.RoleAdmin), h.lockJournal)
	}
}

// createJournal godoc
// @Summary Create a manual journal
// @Description Creates a balanced journal with a generated number. Special journals come only from postings.
// @Tags journals
// @Accept json
// @Produce json
// @Param journal body dto.CreateJournalRequest true "Journal header and lines"
// @Success 201 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced journal"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	draft, err := req.ToDomain()
	if err != nil {
		respondError(c, err, "create journal")
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), draft, userID)
	if err != nil {
		respondError(c, err, "create journal")
		return
	}

	logger.Info("Journal created successfully", slog.String("journal_number", journal.JournalNumber))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal with its lines
// @Tags journals
// @Produce json
// @Param journalID path int true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid journal ID"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Security BearerAuth
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	journalID, ok := pathID(c, "journalID")
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, err, "retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// listJournals godoc
// @Summary List journals
// @Description Lists journal headers newest first with keyset pagination
// @Tags journals
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Param from query string false "Earliest transaction date (YYYY-MM-DD)"
// @Param to query string false "Latest transaction date (YYYY-MM-DD)"
// @Param journalType query string false "Journal type"
// @Param sourceModule query string false "Source module"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListJournals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateJournal godoc
// @Summary Replace a journal's header and lines
// @Description Only unlocked, editable (manual) journals can be updated
// @Tags journals
// @Accept json
// @Produce json
// @Param journalID path int true "Journal ID"
// @Param journal body dto.UpdateJournalRequest true "New header and lines"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string "Invalid or unbalanced journal"
// @Failure 403 {object} map[string]string "Journal is locked or not editable"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to update journal"
// @Security BearerAuth
// @Router /journals/{journalID} [put]
func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	journalID, ok := pathID(c, "journalID")
	if !ok {
		return
	}

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUser(c)
	if !ok {
		return
	}

	update, err := req.ToDomain()
	if err != nil {
		respondError(c, err, "update journal")
		return
	}

	journal, err := h.journalService.UpdateJournal(c.Request.Context(), journalID, update, userID)
	if err != nil {
		respondError(c, err, "update journal")
		return
	}

	logger.Info("Journal updated successfully", slog.Int64("journal_id", journalID))
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete a journal
// @Description Locked journals and special journals cannot be deleted
// @Tags journals
// @Param journalID path int true "Journal ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Journal is locked or special"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to delete journal"
// @Security BearerAuth
// @Router /journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	journalID, ok := pathID(c, "journalID")
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournal(c.Request.Context(), journalID, userID); err != nil {
		respondError(c, err, "delete journal")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal deleted successfully", slog.Int64("journal_id", journalID))
	c.Status(http.StatusNoContent)
}

// lockJournal godoc
// @Summary Lock a journal
// @Description Locking is one-way; there is no unlock
// @Tags journals
// @Produce json
// @Param journalID path int true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal already locked"
// @Failure 500 {object} map[string]string "Failed to lock journal"
// @Security BearerAuth
// @Router /journals/{journalID}/lock [post]
func (h *journalHandler) lockJournal(c *gin.Context) {
	journalID, ok := pathID(c, "journalID")
	if !ok {
		return
	}
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	journal, err := h.journalService.LockJournal(c.Request.Context(), journalID, userID)
	if err != nil {
		respondError(c, err, "lock journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}
