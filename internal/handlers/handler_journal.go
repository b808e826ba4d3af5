package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/dto"
	"github.com/tradegate/trading_erp/internal/middleware"
)

// journalHandler handles HTTP requests for journal entries.
type journalHandler struct {
	journalService portssvc.JournalEntrySvc
}

func newJournalHandler(journalService portssvc.JournalEntrySvc) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func (h *journalHandler) createJournalEntry(c *gin.Context) {
	companyID := c.Param("companyID")

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).Warn("Failed to bind JSON for createJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateJournalEntry(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) getJournalEntry(c *gin.Context) {
	companyID := c.Param("companyID")
	journalEntryID := c.Param("journalEntryID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetJournalEntryByID(c.Request.Context(), companyID, journalEntryID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listJournalEntries(c *gin.Context) {
	companyID := c.Param("companyID")

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	page, err := h.journalService.ListJournalEntries(c.Request.Context(), companyID, userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *journalHandler) updateJournalEntry(c *gin.Context) {
	companyID := c.Param("companyID")
	journalEntryID := c.Param("journalEntryID")

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).Warn("Failed to bind JSON for updateJournalEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateJournalEntry(c.Request.Context(), companyID, journalEntryID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) postJournalEntry(c *gin.Context) {
	companyID := c.Param("companyID")
	journalEntryID := c.Param("journalEntryID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	entry, err := h.journalService.PostJournalEntry(c.Request.Context(), companyID, journalEntryID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.CountJournalEntryPosted()
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) deleteJournalEntry(c *gin.Context) {
	companyID := c.Param("companyID")
	journalEntryID := c.Param("journalEntryID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.journalService.DeleteJournalEntry(c.Request.Context(), companyID, journalEntryID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *journalHandler) reverseJournalEntry(c *gin.Context) {
	companyID := c.Param("companyID")
	journalEntryID := c.Param("journalEntryID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseJournalEntry(c.Request.Context(), companyID, journalEntryID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// registerJournalRoutes registers journal entry routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalEntrySvc) {
	h := newJournalHandler(journalService)

	journals := group.Group("/journal-entries")
	{
		journals.POST("", h.createJournalEntry)
		journals.GET("", h.listJournalEntries)
		journals.GET("/:journalEntryID", h.getJournalEntry)
		journals.PATCH("/:journalEntryID", h.updateJournalEntry)
		journals.DELETE("/:journalEntryID", h.deleteJournalEntry)
		journals.POST("/:journalEntryID/post", h.postJournalEntry)
		journals.POST("/:journalEntryID/reverse", h.reverseJournalEntry)
	}
}
