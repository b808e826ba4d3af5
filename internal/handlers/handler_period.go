package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/dto"
)

// periodHandler handles HTTP requests for period locks.
type periodHandler struct {
	periodService portssvc.PeriodCloseSvc
}

func newPeriodHandler(periodService portssvc.PeriodCloseSvc) *periodHandler {
	return &periodHandler{periodService: periodService}
}

func (h *periodHandler) closePeriod(c *gin.Context) {
	companyID := c.Param("companyID")

	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).Warn("Failed to bind JSON for closePeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	period, err := h.periodService.CloseMonth(c.Request.Context(), companyID, req.Year, time.Month(req.Month), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodCloseResponse(period))
}

func (h *periodHandler) reopenPeriod(c *gin.Context) {
	companyID := c.Param("companyID")
	periodCloseID := c.Param("periodCloseID")

	var req dto.ReopenPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).Warn("Failed to bind JSON for reopenPeriod", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	period, err := h.periodService.ReopenPeriod(c.Request.Context(), companyID, periodCloseID, req.Reason, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodCloseResponse(period))
}

func (h *periodHandler) listPeriods(c *gin.Context) {
	companyID := c.Param("companyID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"periods": dto.ToPeriodCloseResponses(periods)})
}

// registerPeriodRoutes registers period lock routes.
func registerPeriodRoutes(group *gin.RouterGroup, periodService portssvc.PeriodCloseSvc) {
	h := newPeriodHandler(periodService)

	periods := group.Group("/periods")
	{
		periods.POST("/close", h.closePeriod)
		periods.POST("/:periodCloseID/reopen", h.reopenPeriod)
		periods.GET("", h.listPeriods)
	}
}
