package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/dto"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
}

func newReportingHandler(reportingService portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	companyID := c.Param("companyID")

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	companyID := c.Param("companyID")

	var params dto.AsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	asOf := time.Now().UTC()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	companyID := c.Param("companyID")
	accountHeadID := c.Param("accountHeadID")

	var params dto.GeneralLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), companyID, accountHeadID, params.DateFrom, params.DateTo, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// registerReportingRoutes registers report routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/general-ledger/:accountHeadID", h.getGeneralLedger)
	}
}
