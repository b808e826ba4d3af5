package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/dto"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountHeadSvc
}

func newAccountHandler(accountService portssvc.AccountHeadSvc) *accountHandler {
	return &accountHandler{accountService: accountService}
}

func (h *accountHandler) createAccountHead(c *gin.Context) {
	companyID := c.Param("companyID")

	var req dto.CreateAccountHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).Warn("Failed to bind JSON for createAccountHead", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccountHead(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountHeadResponse(account))
}

func (h *accountHandler) getAccountHead(c *gin.Context) {
	companyID := c.Param("companyID")
	accountHeadID := c.Param("accountHeadID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountHeadByID(c.Request.Context(), companyID, accountHeadID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountHeadResponse(account))
}

func (h *accountHandler) listAccountHeads(c *gin.Context) {
	companyID := c.Param("companyID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccountHeads(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountHeadResponses(accounts)})
}

func (h *accountHandler) getAccountTree(c *gin.Context) {
	companyID := c.Param("companyID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	tree, err := h.accountService.GetAccountTree(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": tree})
}

func (h *accountHandler) updateAccountHead(c *gin.Context) {
	companyID := c.Param("companyID")
	accountHeadID := c.Param("accountHeadID")

	var req dto.UpdateAccountHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).Warn("Failed to bind JSON for updateAccountHead", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccountHead(c.Request.Context(), companyID, accountHeadID, req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountHeadResponse(account))
}

func (h *accountHandler) deleteAccountHead(c *gin.Context) {
	companyID := c.Param("companyID")
	accountHeadID := c.Param("accountHeadID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccountHead(c.Request.Context(), companyID, accountHeadID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *accountHandler) getAccountBalance(c *gin.Context) {
	companyID := c.Param("companyID")
	accountHeadID := c.Param("accountHeadID")

	var params dto.AccountBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	balance, err := h.accountService.GetAccountBalance(c.Request.Context(), companyID, accountHeadID, params, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accountHeadID": accountHeadID, "balance": balance})
}

// registerAccountRoutes registers chart-of-accounts routes.
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountHeadSvc) {
	h := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccountHead)
		accounts.GET("", h.listAccountHeads)
		accounts.GET("/tree", h.getAccountTree)
		accounts.GET("/:accountHeadID", h.getAccountHead)
		accounts.PATCH("/:accountHeadID", h.updateAccountHead)
		accounts.DELETE("/:accountHeadID", h.deleteAccountHead)
		accounts.GET("/:accountHeadID/balance", h.getAccountBalance)
	}
}
