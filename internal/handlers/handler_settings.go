package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/dto"
)

// settingsHandler handles HTTP requests for company settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvc
}

func newSettingsHandler(settingsService portssvc.SettingsSvc) *settingsHandler {
	return &settingsHandler{settingsService: settingsService}
}

func (h *settingsHandler) getSetting(c *gin.Context) {
	companyID := c.Param("companyID")
	key := c.Param("key")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	setting, err := h.settingsService.GetSetting(c.Request.Context(), companyID, key, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingResponse(setting))
}

func (h *settingsHandler) setSetting(c *gin.Context) {
	companyID := c.Param("companyID")
	key := c.Param("key")

	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestLogger(c).Warn("Failed to bind JSON for setSetting", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	setting, err := h.settingsService.SetSetting(c.Request.Context(), companyID, key, req.Value, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingResponse(setting))
}

func (h *settingsHandler) listSettings(c *gin.Context) {
	companyID := c.Param("companyID")

	userID, ok := callerIdentity(c)
	if !ok {
		return
	}

	settings, err := h.settingsService.ListSettings(c.Request.Context(), companyID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]dto.SettingResponse, len(settings))
	for i := range settings {
		res[i] = dto.ToSettingResponse(&settings[i])
	}
	c.JSON(http.StatusOK, gin.H{"settings": res})
}

// registerSettingsRoutes registers company settings routes.
func registerSettingsRoutes(group *gin.RouterGroup, settingsService portssvc.SettingsSvc) {
	h := newSettingsHandler(settingsService)

	settings := group.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.GET("/:key", h.getSetting)
		settings.PUT("/:key", h.setSetting)
	}
}
