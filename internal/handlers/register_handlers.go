package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	portssvc "github.com/tradegate/trading_erp/internal/core/ports/services"
	"github.com/tradegate/trading_erp/internal/middleware"
	"github.com/tradegate/trading_erp/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	dbCheck func(context.Context) error,
) {
	r.GET("/health", func(c *gin.Context) {
		if dbCheck != nil {
			if err := dbCheck(c.Request.Context()); err != nil {
				c.String(http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	// All resources are tenant-scoped under the company.
	company := v1.Group("/companies/:companyID")
	registerAccountRoutes(company, services.Account)
	registerJournalRoutes(company, services.Journal)
	registerPeriodRoutes(company, services.Period)
	registerReportingRoutes(company, services.Reporting)
	registerSettingsRoutes(company, services.Settings)
}
