package handlers

import (
	"fmt"
	"slices"

	"savecart/core"
	"savecart/telemetry"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes under the configured base path
func NewRouter(h *Handler) (*gin.Engine, error) {
	acl, err := core.NewIPAccessControl(h.cfg.AdminAllowCIDRs, h.cfg.AdminDenyCIDRs)
	if err != nil {
		return nil, fmt.Errorf("admin access control: %w", err)
	}

	if h.cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), RequestID(), telemetry.GinMiddleware(), cors.New(corsConfig(h.cfg.CORSAllowOrigins)))

	api := r.Group(h.cfg.APIBasePath)
	{
		api.GET("/health", h.Health)
		api.GET("/check-login", h.CheckLogin)

		session := api.Group("", h.RequireSession())
		session.GET("/customer", h.GetCustomer)
		session.GET("/theme-settings", h.GetThemeSettings)
		session.POST("/saved-cart", h.PostSavedCart)

		admin := api.Group("", h.RequireAdmin(acl))
		admin.PATCH("/theme-settings", h.PatchThemeSettings)
		admin.GET("/error-logs", h.GetErrorLogs)
		admin.DELETE("/error-logs", h.ClearErrorLogs)
	}

	return r, nil
}

// corsConfig allows credentials (session cookies) only for explicitly listed origins;
// browsers refuse credentialed responses carrying a wildcard origin.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", adminKeyHeader, requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
