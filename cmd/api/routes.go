package main

import (
	"voice-dashboard/internal/httpapi"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers delegate to internal
// modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// CALLS routes. Open, like the original dashboard: the vendor
		// credentials in the request body are the gate.
		api.GET("/calls", h.ListCalls)
		api.POST("/calls", h.StartCall)
		api.POST("/calls/:callId/end", h.EndCall)
		api.POST("/calls/:callId/mute", h.MuteCall)

		// CONFIG routes
		api.POST("/config", h.SaveConfig)
		api.GET("/config", h.GetConfig)

		// AUTH routes
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/me", authMW, h.Me)
		}
	}
}
