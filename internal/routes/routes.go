package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planr_backend/internal/handlers"
	"planr_backend/internal/middleware"
)

// RegisterRoutes wires all HTTP routes. Auth endpoints and file serving
// are open; everything else requires a valid bearer token.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.File.RegisterRoutes(api)

		authed := api.Group("", middleware.AuthMiddleware())
		{
			appHandlers.Profile.RegisterRoutes(authed)
			appHandlers.Subscription.RegisterRoutes(authed)
			appHandlers.Organisation.RegisterRoutes(authed)
			appHandlers.Feedback.RegisterRoutes(authed)
			appHandlers.Assistant.RegisterRoutes(authed)
		}
	}
}
