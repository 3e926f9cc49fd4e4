package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"section-notify-server/internal/auth/delivery"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Push token routes (protected)
		push := api.Group("/push")
		push.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			push.POST("/register", h.pushHandler.RegisterToken)
			push.DELETE("/:token", h.pushHandler.UnregisterToken)
		}

		// Notification routes
		notifications := api.Group("/notifications")
		{
			// Internal fan-out endpoint, guarded by the service key
			notifications.POST("/dispatch", delivery.ServiceKeyMiddleware(h.config.ServiceKey), h.pushHandler.Dispatch)
			notifications.GET("/history", delivery.AuthMiddleware(h.authUsecase), h.pushHandler.GetHistory)
		}

		// Preference routes (protected)
		preferences := api.Group("/preferences")
		preferences.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			preferences.GET("", h.pushHandler.GetPreferences)
			preferences.PUT("", h.pushHandler.UpdatePreferences)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			tasks.GET("", h.taskHandler.List)
			tasks.POST("", h.taskHandler.Create)
			tasks.GET("/:id", h.taskHandler.Get)
		}

		// Announcement routes (protected)
		announcements := api.Group("/announcements")
		announcements.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			announcements.GET("", h.announcementHandler.List)
			announcements.POST("", h.announcementHandler.Create)
		}

		// Admin routes (protected, admin only)
		admin := api.Group("/admin")
		admin.Use(delivery.AuthMiddleware(h.authUsecase), delivery.RequireRole("admin"))
		{
			admin.POST("/users", h.orgHandler.CreateUser)
			admin.POST("/sections", h.orgHandler.CreateSection)
			admin.POST("/departments", h.orgHandler.CreateDepartment)
		}
	}
}
