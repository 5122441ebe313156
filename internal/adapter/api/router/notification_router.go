package router

import (
	"github.com/labstack/echo/v4"

	"complidesk/internal/adapter/api/handler"
	"complidesk/internal/adapter/api/middleware"
)

func SetupNotificationRouter(e *echo.Echo, notificationHandler *handler.NotificationHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	notificationGroup := e.Group("/v1/notifications")
	notificationGroup.Use(authMiddleware.Authenticate)
	notificationGroup.Use(adminMiddleware.StaffOnly)

	notificationGroup.GET("", notificationHandler.List)
	notificationGroup.GET("/badge", notificationHandler.Badge)
	notificationGroup.POST("/open", notificationHandler.Open)
	notificationGroup.POST("/dismiss", notificationHandler.Dismiss)
	notificationGroup.POST("/seen", notificationHandler.MarkSeen)
	notificationGroup.POST("/clear", notificationHandler.ClearAll)
}
