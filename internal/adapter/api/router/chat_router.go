package router

import (
	"github.com/labstack/echo/v4"

	"complidesk/internal/adapter/api/handler"
	"complidesk/internal/adapter/api/middleware"
)

// SetupChatRouter sets up the conversation routes (excluding WebSocket).
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)
	chatGroup.Use(adminMiddleware.StaffOnly)

	chatGroup.GET("/:role/:counterpartId/messages", chatHandler.GetMessages)
	chatGroup.POST("/:role/:counterpartId/messages", chatHandler.SendMessage)
	chatGroup.PUT("/:role/:counterpartId/read", chatHandler.MarkAsRead)

	// Per-session sync loop for the open conversation.
	chatGroup.POST("/:role/:counterpartId/stream", chatHandler.OpenStream)
	chatGroup.DELETE("/stream", chatHandler.CloseStream)

	// Moderation is admin-only.
	chatGroup.DELETE("/messages/:messageId", chatHandler.DeleteMessage, adminMiddleware.AdminOnly)
	chatGroup.DELETE("/:role/:counterpartId", chatHandler.DeleteConversation, adminMiddleware.AdminOnly)
}
