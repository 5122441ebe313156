package router

import (
	"github.com/labstack/echo/v4"

	"complidesk/internal/adapter/api/handler"
	"complidesk/internal/adapter/api/middleware"
)

type Handlers struct {
	Lead         *handler.LeadHandler
	Seller       *handler.SellerHandler
	Template     *handler.TemplateHandler
	Chat         *handler.ChatHandler
	Notification *handler.NotificationHandler
	WebSocket    *handler.WebSocketHandler
	Health       *handler.HealthHandler
}

func Setup(e *echo.Echo, h Handlers, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupLeadRouter(e, h.Lead, authMiddleware, adminMiddleware)
	SetupSellerRouter(e, h.Seller, authMiddleware, adminMiddleware)
	SetupTemplateRouter(e, h.Template, authMiddleware, adminMiddleware)
	SetupChatRouter(e, h.Chat, authMiddleware, adminMiddleware)
	SetupNotificationRouter(e, h.Notification, authMiddleware, adminMiddleware)
	SetupWebSocketRouter(e, h.WebSocket)
	SetupHealthRouter(e, h.Health)
}
