package router

import (
	"github.com/labstack/echo/v4"

	"complidesk/internal/adapter/api/handler"
	"complidesk/internal/adapter/api/middleware"
)

func SetupTemplateRouter(e *echo.Echo, templateHandler *handler.TemplateHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	templateGroup := e.Group("/v1/templates")
	templateGroup.Use(authMiddleware.Authenticate)
	templateGroup.Use(adminMiddleware.StaffOnly)

	templateGroup.POST("", templateHandler.CreateTemplate)
	templateGroup.GET("", templateHandler.ListTemplates)
	templateGroup.GET("/:id", templateHandler.GetTemplate)
	templateGroup.PATCH("/:id", templateHandler.UpdateTemplate)
	templateGroup.DELETE("/:id", templateHandler.DeleteTemplate)

	templateGroup.PUT("/:id/attachment", templateHandler.AttachPDF)
	templateGroup.POST("/:id/send", templateHandler.SendToLead)
}
