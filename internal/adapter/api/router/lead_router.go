package router

import (
	"github.com/labstack/echo/v4"

	"complidesk/internal/adapter/api/handler"
	"complidesk/internal/adapter/api/middleware"
)

func SetupLeadRouter(e *echo.Echo, leadHandler *handler.LeadHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	leadGroup := e.Group("/v1/leads")
	leadGroup.Use(authMiddleware.Authenticate)
	leadGroup.Use(adminMiddleware.StaffOnly)

	leadGroup.POST("", leadHandler.CreateLead)
	leadGroup.GET("", leadHandler.ListLeads)
	leadGroup.GET("/:id", leadHandler.GetLead)
	leadGroup.PATCH("/:id", leadHandler.UpdateLead)
	leadGroup.DELETE("/:id", leadHandler.DeleteLead, adminMiddleware.AdminOnly)
}
