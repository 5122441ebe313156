package router

import (
	"github.com/labstack/echo/v4"

	"complidesk/internal/adapter/api/handler"
	"complidesk/internal/adapter/api/middleware"
)

func SetupSellerRouter(e *echo.Echo, sellerHandler *handler.SellerHandler, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	sellerGroup := e.Group("/v1/sellers")
	sellerGroup.Use(authMiddleware.Authenticate)
	sellerGroup.Use(adminMiddleware.StaffOnly)

	sellerGroup.GET("", sellerHandler.ListSellers)
	sellerGroup.GET("/:id", sellerHandler.GetSeller)

	// Account lifecycle is admin-only.
	sellerGroup.POST("", sellerHandler.CreateSeller, adminMiddleware.AdminOnly)
	sellerGroup.PATCH("/:id", sellerHandler.UpdateSeller, adminMiddleware.AdminOnly)
	sellerGroup.PUT("/:id/deactivate", sellerHandler.DeactivateSeller, adminMiddleware.AdminOnly)
	sellerGroup.DELETE("/:id", sellerHandler.DeleteSeller, adminMiddleware.AdminOnly)
}
