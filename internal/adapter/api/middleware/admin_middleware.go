package middleware

import (
	"net/http"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

type AdminMiddleware struct {
	sellerRepo repository.SellerRepository
}

func NewAdminMiddleware(sellerRepo repository.SellerRepository) *AdminMiddleware {
	return &AdminMiddleware{
		sellerRepo: sellerRepo,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		seller, err := m.sellerRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify admin privileges")
		}

		if !seller.Active {
			return echo.NewHTTPError(http.StatusForbidden, "Account is deactivated")
		}

		if seller.Role != entity.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		return next(c)
	}
}

// StaffOnly admits any active back-office account, admin or seller.
func (m *AdminMiddleware) StaffOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		seller, err := m.sellerRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "Back-office account required")
		}

		if !seller.Active {
			return echo.NewHTTPError(http.StatusForbidden, "Account is deactivated")
		}

		c.Set("staff", seller)

		return next(c)
	}
}
