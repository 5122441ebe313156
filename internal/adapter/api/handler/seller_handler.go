package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"complidesk/internal/usecase"
	"complidesk/pkg/response"
)

type SellerHandler struct {
	sellerUseCase *usecase.SellerUseCase
}

func NewSellerHandler(sellerUseCase *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{
		sellerUseCase: sellerUseCase,
	}
}

type createSellerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=seller admin"`
}

type updateSellerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role" validate:"omitempty,oneof=seller admin"`
}

func (h *SellerHandler) CreateSeller(c echo.Context) error {
	var req createSellerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	seller, err := h.sellerUseCase.CreateSeller(c.Request().Context(), usecase.CreateSellerInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, seller)
}

func (h *SellerHandler) GetSeller(c echo.Context) error {
	seller, err := h.sellerUseCase.GetSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, seller)
}

func (h *SellerHandler) ListSellers(c echo.Context) error {
	limit, offset := paginationParams(c, 20)

	sellers, total, err := h.sellerUseCase.ListSellers(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, sellers, total, limit, offset)
}

func (h *SellerHandler) UpdateSeller(c echo.Context) error {
	var req updateSellerRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	seller, err := h.sellerUseCase.UpdateSeller(c.Request().Context(), c.Param("id"), usecase.UpdateSellerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Role:  req.Role,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, seller)
}

func (h *SellerHandler) DeactivateSeller(c echo.Context) error {
	seller, err := h.sellerUseCase.DeactivateSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, seller)
}

func (h *SellerHandler) DeleteSeller(c echo.Context) error {
	if err := h.sellerUseCase.DeleteSeller(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
