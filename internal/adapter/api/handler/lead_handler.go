package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"complidesk/internal/usecase"
	"complidesk/pkg/response"
)

type LeadHandler struct {
	leadUseCase *usecase.LeadUseCase
}

func NewLeadHandler(leadUseCase *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{
		leadUseCase: leadUseCase,
	}
}

type createLeadRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	AssignedTo string `json:"assigned_to"`
	Notes      string `json:"notes"`
}

type updateLeadRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Company    string `json:"company"`
	Status     string `json:"status"`
	AssignedTo string `json:"assigned_to"`
	Notes      string `json:"notes"`
}

func (h *LeadHandler) CreateLead(c echo.Context) error {
	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	lead, err := h.leadUseCase.CreateLead(c.Request().Context(), usecase.CreateLeadInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, lead)
}

func (h *LeadHandler) GetLead(c echo.Context) error {
	lead, err := h.leadUseCase.GetLead(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lead)
}

func (h *LeadHandler) ListLeads(c echo.Context) error {
	status := c.QueryParam("status")
	limit, offset := paginationParams(c, 20)

	leads, total, err := h.leadUseCase.ListLeads(c.Request().Context(), status, limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, leads, total, limit, offset)
}

func (h *LeadHandler) UpdateLead(c echo.Context) error {
	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	lead, err := h.leadUseCase.UpdateLead(c.Request().Context(), c.Param("id"), usecase.UpdateLeadInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Company:    req.Company,
		Status:     req.Status,
		AssignedTo: req.AssignedTo,
		Notes:      req.Notes,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, lead)
}

func (h *LeadHandler) DeleteLead(c echo.Context) error {
	if err := h.leadUseCase.DeleteLead(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func paginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	return limit, offset
}
