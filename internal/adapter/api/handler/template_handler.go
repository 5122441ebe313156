package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"complidesk/internal/usecase"
	"complidesk/pkg/errors"
	"complidesk/pkg/response"
)

type TemplateHandler struct {
	templateUseCase *usecase.TemplateUseCase
}

func NewTemplateHandler(templateUseCase *usecase.TemplateUseCase) *TemplateHandler {
	return &TemplateHandler{
		templateUseCase: templateUseCase,
	}
}

type createTemplateRequest struct {
	Name     string `json:"name" validate:"required"`
	Subject  string `json:"subject" validate:"required"`
	BodyHTML string `json:"body_html" validate:"required"`
}

type updateTemplateRequest struct {
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
}

type sendTemplateRequest struct {
	LeadID string `json:"lead_id" validate:"required"`
}

func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var req createTemplateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	template, err := h.templateUseCase.CreateTemplate(c.Request().Context(), usecase.CreateTemplateInput{
		Name:     req.Name,
		Subject:  req.Subject,
		BodyHTML: req.BodyHTML,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, template)
}

func (h *TemplateHandler) GetTemplate(c echo.Context) error {
	template, err := h.templateUseCase.GetTemplate(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, template)
}

func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	limit, offset := paginationParams(c, 20)

	templates, total, err := h.templateUseCase.ListTemplates(c.Request().Context(), limit, offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.SuccessPaginated(c, templates, total, limit, offset)
}

func (h *TemplateHandler) UpdateTemplate(c echo.Context) error {
	var req updateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	template, err := h.templateUseCase.UpdateTemplate(c.Request().Context(), c.Param("id"), usecase.UpdateTemplateInput{
		Name:     req.Name,
		Subject:  req.Subject,
		BodyHTML: req.BodyHTML,
	})

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, template)
}

func (h *TemplateHandler) DeleteTemplate(c echo.Context) error {
	if err := h.templateUseCase.DeleteTemplate(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AttachPDF accepts a multipart form with a single "attachment" file.
func (h *TemplateHandler) AttachPDF(c echo.Context) error {
	fileHeader, err := c.FormFile("attachment")
	if err != nil {
		return response.Error(c, errors.BadRequest("Attachment file is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read attachment", err))
	}
	defer src.Close()

	template, err := h.templateUseCase.AttachPDF(
		c.Request().Context(),
		c.Param("id"),
		src,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
	)

	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, template)
}

// SendToLead delivers the rendered template to one lead by email.
func (h *TemplateHandler) SendToLead(c echo.Context) error {
	var req sendTemplateRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	if err := h.templateUseCase.SendToLead(c.Request().Context(), userID, c.Param("id"), req.LeadID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Email sent"})
}
