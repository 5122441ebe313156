package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"complidesk/internal/notify"
	"complidesk/pkg/errors"
	"complidesk/pkg/response"
)

type NotificationHandler struct {
	aggregator *notify.Aggregator
}

func NewNotificationHandler(aggregator *notify.Aggregator) *NotificationHandler {
	return &NotificationHandler{
		aggregator: aggregator,
	}
}

type openNotificationRequest struct {
	Role          string `json:"role" validate:"required,oneof=client seller"`
	CounterpartID string `json:"counterpart_id" validate:"required"`
}

type dismissNotificationRequest struct {
	Key string `json:"key" validate:"required"`
}

// List returns the visible notifications, most recent discovery first.
func (h *NotificationHandler) List(c echo.Context) error {
	return response.Success(c, h.aggregator.Notifications())
}

// Open marks the conversation read, removes its notification and tells the
// dashboard to switch to that conversation.
func (h *NotificationHandler) Open(c echo.Context) error {
	var req openNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.aggregator.Open(c.Request().Context(), req.Role, req.CounterpartID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// Dismiss hides one notification without marking anything read.
func (h *NotificationHandler) Dismiss(c echo.Context) error {
	var req dismissNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	h.aggregator.Dismiss(req.Key)

	return c.NoContent(http.StatusOK)
}

// MarkSeen flags one notification as seen without removing it.
func (h *NotificationHandler) MarkSeen(c echo.Context) error {
	var req dismissNotificationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	h.aggregator.MarkSeen(req.Key)

	return c.NoContent(http.StatusOK)
}

// ClearAll marks every unread counterpart message read and empties the list.
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	if err := h.aggregator.ClearAll(c.Request().Context()); err != nil {
		return response.Error(c, errors.Internal("Failed to clear notifications", err))
	}

	return c.NoContent(http.StatusOK)
}

// Badge returns the unseen notification count for the bell icon.
func (h *NotificationHandler) Badge(c echo.Context) error {
	notifications := h.aggregator.Notifications()

	unseen := 0
	for _, n := range notifications {
		if !n.Seen {
			unseen++
		}
	}

	return response.Success(c, map[string]interface{}{
		"unseen": unseen,
		"total":  len(notifications),
	})
}
