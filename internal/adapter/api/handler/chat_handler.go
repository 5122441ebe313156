package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"complidesk/internal/domain/entity"
	"complidesk/internal/usecase"
	"complidesk/pkg/errors"
	"complidesk/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
	streams     *usecase.ConversationStreams
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase, streams *usecase.ConversationStreams) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
		streams:     streams,
	}
}

func conversationParams(c echo.Context) (string, string, error) {
	role := c.Param("role")
	counterpartID := c.Param("counterpartId")

	if role != entity.RoleClient && role != entity.RoleSeller {
		return "", "", errors.BadRequest("Conversation role must be client or seller", nil)
	}
	if counterpartID == "" {
		return "", "", errors.BadRequest("Counterpart ID is required", nil)
	}

	return role, counterpartID, nil
}

// GetMessages returns the full history of one conversation, oldest first.
func (h *ChatHandler) GetMessages(c echo.Context) error {
	role, counterpartID, err := conversationParams(c)
	if err != nil {
		return response.Error(c, err)
	}

	messages, err := h.chatUseCase.GetConversation(c.Request().Context(), role, counterpartID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// SendMessage accepts a multipart form with a body field and an optional
// attachment file.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	role, counterpartID, err := conversationParams(c)
	if err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	staff, _ := c.Get("staff").(*entity.Seller)

	senderName := "Back Office"
	if staff != nil {
		senderName = staff.Name
	}

	body := c.FormValue("body")

	input := usecase.SendMessageInput{
		Role:          role,
		CounterpartID: counterpartID,
		SenderID:      userID,
		SenderRole:    entity.RoleAdmin,
		SenderName:    senderName,
		Body:          body,
	}

	if fileHeader, err := c.FormFile("attachment"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return response.Error(c, errors.BadRequest("Failed to read attachment", err))
		}
		defer src.Close()

		input.Attachment = &usecase.AttachmentInput{
			File:     src,
			Filename: fileHeader.Filename,
			MimeType: fileHeader.Header.Get("Content-Type"),
			Size:     fileHeader.Size,
		}
	}

	if body == "" && input.Attachment == nil {
		return response.Error(c, errors.BadRequest("Message body or attachment is required", nil))
	}

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// MarkAsRead marks every message in the conversation as read.
func (h *ChatHandler) MarkAsRead(c echo.Context) error {
	role, counterpartID, err := conversationParams(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.chatUseCase.MarkConversationRead(c.Request().Context(), role, counterpartID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// DeleteMessage removes a single message.
func (h *ChatHandler) DeleteMessage(c echo.Context) error {
	messageID := c.Param("messageId")
	if messageID == "" {
		return response.Error(c, errors.BadRequest("Message ID is required", nil))
	}

	if err := h.chatUseCase.DeleteMessage(c.Request().Context(), messageID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// OpenStream starts the session's message sync loop for this conversation.
// Snapshots arrive over the session's websocket.
func (h *ChatHandler) OpenStream(c echo.Context) error {
	role, counterpartID, err := conversationParams(c)
	if err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	h.streams.Open(userID, role, counterpartID)

	return c.NoContent(http.StatusOK)
}

// CloseStream stops the session's message sync loop.
func (h *ChatHandler) CloseStream(c echo.Context) error {
	userID := c.Get("uid").(string)

	h.streams.Close(userID)

	return c.NoContent(http.StatusOK)
}

// DeleteConversation removes a whole thread.
func (h *ChatHandler) DeleteConversation(c echo.Context) error {
	role, counterpartID, err := conversationParams(c)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.chatUseCase.DeleteConversation(c.Request().Context(), role, counterpartID); err != nil {
		return response.Error(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
