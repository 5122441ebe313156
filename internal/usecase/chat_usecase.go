package usecase

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"time"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/internal/infrastructure/ratelimit"
	"complidesk/internal/infrastructure/storage"
	"complidesk/pkg/errors"
)

// FileUploader is the slice of blob storage the chat needs.
type FileUploader interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
}

// MessagePusher delivers realtime events to connected dashboard sessions.
type MessagePusher interface {
	Broadcast(message []byte)
}

// ReadInvalidator drops notification state for a conversation whose unread
// backlog was marked read or removed outside the notification flow. Satisfied
// by notify.Aggregator.
type ReadInvalidator interface {
	ConversationRead(role, counterpartID string)
}

type ChatUseCase struct {
	messageRepo repository.MessageRepository
	uploader    FileUploader
	pusher      MessagePusher
	invalidator ReadInvalidator
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(messageRepo repository.MessageRepository, uploader FileUploader, pusher MessagePusher, invalidator ReadInvalidator) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		messageRepo: messageRepo,
		uploader:    uploader,
		pusher:      pusher,
		invalidator: invalidator,
		rateLimiter: rateLimiter,
	}
}

type AttachmentInput struct {
	File     io.Reader
	Filename string
	MimeType string
	Size     int64
}

type SendMessageInput struct {
	Role          string // counterpart role of the conversation
	CounterpartID string
	SenderID      string
	SenderRole    string
	SenderName    string
	Body          string
	Attachment    *AttachmentInput
}

// SendMessage writes one message. When an attachment is selected it must
// upload successfully first: an oversized file is rejected locally without
// an upload call, and an upload failure blocks the send entirely.
func (uc *ChatUseCase) SendMessage(ctx context.Context, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(input.SenderID, "send_message")
	if !allowed {
		log.Printf("SendMessage Rate Limited: User %s must wait %v", input.SenderID, waitTime)
		return nil, errors.TooManyRequests("Rate limit exceeded. Please wait before sending another message", waitTime)
	}

	message := &entity.Message{
		ConversationID: input.CounterpartID,
		SenderID:       input.SenderID,
		SenderRole:     input.SenderRole,
		SenderName:     input.SenderName,
		Body:           input.Body,
		CreatedAt:      time.Now(),
	}

	// Messages sent by the counterpart themselves start unread on the admin
	// side; admin messages are implicitly read.
	message.Read = input.SenderRole == entity.RoleAdmin

	if input.Attachment != nil {
		if input.Attachment.Size > storage.MaxUploadSize {
			log.Printf("SendMessage Error: Attachment %s exceeds size limit (%d bytes)", input.Attachment.Filename, input.Attachment.Size)
			return nil, errors.BadRequest("Attachment exceeds the 10 MB size limit", nil)
		}

		url, err := uc.uploader.UploadFile(ctx, input.Attachment.File, input.Attachment.MimeType, "chat-attachments")
		if err != nil {
			log.Printf("SendMessage Error: Attachment upload failed for user %s: %v", input.SenderID, err)
			return nil, errors.Internal("Attachment upload failed; message not sent", err)
		}

		message.AttachmentURL = url
		message.AttachmentName = input.Attachment.Filename
		message.AttachmentType = input.Attachment.MimeType
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		log.Printf("SendMessage Error: Failed to create message for conversation %s: %v", input.CounterpartID, err)
		return nil, err
	}

	event := map[string]interface{}{
		"type":    "new_message",
		"message": message,
	}
	if eventJSON, err := json.Marshal(event); err == nil {
		uc.pusher.Broadcast(eventJSON)
	}

	return message, nil
}

// GetConversation returns the full message history for a conversation,
// ascending by creation time.
func (uc *ChatUseCase) GetConversation(ctx context.Context, role, counterpartID string) ([]*entity.Message, error) {
	messages, err := uc.messageRepo.ListByConversation(ctx, role, counterpartID)
	if err != nil {
		log.Printf("GetConversation Error: Failed to list messages for %s %s: %v", role, counterpartID, err)
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead marks the backlog read and drops the conversation's
// notification state, so the next unread message notifies again.
func (uc *ChatUseCase) MarkConversationRead(ctx context.Context, role, counterpartID string) error {
	if err := uc.messageRepo.MarkConversationRead(ctx, role, counterpartID); err != nil {
		log.Printf("MarkConversationRead Error: %s %s: %v", role, counterpartID, err)
		return err
	}

	if uc.invalidator != nil {
		uc.invalidator.ConversationRead(role, counterpartID)
	}

	return nil
}

// DeleteMessage removes one message. Moderation action.
func (uc *ChatUseCase) DeleteMessage(ctx context.Context, messageID string) error {
	if err := uc.messageRepo.Delete(ctx, messageID); err != nil {
		log.Printf("DeleteMessage Error: Failed to delete message %s: %v", messageID, err)
		return err
	}
	return nil
}

// DeleteConversation removes a whole thread. Moderation action. The deleted
// backlog can no longer be read, so its notification state goes with it.
func (uc *ChatUseCase) DeleteConversation(ctx context.Context, role, counterpartID string) error {
	if err := uc.messageRepo.DeleteConversation(ctx, role, counterpartID); err != nil {
		log.Printf("DeleteConversation Error: Failed to delete conversation %s %s: %v", role, counterpartID, err)
		return err
	}

	if uc.invalidator != nil {
		uc.invalidator.ConversationRead(role, counterpartID)
	}

	return nil
}
