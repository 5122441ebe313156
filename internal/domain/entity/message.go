package entity

import (
	"fmt"
	"time"
)

// Sender roles. Admin-side messages never produce unread notifications.
const (
	RoleClient = "client"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"` // lead id or seller id
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	SenderRole     string    `json:"sender_role" firestore:"senderRole"` // "client", "seller", "admin"
	SenderName     string    `json:"sender_name,omitempty" firestore:"senderName,omitempty"`
	Body           string    `json:"body" firestore:"body"`
	AttachmentURL  string    `json:"attachment_url,omitempty" firestore:"attachmentUrl,omitempty"`
	AttachmentName string    `json:"attachment_name,omitempty" firestore:"attachmentName,omitempty"`
	AttachmentType string    `json:"attachment_type,omitempty" firestore:"attachmentType,omitempty"`
	Read           bool      `json:"read" firestore:"read"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}

// ConversationKey addresses one chat thread from the admin's perspective:
// the counterpart's role plus their id, e.g. "client-42".
func ConversationKey(role, counterpartID string) string {
	return fmt.Sprintf("%s-%s", role, counterpartID)
}
