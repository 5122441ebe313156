package notify

import (
	"time"

	"complidesk/internal/domain/entity"
)

// Notification is a derived, ephemeral alert for one conversation with
// unread messages. It is never persisted; the underlying unread rows in the
// data store are the durable state.
type Notification struct {
	Key           string    `json:"key"` // "<role>-<counterpartId>"
	Role          string    `json:"role"`
	CounterpartID string    `json:"counterpart_id"`
	Text          string    `json:"text"`
	MessageAt     time.Time `json:"message_at"` // timestamp of the triggering message
	Seen          bool      `json:"seen"`       // UI-local only
}

func newNotification(msg *entity.Message, text string) *Notification {
	return &Notification{
		Key:           entity.ConversationKey(msg.SenderRole, msg.ConversationID),
		Role:          msg.SenderRole,
		CounterpartID: msg.ConversationID,
		Text:          text,
		MessageAt:     msg.CreatedAt,
	}
}
