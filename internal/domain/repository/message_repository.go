package repository

import (
	"context"

	"complidesk/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// ListByConversation returns the full history for one conversation
	// ordered by creation time ascending (server-assigned order is trusted).
	ListByConversation(ctx context.Context, role, counterpartID string) ([]*entity.Message, error)

	// ListUnread returns all unread messages whose sender role is one of the
	// given roles, across every conversation.
	ListUnread(ctx context.Context, roles []string) ([]*entity.Message, error)

	// MarkConversationRead sets read=true on every unread message of the
	// given conversation.
	MarkConversationRead(ctx context.Context, role, counterpartID string) error

	// MarkAllRead sets read=true on every unread message from the given roles.
	MarkAllRead(ctx context.Context, roles []string) error

	Delete(ctx context.Context, messageID string) error
	DeleteConversation(ctx context.Context, role, counterpartID string) error

	// WatchInserts subscribes to the store's change feed and invokes fn for
	// every newly inserted message until ctx is cancelled.
	WatchInserts(ctx context.Context, fn func(*entity.Message)) error
}
