package repository

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"complidesk/internal/domain/entity"
	"complidesk/internal/domain/repository"
	"complidesk/pkg/errors"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) ListByConversation(ctx context.Context, role, counterpartID string) ([]*entity.Message, error) {
	query := r.client.Collection("messages").
		Where("conversationId", "==", counterpartID).
		OrderBy("createdAt", firestore.Asc)

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			log.Printf("Firestore error while iterating messages for conversation %s: %v", counterpartID, err)
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			log.Printf("Error parsing message data for conversation %s: %v", counterpartID, err)
			return nil, errors.Internal("Failed to parse message data", err)
		}

		// A lead id and a seller id can theoretically collide; the sender
		// role disambiguates which thread the row belongs to.
		if message.SenderRole == entity.RoleAdmin || message.SenderRole == role {
			messages = append(messages, &message)
		}
	}

	return messages, nil
}

func (r *firestoreMessageRepository) ListUnread(ctx context.Context, roles []string) ([]*entity.Message, error) {
	query := r.client.Collection("messages").
		Where("read", "==", false).
		Where("senderRole", "in", roles)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to query unread messages", err)
	}

	var messages []*entity.Message
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue // Skip malformed documents
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreMessageRepository) MarkConversationRead(ctx context.Context, role, counterpartID string) error {
	query := r.client.Collection("messages").
		Where("conversationId", "==", counterpartID).
		Where("senderRole", "==", role).
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query unread messages for conversation", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Update(ctx, []firestore.Update{{Path: "read", Value: true}}); err != nil {
			return errors.Internal("Failed to mark message as read", err)
		}
	}

	return nil
}

func (r *firestoreMessageRepository) MarkAllRead(ctx context.Context, roles []string) error {
	query := r.client.Collection("messages").
		Where("read", "==", false).
		Where("senderRole", "in", roles)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query unread messages", err)
	}

	for _, doc := range docs {
		if _, err := doc.Ref.Update(ctx, []firestore.Update{{Path: "read", Value: true}}); err != nil {
			return errors.Internal("Failed to mark message as read", err)
		}
	}

	return nil
}

func (r *firestoreMessageRepository) Delete(ctx context.Context, messageID string) error {
	_, err := r.client.Collection("messages").Doc(messageID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete message", err)
	}

	return nil
}

func (r *firestoreMessageRepository) DeleteConversation(ctx context.Context, role, counterpartID string) error {
	query := r.client.Collection("messages").Where("conversationId", "==", counterpartID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return errors.Internal("Failed to query conversation messages", err)
	}

	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			continue
		}
		if message.SenderRole != entity.RoleAdmin && message.SenderRole != role {
			continue
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete conversation message", err)
		}
	}

	return nil
}

// WatchInserts forwards newly added message rows from the Firestore snapshot
// stream. Blocks until ctx is cancelled; callers run it in its own goroutine.
func (r *firestoreMessageRepository) WatchInserts(ctx context.Context, fn func(*entity.Message)) error {
	snapIter := r.client.Collection("messages").Snapshots(ctx)
	defer snapIter.Stop()

	for {
		snap, err := snapIter.Next()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Internal("Message change feed terminated", err)
		}

		for _, change := range snap.Changes {
			if change.Kind != firestore.DocumentAdded {
				continue
			}

			var message entity.Message
			if err := change.Doc.DataTo(&message); err != nil {
				log.Printf("WatchInserts: failed to parse inserted message: %v", err)
				continue
			}
			fn(&message)
		}
	}
}
