package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complidesk/internal/domain/entity"
	apperrors "complidesk/pkg/errors"
)

type fakeMessageRepo struct {
	created   []*entity.Message
	createErr error
	markErr   error
	marked    [][2]string
	deleted   [][2]string
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, message)
	return nil
}

func (f *fakeMessageRepo) ListByConversation(ctx context.Context, role, counterpartID string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range f.created {
		if m.ConversationID == counterpartID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) ListUnread(ctx context.Context, roles []string) ([]*entity.Message, error) {
	return nil, nil
}

func (f *fakeMessageRepo) MarkConversationRead(ctx context.Context, role, counterpartID string) error {
	if f.markErr != nil {
		return f.markErr
	}
	f.marked = append(f.marked, [2]string{role, counterpartID})
	return nil
}

func (f *fakeMessageRepo) MarkAllRead(ctx context.Context, roles []string) error { return nil }

func (f *fakeMessageRepo) Delete(ctx context.Context, messageID string) error { return nil }

func (f *fakeMessageRepo) DeleteConversation(ctx context.Context, role, counterpartID string) error {
	f.deleted = append(f.deleted, [2]string{role, counterpartID})
	return nil
}

func (f *fakeMessageRepo) WatchInserts(ctx context.Context, fn func(*entity.Message)) error {
	return nil
}

type fakeUploader struct {
	calls int
	url   string
	err   error
}

func (f *fakeUploader) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type fakePusher struct {
	events [][]byte
}

func (f *fakePusher) Broadcast(message []byte) {
	f.events = append(f.events, message)
}

func TestSendMessagePlainText(t *testing.T) {
	repo := &fakeMessageRepo{}
	uploader := &fakeUploader{}
	pusher := &fakePusher{}
	uc := NewChatUseCase(repo, uploader, pusher, nil)

	msg, err := uc.SendMessage(context.Background(), SendMessageInput{
		Role:          entity.RoleClient,
		CounterpartID: "lead-1",
		SenderID:      "admin-1",
		SenderRole:    entity.RoleAdmin,
		SenderName:    "Back Office",
		Body:          "hello",
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "hello", msg.Body)
	assert.True(t, msg.Read, "admin messages are implicitly read")
	assert.Equal(t, 0, uploader.calls)
	assert.Len(t, pusher.events, 1)
}

func TestSendMessageFromCounterpartStartsUnread(t *testing.T) {
	repo := &fakeMessageRepo{}
	uc := NewChatUseCase(repo, &fakeUploader{}, &fakePusher{}, nil)

	msg, err := uc.SendMessage(context.Background(), SendMessageInput{
		Role:          entity.RoleClient,
		CounterpartID: "lead-1",
		SenderID:      "lead-1",
		SenderRole:    entity.RoleClient,
		SenderName:    "Acme Co",
		Body:          "need help",
	})

	require.NoError(t, err)
	assert.False(t, msg.Read)
}

func TestSendMessageOversizedAttachmentRejectedWithoutUpload(t *testing.T) {
	repo := &fakeMessageRepo{}
	uploader := &fakeUploader{}
	uc := NewChatUseCase(repo, uploader, &fakePusher{}, nil)

	_, err := uc.SendMessage(context.Background(), SendMessageInput{
		Role:          entity.RoleClient,
		CounterpartID: "lead-1",
		SenderID:      "admin-1",
		SenderRole:    entity.RoleAdmin,
		Body:          "see attached",
		Attachment: &AttachmentInput{
			File:     strings.NewReader("x"),
			Filename: "report.pdf",
			MimeType: "application/pdf",
			Size:     11 << 20,
		},
	})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "BAD_REQUEST"))
	assert.Equal(t, 0, uploader.calls, "oversized file must never reach the uploader")
	assert.Empty(t, repo.created)
}

func TestSendMessageUploadFailureBlocksSend(t *testing.T) {
	repo := &fakeMessageRepo{}
	uploader := &fakeUploader{err: errors.New("bucket unavailable")}
	pusher := &fakePusher{}
	uc := NewChatUseCase(repo, uploader, pusher, nil)

	_, err := uc.SendMessage(context.Background(), SendMessageInput{
		Role:          entity.RoleClient,
		CounterpartID: "lead-1",
		SenderID:      "admin-1",
		SenderRole:    entity.RoleAdmin,
		Body:          "see attached",
		Attachment: &AttachmentInput{
			File:     strings.NewReader("data"),
			Filename: "photo.jpg",
			MimeType: "image/jpeg",
			Size:     1024,
		},
	})

	require.Error(t, err)
	assert.Equal(t, 1, uploader.calls)
	assert.Empty(t, repo.created, "failed upload must not produce a message")
	assert.Empty(t, pusher.events)
}

func TestSendMessageWithAttachment(t *testing.T) {
	repo := &fakeMessageRepo{}
	uploader := &fakeUploader{url: "https://storage.googleapis.com/bucket/chat-attachments/abc.jpg"}
	uc := NewChatUseCase(repo, uploader, &fakePusher{}, nil)

	msg, err := uc.SendMessage(context.Background(), SendMessageInput{
		Role:          entity.RoleClient,
		CounterpartID: "lead-1",
		SenderID:      "admin-1",
		SenderRole:    entity.RoleAdmin,
		Body:          "photo attached",
		Attachment: &AttachmentInput{
			File:     strings.NewReader("data"),
			Filename: "photo.jpg",
			MimeType: "image/jpeg",
			Size:     1024,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, uploader.url, msg.AttachmentURL)
	assert.Equal(t, "photo.jpg", msg.AttachmentName)
	assert.Equal(t, "image/jpeg", msg.AttachmentType)
	require.Len(t, repo.created, 1)
}

func TestGetConversationReturnsHistory(t *testing.T) {
	repo := &fakeMessageRepo{
		created: []*entity.Message{
			{ID: "m1", ConversationID: "lead-1", Body: "first", CreatedAt: time.Now().Add(-time.Minute)},
			{ID: "m2", ConversationID: "lead-1", Body: "second", CreatedAt: time.Now()},
		},
	}
	uc := NewChatUseCase(repo, &fakeUploader{}, &fakePusher{}, nil)

	messages, err := uc.GetConversation(context.Background(), entity.RoleClient, "lead-1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Body)
}

type fakeInvalidator struct {
	reads [][2]string
}

func (f *fakeInvalidator) ConversationRead(role, counterpartID string) {
	f.reads = append(f.reads, [2]string{role, counterpartID})
}

func TestMarkConversationReadDropsNotificationState(t *testing.T) {
	repo := &fakeMessageRepo{}
	invalidator := &fakeInvalidator{}
	uc := NewChatUseCase(repo, &fakeUploader{}, &fakePusher{}, invalidator)

	err := uc.MarkConversationRead(context.Background(), entity.RoleClient, "lead-1")
	require.NoError(t, err)
	require.Len(t, repo.marked, 1)
	assert.Equal(t, [2]string{entity.RoleClient, "lead-1"}, repo.marked[0])

	// Reading through the chat route must clear the conversation's
	// notification and cache key, or the next unread message never notifies.
	require.Len(t, invalidator.reads, 1)
	assert.Equal(t, [2]string{entity.RoleClient, "lead-1"}, invalidator.reads[0])
}

func TestMarkConversationReadStoreFailureSkipsInvalidation(t *testing.T) {
	repo := &fakeMessageRepo{markErr: errors.New("write rejected")}
	invalidator := &fakeInvalidator{}
	uc := NewChatUseCase(repo, &fakeUploader{}, &fakePusher{}, invalidator)

	err := uc.MarkConversationRead(context.Background(), entity.RoleClient, "lead-1")
	require.Error(t, err)
	assert.Empty(t, invalidator.reads)
}

func TestDeleteConversationDropsNotificationState(t *testing.T) {
	repo := &fakeMessageRepo{}
	invalidator := &fakeInvalidator{}
	uc := NewChatUseCase(repo, &fakeUploader{}, &fakePusher{}, invalidator)

	err := uc.DeleteConversation(context.Background(), entity.RoleSeller, "seller-9")
	require.NoError(t, err)
	require.Len(t, repo.deleted, 1)
	require.Len(t, invalidator.reads, 1)
	assert.Equal(t, [2]string{entity.RoleSeller, "seller-9"}, invalidator.reads[0])
}
