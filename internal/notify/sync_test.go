package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complidesk/internal/domain/entity"
	"complidesk/pkg/errors"
)

type fakeLister struct {
	mutex    sync.Mutex
	messages []*entity.Message
	err      error
	calls    int
}

func (f *fakeLister) ListByConversation(ctx context.Context, role, counterpartID string) ([]*entity.Message, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*entity.Message, len(f.messages))
	copy(out, f.messages)
	return out, nil
}

func (f *fakeLister) set(messages []*entity.Message, err error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.messages = messages
	f.err = err
}

func msgAt(id, conversationID, role string, ts time.Time) *entity.Message {
	return &entity.Message{
		ID:             id,
		ConversationID: conversationID,
		SenderID:       conversationID,
		SenderRole:     role,
		Body:           "body-" + id,
		CreatedAt:      ts,
	}
}

func TestSyncerRefreshReplacesSnapshotInOrder(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lister := &fakeLister{}
	lister.set([]*entity.Message{
		msgAt("m1", "42", entity.RoleClient, base),
		msgAt("m2", "42", entity.RoleAdmin, base.Add(time.Second)),
		msgAt("m3", "42", entity.RoleClient, base.Add(2*time.Second)),
	}, nil)

	syncer := NewSyncer(lister, clock.NewMock(), 3*time.Second, entity.RoleClient, "42", nil)
	syncer.Refresh(context.Background())

	got := syncer.Messages()
	require.Len(t, got, 3)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m2", got[1].ID)
	assert.Equal(t, "m3", got[2].ID)

	// The next fetch replaces the snapshot wholesale.
	lister.set([]*entity.Message{
		msgAt("m1", "42", entity.RoleClient, base),
	}, nil)
	syncer.Refresh(context.Background())
	assert.Len(t, syncer.Messages(), 1)
}

func TestSyncerFetchFailureKeepsLastSnapshot(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	lister := &fakeLister{}
	lister.set([]*entity.Message{msgAt("m1", "42", entity.RoleClient, base)}, nil)

	syncer := NewSyncer(lister, clock.NewMock(), 3*time.Second, entity.RoleClient, "42", nil)
	syncer.Refresh(context.Background())
	require.Len(t, syncer.Messages(), 1)

	lister.set(nil, errors.Internal("network down", nil))
	syncer.Refresh(context.Background())

	// Failure is swallowed; the previous snapshot stands until the next
	// successful tick.
	assert.Len(t, syncer.Messages(), 1)

	lister.set([]*entity.Message{
		msgAt("m1", "42", entity.RoleClient, base),
		msgAt("m2", "42", entity.RoleClient, base.Add(time.Second)),
	}, nil)
	syncer.Refresh(context.Background())
	assert.Len(t, syncer.Messages(), 2)
}

func TestSyncerRunTicksAndStops(t *testing.T) {
	lister := &fakeLister{}
	mock := clock.NewMock()

	var updates int
	var mutex sync.Mutex
	syncer := NewSyncer(lister, mock, 3*time.Second, entity.RoleClient, "42", func([]*entity.Message) {
		mutex.Lock()
		updates++
		mutex.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		syncer.Run(ctx)
		close(done)
	}()

	// Initial refresh happens before the first tick.
	require.Eventually(t, func() bool {
		mutex.Lock()
		defer mutex.Unlock()
		return updates >= 1
	}, time.Second, 5*time.Millisecond)

	mock.Add(3 * time.Second)
	require.Eventually(t, func() bool {
		mutex.Lock()
		defer mutex.Unlock()
		return updates >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("syncer did not stop on context cancellation")
	}
}
