package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complidesk/internal/domain/entity"
)

type recordingPusher struct {
	mutex  sync.Mutex
	pushed map[string][][]byte
}

func newRecordingPusher() *recordingPusher {
	return &recordingPusher{pushed: make(map[string][][]byte)}
}

func (p *recordingPusher) SendToUser(userID string, message []byte) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.pushed[userID] = append(p.pushed[userID], message)
}

func (p *recordingPusher) count(userID string) int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return len(p.pushed[userID])
}

func (p *recordingPusher) last(userID string) []byte {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	msgs := p.pushed[userID]
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

func TestConversationStreamPushesSnapshots(t *testing.T) {
	repo := &fakeMessageRepo{
		created: []*entity.Message{
			{ID: "m1", ConversationID: "lead-1", SenderRole: entity.RoleClient, Body: "hi", CreatedAt: time.Now()},
		},
	}
	pusher := newRecordingPusher()
	mock := clock.NewMock()
	streams := NewConversationStreams(context.Background(), repo, pusher, mock, 3*time.Second)
	defer streams.Close("admin-1")

	streams.Open("admin-1", entity.RoleClient, "lead-1")

	require.Eventually(t, func() bool {
		return pusher.count("admin-1") >= 1
	}, time.Second, 5*time.Millisecond)

	var event struct {
		Type         string `json:"type"`
		Conversation string `json:"conversation"`
	}
	require.NoError(t, json.Unmarshal(pusher.last("admin-1"), &event))
	assert.Equal(t, "conversation_snapshot", event.Type)
	assert.Equal(t, "client-lead-1", event.Conversation)

	mock.Add(3 * time.Second)
	require.Eventually(t, func() bool {
		return pusher.count("admin-1") >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestConversationStreamReplacedOnReopen(t *testing.T) {
	repo := &fakeMessageRepo{
		created: []*entity.Message{
			{ID: "m1", ConversationID: "lead-1", Body: "hi", CreatedAt: time.Now()},
			{ID: "m2", ConversationID: "seller-9", Body: "yo", CreatedAt: time.Now()},
		},
	}
	pusher := newRecordingPusher()
	streams := NewConversationStreams(context.Background(), repo, pusher, clock.NewMock(), 3*time.Second)
	defer streams.Close("admin-1")

	streams.Open("admin-1", entity.RoleClient, "lead-1")
	require.Eventually(t, func() bool {
		return pusher.count("admin-1") >= 1
	}, time.Second, 5*time.Millisecond)

	streams.Open("admin-1", entity.RoleSeller, "seller-9")

	require.Eventually(t, func() bool {
		var event struct {
			Conversation string `json:"conversation"`
		}
		if err := json.Unmarshal(pusher.last("admin-1"), &event); err != nil {
			return false
		}
		return event.Conversation == "seller-seller-9"
	}, time.Second, 5*time.Millisecond)
}

func TestConversationStreamClose(t *testing.T) {
	repo := &fakeMessageRepo{}
	pusher := newRecordingPusher()
	mock := clock.NewMock()
	streams := NewConversationStreams(context.Background(), repo, pusher, mock, 3*time.Second)

	streams.Open("admin-1", entity.RoleClient, "lead-1")
	require.Eventually(t, func() bool {
		return pusher.count("admin-1") >= 1
	}, time.Second, 5*time.Millisecond)

	streams.Close("admin-1")
	before := pusher.count("admin-1")

	mock.Add(30 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, pusher.count("admin-1"))
}
