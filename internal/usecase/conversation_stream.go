package usecase

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"complidesk/internal/domain/entity"
	"complidesk/internal/notify"
)

// SessionPusher delivers events to one connected dashboard session.
type SessionPusher interface {
	SendToUser(userID string, message []byte)
}

// ConversationStreams runs one message sync loop per dashboard session for
// whichever conversation that session has open. Opening a conversation stops
// the session's previous loop; each snapshot is pushed to the session over
// the websocket.
type ConversationStreams struct {
	store    notify.MessageLister
	pusher   SessionPusher
	clk      clock.Clock
	interval time.Duration

	// baseCtx outlives any single HTTP request; streams run until replaced,
	// closed, or the server shuts down.
	baseCtx context.Context

	mutex  sync.Mutex
	active map[string]context.CancelFunc
}

func NewConversationStreams(baseCtx context.Context, store notify.MessageLister, pusher SessionPusher, clk clock.Clock, interval time.Duration) *ConversationStreams {
	return &ConversationStreams{
		store:    store,
		pusher:   pusher,
		clk:      clk,
		interval: interval,
		baseCtx:  baseCtx,
		active:   make(map[string]context.CancelFunc),
	}
}

// Open starts syncing one conversation for the session, replacing any loop
// the session already had running.
func (s *ConversationStreams) Open(userID, role, counterpartID string) {
	streamCtx, cancel := context.WithCancel(s.baseCtx)

	s.mutex.Lock()
	if prev, ok := s.active[userID]; ok {
		prev()
	}
	s.active[userID] = cancel
	s.mutex.Unlock()

	syncer := notify.NewSyncer(s.store, s.clk, s.interval, role, counterpartID, func(messages []*entity.Message) {
		event := map[string]interface{}{
			"type":           "conversation_snapshot",
			"conversation":   entity.ConversationKey(role, counterpartID),
			"messages":       messages,
			"role":           role,
			"counterpart_id": counterpartID,
		}
		eventJSON, err := json.Marshal(event)
		if err != nil {
			log.Printf("ConversationStreams: failed to marshal snapshot for %s: %v", userID, err)
			return
		}
		s.pusher.SendToUser(userID, eventJSON)
	})

	go syncer.Run(streamCtx)

	log.Printf("ConversationStreams: session %s opened %s", userID, entity.ConversationKey(role, counterpartID))
}

// Close stops the session's sync loop, if any.
func (s *ConversationStreams) Close(userID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if cancel, ok := s.active[userID]; ok {
		cancel()
		delete(s.active, userID)
		log.Printf("ConversationStreams: session %s closed its stream", userID)
	}
}
