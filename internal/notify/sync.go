package notify

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"complidesk/internal/domain/entity"
)

// MessageLister is the slice of the message store the sync loop needs.
type MessageLister interface {
	ListByConversation(ctx context.Context, role, counterpartID string) ([]*entity.Message, error)
}

// Syncer keeps the in-memory history of one open conversation fresh by
// polling the data store on a fixed interval. Each successful fetch replaces
// the whole snapshot; a failed fetch is logged and retried on the next tick.
type Syncer struct {
	store         MessageLister
	clk           clock.Clock
	interval      time.Duration
	role          string
	counterpartID string
	onUpdate      func([]*entity.Message)

	mutex    sync.Mutex
	messages []*entity.Message
}

func NewSyncer(store MessageLister, clk clock.Clock, interval time.Duration, role, counterpartID string, onUpdate func([]*entity.Message)) *Syncer {
	return &Syncer{
		store:         store,
		clk:           clk,
		interval:      interval,
		role:          role,
		counterpartID: counterpartID,
		onUpdate:      onUpdate,
	}
}

// Run refreshes immediately and then on every tick until ctx is cancelled.
func (s *Syncer) Run(ctx context.Context) {
	s.Refresh(ctx)

	ticker := s.clk.Ticker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Refresh performs one fetch-and-replace pass. Transient failures are
// invisible to the caller beyond a missed update.
func (s *Syncer) Refresh(ctx context.Context) {
	messages, err := s.store.ListByConversation(ctx, s.role, s.counterpartID)
	if err != nil {
		log.Printf("Syncer: fetch failed for conversation %s-%s: %v", s.role, s.counterpartID, err)
		return
	}

	s.mutex.Lock()
	s.messages = messages
	s.mutex.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(messages)
	}
}

// Messages returns the latest confirmed snapshot in the store's ascending
// creation-time order.
func (s *Syncer) Messages() []*entity.Message {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]*entity.Message, len(s.messages))
	copy(out, s.messages)
	return out
}
