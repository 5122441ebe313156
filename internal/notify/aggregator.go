package notify

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"complidesk/internal/domain/entity"
)

// UnreadStore is the slice of the message store the aggregator needs.
type UnreadStore interface {
	ListUnread(ctx context.Context, roles []string) ([]*entity.Message, error)
	MarkConversationRead(ctx context.Context, role, counterpartID string) error
	MarkAllRead(ctx context.Context, roles []string) error
}

// IdentityResolver maps a conversation counterpart to display text for the
// notification.
type IdentityResolver interface {
	Resolve(ctx context.Context, role, counterpartID string) (string, error)
}

// OpenFunc is invoked after a notification is opened so the host UI can
// switch to that conversation.
type OpenFunc func(role, counterpartID string)

var counterpartRoles = []string{entity.RoleClient, entity.RoleSeller}

// Aggregator scans the store for unread counterpart messages and turns each
// conversation with a backlog into at most one visible Notification. It owns
// all mutable notification state for a dashboard session: the visible list,
// the de-duplication cache, the first-load flag and the bulk-clear guard.
// Construct one per session and tear it down by cancelling Run's context.
type Aggregator struct {
	store       UnreadStore
	resolver    IdentityResolver
	alerter     Alerter
	cache       *Cache
	clk         clock.Clock
	interval    time.Duration
	settleDelay time.Duration
	onOpen      OpenFunc

	events chan struct{}

	mutex     sync.Mutex
	visible   []*Notification
	firstLoad bool
	busy      bool
	clearing  bool
}

func NewAggregator(store UnreadStore, resolver IdentityResolver, alerter Alerter, cache *Cache, clk clock.Clock, interval, settleDelay time.Duration, onOpen OpenFunc) *Aggregator {
	return &Aggregator{
		store:       store,
		resolver:    resolver,
		alerter:     alerter,
		cache:       cache,
		clk:         clk,
		interval:    interval,
		settleDelay: settleDelay,
		onOpen:      onOpen,
		events:      make(chan struct{}, 1),
		firstLoad:   true,
	}
}

// Run reconciles immediately, then on every poll tick and on every change
// feed event, until ctx is cancelled.
func (a *Aggregator) Run(ctx context.Context) {
	a.Reconcile(ctx)

	ticker := a.clk.Ticker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Reconcile(ctx)
		case <-a.events:
			a.Reconcile(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Notify requests a reconcile outside the regular poll schedule, typically
// from a change-feed insert callback. Signals while a reconcile is pending
// coalesce into one.
func (a *Aggregator) Notify() {
	select {
	case a.events <- struct{}{}:
	default:
	}
}

// Reconcile performs one aggregation pass. Skipped entirely while a bulk
// clear is settling; overlapping invocations coalesce via the busy flag.
func (a *Aggregator) Reconcile(ctx context.Context) {
	a.mutex.Lock()
	if a.clearing || a.busy {
		a.mutex.Unlock()
		return
	}
	a.busy = true
	a.mutex.Unlock()

	defer func() {
		a.mutex.Lock()
		a.busy = false
		a.mutex.Unlock()
	}()

	unread, err := a.store.ListUnread(ctx, counterpartRoles)
	if err != nil {
		log.Printf("Aggregator: unread scan failed: %v", err)
		return
	}

	// Keep only the most recent unread message per conversation.
	latest := make(map[string]*entity.Message)
	for _, msg := range unread {
		key := entity.ConversationKey(msg.SenderRole, msg.ConversationID)
		if cur, ok := latest[key]; !ok || msg.CreatedAt.After(cur.CreatedAt) {
			latest[key] = msg
		}
	}

	candidates := make([]*entity.Message, 0, len(latest))
	for key, msg := range latest {
		if a.cache.Contains(key) {
			continue
		}
		candidates = append(candidates, msg)
	}

	// Oldest first so the newest discovery ends up at the head of the list.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	var batch []*Notification
	for _, msg := range candidates {
		text, err := a.resolver.Resolve(ctx, msg.SenderRole, msg.ConversationID)
		if err != nil {
			// Skip this conversation for now; the message stays unread and
			// uncached, so the next pass retries.
			log.Printf("Aggregator: identity resolution failed for %s %s: %v", msg.SenderRole, msg.ConversationID, err)
			continue
		}

		n := newNotification(msg, text)
		batch = append(batch, n)
		a.cache.Add(n.Key)
	}

	a.mutex.Lock()
	// A bulk clear may have started while this pass was fetching; appending
	// now would resurrect entries the clear just removed. Drop the batch and
	// undo its optimistic cache registrations.
	if a.clearing {
		a.mutex.Unlock()
		for _, n := range batch {
			a.cache.Remove(n.Key)
		}
		return
	}
	for _, n := range batch {
		a.visible = append([]*Notification{n}, a.visible...)
	}
	suppress := a.firstLoad
	a.firstLoad = false
	a.mutex.Unlock()

	if !suppress && len(batch) > 0 {
		a.alerter.Alert(ctx, batch)
	}
}

// Notifications returns the visible list, most recent discovery first.
func (a *Aggregator) Notifications() []*Notification {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	out := make([]*Notification, len(a.visible))
	copy(out, a.visible)
	return out
}

// MarkSeen flags one visible notification as seen. UI-local state only.
func (a *Aggregator) MarkSeen(key string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, n := range a.visible {
		if n.Key == key {
			n.Seen = true
			return
		}
	}
}

// Open marks every unread message of the notification's conversation as read
// in the store, removes the notification, drops its cache key so a future
// unread message re-notifies, and invokes the host callback. On a store
// failure nothing changes locally.
func (a *Aggregator) Open(ctx context.Context, role, counterpartID string) error {
	if err := a.store.MarkConversationRead(ctx, role, counterpartID); err != nil {
		return err
	}

	a.ConversationRead(role, counterpartID)

	if a.onOpen != nil {
		a.onOpen(role, counterpartID)
	}

	return nil
}

// ConversationRead drops the local notification state for a conversation
// whose messages were marked read (or removed) outside the aggregator, such
// as by the chat routes. The cache key must go too: a still-registered key
// would silently swallow the notification for the conversation's next unread
// message.
func (a *Aggregator) ConversationRead(role, counterpartID string) {
	key := entity.ConversationKey(role, counterpartID)

	a.mutex.Lock()
	a.removeLocked(key)
	a.mutex.Unlock()

	a.cache.Remove(key)
}

// Dismiss hides a notification without touching the store. The cache key is
// kept (or registered) so the still-unread backlog does not re-alert.
func (a *Aggregator) Dismiss(key string) {
	a.mutex.Lock()
	a.removeLocked(key)
	a.mutex.Unlock()

	a.cache.Add(key)
}

// ClearAll marks every unread counterpart message read and empties the
// visible list. The clearing guard suppresses reconciles until a settle
// delay absorbs the change feed re-delivering the just-written rows; the
// delay is a tunable debounce, not a proven bound.
func (a *Aggregator) ClearAll(ctx context.Context) error {
	a.mutex.Lock()
	if a.clearing {
		a.mutex.Unlock()
		return nil
	}
	a.clearing = true
	keys := make([]string, 0, len(a.visible))
	for _, n := range a.visible {
		keys = append(keys, n.Key)
	}
	a.mutex.Unlock()

	if err := a.store.MarkAllRead(ctx, counterpartRoles); err != nil {
		a.mutex.Lock()
		a.clearing = false
		a.mutex.Unlock()
		return err
	}

	a.mutex.Lock()
	for _, key := range keys {
		a.cache.Add(key)
	}
	a.visible = nil
	a.mutex.Unlock()

	a.clk.AfterFunc(a.settleDelay, func() {
		a.mutex.Lock()
		a.clearing = false
		a.mutex.Unlock()
	})

	return nil
}

func (a *Aggregator) removeLocked(key string) {
	for i, n := range a.visible {
		if n.Key == key {
			a.visible = append(a.visible[:i], a.visible[i+1:]...)
			return
		}
	}
}
