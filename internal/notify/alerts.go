package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Alerter presents a batch of newly discovered notifications: one sound cue
// per batch and one desktop notice per notification. Alerts for the first
// reconcile after startup are suppressed by the Aggregator, not here.
type Alerter interface {
	Alert(ctx context.Context, batch []*Notification)
}

// Broadcaster is satisfied by the websocket connection manager.
type Broadcaster interface {
	Broadcast(message []byte)
}

// WebsocketAlerter pushes alert events to every connected dashboard session.
// The browser plays the sound and raises desktop notifications.
type WebsocketAlerter struct {
	manager Broadcaster
}

func NewWebsocketAlerter(manager Broadcaster) *WebsocketAlerter {
	return &WebsocketAlerter{manager: manager}
}

func (a *WebsocketAlerter) Alert(ctx context.Context, batch []*Notification) {
	if len(batch) == 0 {
		return
	}

	sound := map[string]interface{}{
		"type":      "notification_sound",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	soundJSON, err := json.Marshal(sound)
	if err != nil {
		log.Printf("WebsocketAlerter: failed to marshal sound event: %v", err)
		return
	}
	a.manager.Broadcast(soundJSON)

	for _, n := range batch {
		event := map[string]interface{}{
			"type":         "desktop_notification",
			"notification": n,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		}
		eventJSON, err := json.Marshal(event)
		if err != nil {
			log.Printf("WebsocketAlerter: failed to marshal notification event: %v", err)
			continue
		}
		a.manager.Broadcast(eventJSON)
	}
}
