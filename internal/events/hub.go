// internal/events/hub.go
package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sisvmarcas/crm-backend/internal/middleware"
)

// ChangeEvent mirrors a committed write so connected clients can re-fetch.
type ChangeEvent struct {
	Table     string    `json:"table"`
	Action    string    `json:"action"`
	LeadID    uuid.UUID `json:"leadId"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

type Hub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[chan string]struct{})}
}

func (h *Hub) Subscribe() chan string {
	ch := make(chan string, 16)
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	delete(h.clients, ch)
	h.mu.Unlock()
	close(ch)
}

// Publish marshals the event once and fans it out. Subscribers that
// cannot keep up lose the event; a re-fetch on the next one converges.
func (h *Hub) Publish(evt ChangeEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		logrus.WithError(err).Error("Failed to marshal change event")
		return
	}
	msg := string(payload)

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
			middleware.RecordFeedEventDelivered()
		default:
			middleware.RecordFeedEventDropped()
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
