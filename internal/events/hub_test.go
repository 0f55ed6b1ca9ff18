// internal/events/hub_test.go
package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHubPublishDeliversToAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1 := hub.Subscribe()
	ch2 := hub.Subscribe()
	defer hub.Unsubscribe(ch1)
	defer hub.Unsubscribe(ch2)

	leadID := uuid.New()
	hub.Publish(ChangeEvent{Table: "leads", Action: ActionUpdate, LeadID: leadID})

	for _, ch := range []chan string{ch1, ch2} {
		select {
		case msg := <-ch:
			var evt ChangeEvent
			assert.NoError(t, json.Unmarshal([]byte(msg), &evt))
			assert.Equal(t, "leads", evt.Table)
			assert.Equal(t, ActionUpdate, evt.Action)
			assert.Equal(t, leadID, evt.LeadID)
			assert.False(t, evt.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("expected event was not delivered")
		}
	}
}

func TestHubDropsEventsForSlowSubscriber(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe()
	defer hub.Unsubscribe(ch)

	// Fill the buffer past capacity without reading
	for i := 0; i < 32; i++ {
		hub.Publish(ChangeEvent{Table: "leads", Action: ActionInsert, LeadID: uuid.New()})
	}

	// Buffered events are still readable, the overflow was dropped
	assert.Equal(t, cap(ch), len(ch))
}

func TestHubUnsubscribeRemovesClient(t *testing.T) {
	hub := NewHub()

	ch := hub.Subscribe()
	assert.Equal(t, 1, hub.SubscriberCount())

	hub.Unsubscribe(ch)
	assert.Equal(t, 0, hub.SubscriberCount())

	// Publishing after unsubscribe must not panic on the closed channel
	hub.Publish(ChangeEvent{Table: "leads", Action: ActionDelete, LeadID: uuid.New()})
}
