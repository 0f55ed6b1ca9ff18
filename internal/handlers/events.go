// internal/handlers/events.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sisvmarcas/crm-backend/internal/events"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

type EventsHandler struct {
	hub *events.Hub
}

func NewEventsHandler(hub *events.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// GET /v1/events
//
// SSE change feed. Clients re-fetch the full lead list on every event, so a
// dropped event only delays convergence until the next one.
func (h *EventsHandler) Stream(c *gin.Context) {
	if _, ok := actorFromContext(c); !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		utils.InternalErrorResponse(c, "streaming unsupported")
		return
	}

	ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	// Opening ping so the client knows the stream is live
	fmt.Fprintf(c.Writer, "event: ping\ndata: {}\n\n")
	flusher.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case msg, open := <-ch:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "event: change\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
