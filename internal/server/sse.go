package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rasoihq/kitchen-service/pkg/logger"
	"github.com/rasoihq/kitchen-service/pkg/stream"
)

// EventsHandler streams change events to clients over server-sent events.
// Clients pass ?collections=inventory,recipes to narrow the feed; an empty
// filter subscribes to everything.
type EventsHandler struct {
	hub    *stream.Hub
	logger logger.ZapLogger
}

func NewEventsHandler(hub *stream.Hub, log logger.ZapLogger) *EventsHandler {
	return &EventsHandler{hub: hub, logger: log}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	var collections []string
	if raw := r.URL.Query().Get("collections"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				collections = append(collections, c)
			}
		}
	}

	sub := h.hub.Subscribe(collections...)
	defer h.hub.Unsubscribe(sub.ID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case evt, ok := <-sub.C:
			if !ok {
				return
			}
			data, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
