package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/stitbu/satupintu/internal/data"
	"github.com/stitbu/satupintu/internal/model"
)

// EventsHandler streams realtime changes as server-sent events. With no
// remote configured it reports the stream as unavailable; clients then fall
// back to manual refresh.
func (h *APIHandler) EventsHandler(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	events := make(chan []byte, 16)
	push := func(kind string, payload interface{}) {
		body, err := json.Marshal(map[string]interface{}{"type": kind, "payload": payload})
		if err != nil {
			return
		}
		select {
		case events <- body:
		default: // slow client, drop (delivery is best-effort)
		}
	}

	gen := h.data.RemoteGeneration()
	sub := h.data.Subscribe(r.Context(), time.Duration(h.pollSecs)*time.Second, data.RealtimeCallbacks{
		OnTasksChanged:  func() { push("tasks_changed", nil) },
		OnMessage:       func(msg model.ChatMessage) { push("message", msg) },
		OnGroupsChanged: func() { push("groups_changed", nil) },
	})
	if sub == nil {
		http.Error(w, "Realtime unavailable: remote not configured", http.StatusServiceUnavailable)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-keepalive.C:
			if h.data.RemoteGeneration() != gen {
				// Connection was swapped; end the stream so the client
				// resubscribes against the new remote.
				return
			}
			fmt.Fprint(w, ": keepalive\n\n")
			flusher.Flush()
		case body := <-events:
			fmt.Fprintf(w, "data: %s\n\n", body)
			flusher.Flush()
		}
	}
}
