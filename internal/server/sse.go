package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gridsmith/gridview/pkg/topology"
)

// event is one server-sent event: a named payload.
type event struct {
	name string
	data []byte
}

// hub fans topology and selection events out to connected SSE clients.
// Slow clients drop events instead of blocking the view's event loop.
type hub struct {
	logger *log.Logger

	mu      sync.RWMutex
	clients map[string]chan event
}

func newHub(logger *log.Logger) *hub {
	return &hub{
		logger:  logger,
		clients: make(map[string]chan event),
	}
}

// broadcast sends a named JSON event to every connected client.
func (h *hub) broadcast(name string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("drop event", "event", name, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.clients {
		select {
		case ch <- event{name: name, data: data}:
		default:
			h.logger.Debug("client lagging, event dropped", "client", id, "event", name)
		}
	}
}

// serveHTTP returns the SSE handler. Each client first receives the
// current view state, then every subsequent topology/selection event.
func (h *hub) serveHTTP(state func() topology.ViewState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming unsupported", http.StatusInternalServerError)
			return
		}

		id := uuid.NewString()
		ch := make(chan event, 16)

		h.mu.Lock()
		h.clients[id] = ch
		h.mu.Unlock()
		h.logger.Debug("sse client connected", "client", id)

		defer func() {
			h.mu.Lock()
			delete(h.clients, id)
			h.mu.Unlock()
			h.logger.Debug("sse client disconnected", "client", id)
		}()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		// Initial snapshot so clients need no separate fetch.
		if data, err := json.Marshal(state()); err == nil {
			writeEvent(w, event{name: "topology", data: data})
			flusher.Flush()
		}

		for {
			select {
			case <-r.Context().Done():
				return
			case ev := <-ch:
				writeEvent(w, ev)
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, ev event) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.name, ev.data)
}
