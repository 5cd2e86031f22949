package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/turing/pkg/domain"
)

// allMachines is the subscription key of clients that did not filter by machine.
const allMachines = "*"

// StreamManager fans finished runs out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{} // machine -> set of channels
	logger      *slog.Logger
}

// NewStreamManager creates an empty StreamManager. A nil logger discards.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a channel for runs of machine ("" for every machine). The
// returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(machine string) (chan string, func()) {
	if machine == "" {
		machine = allMachines
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[machine]; !ok {
		sm.subscribers[machine] = make(map[chan<- string]struct{})
	}
	sm.subscribers[machine][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[machine]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, machine)
			}
		}
	}
}

// Broadcast sends msg to the subscribers of machine and to unfiltered subscribers.
// Slow clients lose messages instead of blocking the run.
func (sm *StreamManager) Broadcast(machine string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, key := range []string{machine, allMachines} {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- msg:
			default:
				sm.logger.Warn("SSE: client buffer full, dropping message", "machine", machine)
			}
		}
	}
}

// Hooks publishes every finished run, halted or failed, as its JSON snapshot.
func (sm *StreamManager) Hooks() domain.LifecycleHooks {
	publish := func(_ context.Context, ev *domain.RunEvent) {
		if ev.Snapshot == nil {
			return
		}
		b, err := json.Marshal(ev.Snapshot)
		if err != nil {
			sm.logger.Error("SSE: encode snapshot", "run_id", ev.RunID, "error", err)
			return
		}
		sm.Broadcast(ev.Machine, string(b))
	}
	return domain.LifecycleHooks{OnHalt: publish, OnError: publish}
}

// SubscribeEvents handles GET /events?machine=name (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, fmt.Errorf("streaming not supported"))
		return
	}

	machine := r.URL.Query().Get("machine")
	ch, cancel := s.Streams.Subscribe(machine)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: run\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
