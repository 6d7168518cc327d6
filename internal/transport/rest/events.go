package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/chartboard/internal/domain"
)

const defaultHeartbeat = 30 * time.Second

type subscriber interface {
	Subscribe(ctx context.Context) <-chan domain.Change
}

type versioner interface {
	Version() uint64
}

// EventsHandler streams mirror changes as server-sent events.
type EventsHandler struct {
	broker    subscriber
	store     versioner
	heartbeat time.Duration
	log       *slog.Logger
}

// NewEventsHandler creates an EventsHandler. A zero heartbeat uses 30s.
func NewEventsHandler(broker subscriber, store versioner, heartbeat time.Duration, logger *slog.Logger) *EventsHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &EventsHandler{broker: broker, store: store, heartbeat: heartbeat, log: logger.With("handler", "events")}
}

// Stream handles GET /api/events. The first event is "hello" with the
// current version so a client can tell whether it missed changes.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if ctx.Err() != nil {
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	rc := http.NewResponseController(w)
	changes := h.broker.Subscribe(ctx)

	if err := h.send(w, rc, "hello", map[string]uint64{"version": h.store.Version()}); err != nil {
		h.log.WarnContext(ctx, "sse handshake failed", slog.String("error", err.Error()))
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := h.send(w, rc, change.Kind.String(), change); err != nil {
				h.log.DebugContext(ctx, "sse client gone", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *EventsHandler) send(w http.ResponseWriter, rc *http.ResponseController, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return err
	}
	if err := rc.Flush(); err != nil {
		return err
	}
	// Not every writer supports deadlines; the stream works without one.
	_ = rc.SetWriteDeadline(time.Now().Add(2 * h.heartbeat))
	return nil
}
