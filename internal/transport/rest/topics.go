package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/chartboard/internal/domain"
	"github.com/heartmarshall/chartboard/internal/service/board"
	"github.com/heartmarshall/chartboard/internal/service/editor"
)

// topicStore is the part of board.Store the topic endpoints use.
type topicStore interface {
	Topics() []domain.Topic
	Topic(id int64) (domain.Topic, error)
	Version() uint64
	Load(ctx context.Context) error
	AddTopic(ctx context.Context, in board.CreateTopicInput) (domain.Topic, error)
	UpdateTopic(ctx context.Context, in board.UpdateTopicInput) (domain.Topic, error)
	DeleteTopic(ctx context.Context, in board.DeleteTopicInput) error
}

type chartRenderer interface {
	Render(ctx context.Context, spec domain.ChartSpec) ([]byte, error)
}

// TopicHandler serves topic CRUD, aggregates, chart images and reload.
type TopicHandler struct {
	store    topicStore
	renderer chartRenderer
	log      *slog.Logger
}

// NewTopicHandler creates a TopicHandler.
func NewTopicHandler(store topicStore, renderer chartRenderer, logger *slog.Logger) *TopicHandler {
	return &TopicHandler{store: store, renderer: renderer, log: logger.With("handler", "topics")}
}

// List handles GET /api/topics.
func (h *TopicHandler) List(w http.ResponseWriter, r *http.Request) {
	version := h.store.Version()
	topics := h.store.Topics()

	resp := topicsResponse{Version: version, Topics: make([]topicResponse, len(topics))}
	for i, t := range topics {
		resp.Topics[i] = toTopicResponse(t)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/topics/{id}.
func (h *TopicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.store.Topic(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

// Create handles POST /api/topics.
func (h *TopicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var form editor.TopicForm
	if err := decodeJSON(w, r, &form); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	in, err := form.ToCreateInput()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.store.AddTopic(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTopicResponse(t))
}

// Update handles PATCH /api/topics/{id}.
func (h *TopicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	var req topicPatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	in := board.UpdateTopicInput{TopicID: id, Name: req.Name}
	if req.ChartType != nil {
		kind := domain.ParseChartType(*req.ChartType)
		in.ChartType = &kind
	}
	t, err := h.store.UpdateTopic(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTopicResponse(t))
}

// Delete handles DELETE /api/topics/{id}.
func (h *TopicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.store.DeleteTopic(r.Context(), board.DeleteTopicInput{TopicID: id}); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/topics/{id}/stats.
func (h *TopicHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.store.Topic(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(id, domain.ComputeStats(t.Details)))
}

// Chart handles GET /api/topics/{id}/chart.png.
func (h *TopicHandler) Chart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	t, err := h.store.Topic(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	png, err := h.renderer.Render(r.Context(), t.Spec())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// Reload handles POST /api/reload by re-reading the remote store.
func (h *TopicHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Load(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	h.List(w, r)
}
