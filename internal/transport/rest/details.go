package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/chartboard/internal/domain"
	"github.com/heartmarshall/chartboard/internal/service/board"
	"github.com/heartmarshall/chartboard/internal/service/editor"
)

type detailStore interface {
	AddDetail(ctx context.Context, in board.AddDetailInput) (domain.Detail, error)
	UpdateDetail(ctx context.Context, in board.UpdateDetailInput) (domain.Detail, error)
	DeleteDetail(ctx context.Context, in board.DeleteDetailInput) error
	UpdateDetailAt(ctx context.Context, in board.UpdateDetailAtInput) (domain.Detail, error)
	DeleteDetailAt(ctx context.Context, in board.DeleteDetailAtInput) error
}

// DetailHandler serves detail mutations addressed by id or by position.
type DetailHandler struct {
	store detailStore
	log   *slog.Logger
}

// NewDetailHandler creates a DetailHandler.
func NewDetailHandler(store detailStore, logger *slog.Logger) *DetailHandler {
	return &DetailHandler{store: store, log: logger.With("handler", "details")}
}

// fields decodes and validates a detail form body.
func (h *DetailHandler) fields(w http.ResponseWriter, r *http.Request) (board.DetailFields, error) {
	var req detailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return board.DetailFields{}, err
	}
	form := editor.DetailForm{Name: req.Name, Value: string(req.Value), Color: req.Color}
	return form.Fields()
}

// Create handles POST /api/topics/{id}/details.
func (h *DetailHandler) Create(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	fields, err := h.fields(w, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	d, err := h.store.AddDetail(r.Context(), board.AddDetailInput{TopicID: topicID, DetailFields: fields})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDetailResponse(d))
}

// Update handles PATCH /api/topics/{id}/details/{detailID}.
func (h *DetailHandler) Update(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	detailID, err := pathID(r, "detailID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	fields, err := h.fields(w, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	d, err := h.store.UpdateDetail(r.Context(), board.UpdateDetailInput{TopicID: topicID, DetailID: detailID, DetailFields: fields})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(d))
}

// Delete handles DELETE /api/topics/{id}/details/{detailID}.
func (h *DetailHandler) Delete(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	detailID, err := pathID(r, "detailID")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.store.DeleteDetail(r.Context(), board.DeleteDetailInput{TopicID: topicID, DetailID: detailID}); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateAt handles PATCH /api/topics/{id}/details/at/{index}.
func (h *DetailHandler) UpdateAt(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	index, err := pathIndex(r, "index")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	fields, err := h.fields(w, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	d, err := h.store.UpdateDetailAt(r.Context(), board.UpdateDetailAtInput{TopicID: topicID, Index: index, DetailFields: fields})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(d))
}

// DeleteAt handles DELETE /api/topics/{id}/details/at/{index}.
func (h *DetailHandler) DeleteAt(w http.ResponseWriter, r *http.Request) {
	topicID, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	index, err := pathIndex(r, "index")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if err := h.store.DeleteDetailAt(r.Context(), board.DeleteDetailAtInput{TopicID: topicID, Index: index}); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
