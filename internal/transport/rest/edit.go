package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/chartboard/internal/service/editor"
)

type editSession interface {
	BeginTopicEdit(topicID int64) (editor.Draft, error)
	BeginDetailEdit(topicID, detailID int64) (editor.Draft, error)
	Current() (editor.Draft, bool)
	SetTopicDraft(form editor.TopicForm) error
	SetDetailDraft(form editor.DetailForm) error
	Commit(ctx context.Context) error
	Cancel()
}

// EditHandler exposes the single edit draft of the dashboard.
type EditHandler struct {
	session editSession
	log     *slog.Logger
}

// NewEditHandler creates an EditHandler.
func NewEditHandler(session editSession, logger *slog.Logger) *EditHandler {
	return &EditHandler{session: session, log: logger.With("handler", "edit")}
}

// Current handles GET /api/edit. 204 when nothing is being edited.
func (h *EditHandler) Current(w http.ResponseWriter, r *http.Request) {
	d, ok := h.session.Current()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// BeginTopic handles POST /api/edit/topics/{id}.
func (h *EditHandler) BeginTopic(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	d, err := h.session.BeginTopicEdit(id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// BeginDetail handles POST /api/edit/topics/{id}/details/{detailID}.
func (h *EditHandler) BeginDetail(w http.ResponseWriter, r *http.Request) {
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
	d, err := h.session.BeginDetailEdit(topicID, detailID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// SetDraft handles PUT /api/edit with the form matching the draft kind.
func (h *EditHandler) SetDraft(w http.ResponseWriter, r *http.Request) {
	d, ok := h.session.Current()
	if !ok {
		handleError(h.log, w, r, editor.ErrNoDraft)
		return
	}

	var err error
	switch d.Kind {
	case editor.DraftTopic:
		var form editor.TopicForm
		if err = decodeJSON(w, r, &form); err == nil {
			err = h.session.SetTopicDraft(form)
		}
	case editor.DraftDetail:
		var req detailRequest
		if err = decodeJSON(w, r, &req); err == nil {
			err = h.session.SetDetailDraft(editor.DetailForm{Name: req.Name, Value: string(req.Value), Color: req.Color})
		}
	}
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	d, _ = h.session.Current()
	writeJSON(w, http.StatusOK, d)
}

// Commit handles POST /api/edit/commit.
func (h *EditHandler) Commit(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Commit(r.Context()); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Cancel handles DELETE /api/edit.
func (h *EditHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.session.Cancel()
	w.WriteHeader(http.StatusNoContent)
}
