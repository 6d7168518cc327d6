package rest

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/chartboard/internal/domain"
	"github.com/heartmarshall/chartboard/internal/service/export"
)

type exporter interface {
	Export(ctx context.Context, topics []domain.Topic, req export.Request) (export.File, error)
}

type snapshotter interface {
	Topics() []domain.Topic
	Loaded() bool
}

// ExportHandler serves workbook downloads.
type ExportHandler struct {
	engine   exporter
	store    snapshotter
	fallback export.ImageSource
	log      *slog.Logger
}

// NewExportHandler creates an ExportHandler. fallback renders charts the
// browser did not upload.
func NewExportHandler(engine exporter, store snapshotter, fallback export.ImageSource, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{engine: engine, store: store, fallback: fallback, log: logger.With("handler", "export")}
}

type exportRequest struct {
	Layout string `json:"layout"`
	// Charts maps "chart-<topic id>" to a base64 PNG or a PNG data URL.
	Charts map[string]string `json:"charts"`
}

// Download handles GET /api/export with server rendered charts.
func (h *ExportHandler) Download(w http.ResponseWriter, r *http.Request) {
	layout := domain.ExportLayout(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("layout"))))
	h.export(w, r, export.Request{Layout: layout})
}

// Upload handles POST /api/export with charts rasterized by the browser.
func (h *ExportHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	images := make(map[string][]byte, len(req.Charts))
	var errs []domain.FieldError
	for key, encoded := range req.Charts {
		data, err := decodeImage(encoded)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "charts." + key, Message: "must be a base64 PNG"})
			continue
		}
		images[key] = data
	}
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	h.export(w, r, export.Request{
		Layout: domain.ExportLayout(strings.ToLower(strings.TrimSpace(req.Layout))),
		Images: export.NewUploadedImages(images, h.fallback),
	})
}

func (h *ExportHandler) export(w http.ResponseWriter, r *http.Request, req export.Request) {
	if !h.store.Loaded() {
		handleError(h.log, w, r, domain.ErrNotLoaded)
		return
	}
	file, err := h.engine.Export(r.Context(), h.store.Topics(), req)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", contentDisposition(file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Data)
}

// decodeImage accepts plain base64 or a "data:image/png;base64," URL.
func decodeImage(s string) ([]byte, error) {
	if _, payload, ok := strings.Cut(s, ";base64,"); ok && strings.HasPrefix(s, "data:") {
		s = payload
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}
