package rest

import "net/http"

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Topics  *TopicHandler
	Details *DetailHandler
	Export  *ExportHandler
	Events  *EventsHandler
	Edit    *EditHandler
	Health  *HealthHandler
}

// NewRouter mounts all routes on a ServeMux. Middleware is applied by the caller.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/topics", h.Topics.List)
	mux.HandleFunc("POST /api/topics", h.Topics.Create)
	mux.HandleFunc("GET /api/topics/{id}", h.Topics.Get)
	mux.HandleFunc("PATCH /api/topics/{id}", h.Topics.Update)
	mux.HandleFunc("DELETE /api/topics/{id}", h.Topics.Delete)
	mux.HandleFunc("GET /api/topics/{id}/stats", h.Topics.Stats)
	mux.HandleFunc("GET /api/topics/{id}/chart.png", h.Topics.Chart)
	mux.HandleFunc("POST /api/reload", h.Topics.Reload)

	mux.HandleFunc("POST /api/topics/{id}/details", h.Details.Create)
	mux.HandleFunc("PATCH /api/topics/{id}/details/{detailID}", h.Details.Update)
	mux.HandleFunc("DELETE /api/topics/{id}/details/{detailID}", h.Details.Delete)
	mux.HandleFunc("PATCH /api/topics/{id}/details/at/{index}", h.Details.UpdateAt)
	mux.HandleFunc("DELETE /api/topics/{id}/details/at/{index}", h.Details.DeleteAt)

	mux.HandleFunc("GET /api/export", h.Export.Download)
	mux.HandleFunc("POST /api/export", h.Export.Upload)

	mux.HandleFunc("GET /api/events", h.Events.Stream)

	mux.HandleFunc("GET /api/edit", h.Edit.Current)
	mux.HandleFunc("PUT /api/edit", h.Edit.SetDraft)
	mux.HandleFunc("DELETE /api/edit", h.Edit.Cancel)
	mux.HandleFunc("POST /api/edit/commit", h.Edit.Commit)
	mux.HandleFunc("POST /api/edit/topics/{id}", h.Edit.BeginTopic)
	mux.HandleFunc("POST /api/edit/topics/{id}/details/{detailID}", h.Edit.BeginDetail)

	return mux
}
