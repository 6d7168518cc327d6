package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

const pingTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

type loadState interface {
	Loaded() bool
	Version() uint64
}

// HealthHandler serves liveness, readiness and health probes.
type HealthHandler struct {
	db      dbPinger
	mirror  loadState
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, mirror loadState, version string) *HealthHandler {
	return &HealthHandler{db: db, mirror: mirror, version: version}
}

// HealthResponse is the JSON body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 once the mirror is loaded and the database answers.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context())
	writeJSON(w, statusCode(components), HealthResponse{
		Status:    overall(components),
		Timestamp: time.Now(),
	})
}

// Health is Ready with per-component detail and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := h.check(r.Context())
	writeJSON(w, statusCode(components), HealthResponse{
		Status:     overall(components),
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context) map[string]CompStatus {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	components := make(map[string]CompStatus, 2)

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		components["database"] = CompStatus{Status: "down"}
	} else {
		components["database"] = CompStatus{Status: "ok", Latency: time.Since(start).String()}
	}

	if h.mirror.Loaded() {
		components["mirror"] = CompStatus{Status: "ok", Detail: "version " + strconv.FormatUint(h.mirror.Version(), 10)}
	} else {
		components["mirror"] = CompStatus{Status: "down", Detail: "not loaded"}
	}
	return components
}

func overall(components map[string]CompStatus) string {
	for _, c := range components {
		if c.Status != "ok" {
			return "down"
		}
	}
	return "ok"
}

func statusCode(components map[string]CompStatus) int {
	if overall(components) != "ok" {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
