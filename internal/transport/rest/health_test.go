package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type loadStateMock struct {
	loaded  bool
	version uint64
}

func (m loadStateMock) Loaded() bool    { return m.loaded }
func (m loadStateMock) Version() uint64 { return m.version }

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(pingerMock{err: errors.New("down")}, loadStateMock{}, "v1")

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Timestamp.IsZero() {
		t.Errorf("resp = %+v", resp)
	}
}

func TestReadyAndHealth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		loaded     bool
		wantStatus int
		wantDB     string
		wantMirror string
	}{
		{"all ok", nil, true, http.StatusOK, "ok", "ok"},
		{"database down", errors.New("connection refused"), true, http.StatusServiceUnavailable, "down", "ok"},
		{"mirror not loaded", nil, false, http.StatusServiceUnavailable, "ok", "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthHandler(pingerMock{err: tt.pingErr}, loadStateMock{loaded: tt.loaded, version: 7}, "v1.0.0")

			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("Ready status = %d, want %d", rec.Code, tt.wantStatus)
			}

			rec = httptest.NewRecorder()
			h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			if rec.Code != tt.wantStatus {
				t.Errorf("Health status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Version != "v1.0.0" {
				t.Errorf("version = %q", resp.Version)
			}
			if got := resp.Components["database"].Status; got != tt.wantDB {
				t.Errorf("database = %q, want %q", got, tt.wantDB)
			}
			if got := resp.Components["mirror"].Status; got != tt.wantMirror {
				t.Errorf("mirror = %q, want %q", got, tt.wantMirror)
			}
			if tt.pingErr == nil && resp.Components["database"].Latency == "" {
				t.Error("expected database latency")
			}
		})
	}
}
