//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/chartboard/internal/adapter/chart"
	"github.com/heartmarshall/chartboard/internal/adapter/postgres/detail"
	"github.com/heartmarshall/chartboard/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/chartboard/internal/adapter/postgres/topic"
	"github.com/heartmarshall/chartboard/internal/config"
	"github.com/heartmarshall/chartboard/internal/events"
	"github.com/heartmarshall/chartboard/internal/service/board"
	"github.com/heartmarshall/chartboard/internal/service/editor"
	"github.com/heartmarshall/chartboard/internal/service/export"
	"github.com/heartmarshall/chartboard/internal/transport/middleware"
	"github.com/heartmarshall/chartboard/internal/transport/rest"
)

// testServer wraps the full HTTP stack on top of a real database.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Store  *board.Store
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(bytes.TrimRight(p, "\n")))
	return len(p), nil
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	truncate(t, pool)

	log := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	broker := events.NewBroker(log, 16)
	t.Cleanup(broker.Close)

	store := board.NewStore(log, topic.New(pool), detail.New(pool), broker, config.StoreConfig{
		RemoteTimeout: 5 * time.Second,
		LoadAttempts:  1,
	})
	require.NoError(t, store.Load(context.Background()))

	renderer := chart.New(320, 240)
	rendered := export.NewRenderedImages(renderer)
	engine := export.NewEngine(log, rendered, config.ExportConfig{
		Layout:            "per_topic",
		ChartWidth:        320,
		ChartHeight:       240,
		RenderTimeout:     10 * time.Second,
		RenderConcurrency: 2,
		FilenamePrefix:    "chart-data",
	})

	router := rest.NewRouter(rest.Handlers{
		Topics:  rest.NewTopicHandler(store, renderer, log),
		Details: rest.NewDetailHandler(store, log),
		Export:  rest.NewExportHandler(engine, store, rendered, log),
		Events:  rest.NewEventsHandler(broker, store, time.Second, log),
		Edit:    rest.NewEditHandler(editor.NewSession(log, store), log),
		Health:  rest.NewHealthHandler(pool, store, "e2e"),
	})

	handler := middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.Logger(log),
		middleware.CORS(config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS", AllowedHeaders: "Content-Type"}),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool, Store: store}
}

// truncate empties both tables. e2e tests share one container, so they
// run sequentially.
func truncate(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE details, topics RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, s.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (s *testServer) doJSON(t *testing.T, method, path string, body any, wantStatus int, out any) {
	t.Helper()

	resp, data := s.do(t, method, path, body)
	require.Equal(t, wantStatus, resp.StatusCode, "body: %s", data)
	if out != nil {
		require.NoError(t, json.Unmarshal(data, out), "body: %s", data)
	}
}

type detailJSON struct {
	ID      int64   `json:"id"`
	TopicID int64   `json:"topic_id"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Color   string  `json:"color"`
}

type topicJSON struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	ChartType string       `json:"chart_type"`
	Details   []detailJSON `json:"details"`
}

type topicsJSON struct {
	Version uint64      `json:"version"`
	Topics  []topicJSON `json:"topics"`
}

type statsJSON struct {
	Count   int    `json:"count"`
	Sum     string `json:"sum"`
	Average string `json:"average"`
	Max     string `json:"max"`
	Min     string `json:"min"`
	Shares  []struct {
		Name       string `json:"name"`
		Percentage string `json:"percentage"`
	} `json:"shares"`
}

type errorJSON struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
	Fields    []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}
