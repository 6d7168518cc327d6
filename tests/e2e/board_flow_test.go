//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/chartboard/internal/domain"
)

func TestE2E_SalesLifecycle(t *testing.T) {
	s := setupServer(t)

	var sales topicJSON
	s.doJSON(t, http.MethodPost, "/api/topics", map[string]any{"name": "  Sales ", "chart_type": "Bar"}, http.StatusCreated, &sales)
	assert.Equal(t, "Sales", sales.Name)
	assert.Equal(t, "bar", sales.ChartType)

	detailsPath := fmt.Sprintf("/api/topics/%d/details", sales.ID)
	var q1, q2 detailJSON
	s.doJSON(t, http.MethodPost, detailsPath, map[string]any{"name": "Q1", "value": "100", "color": "#F00"}, http.StatusCreated, &q1)
	s.doJSON(t, http.MethodPost, detailsPath, map[string]any{"name": "Q2", "value": 200}, http.StatusCreated, &q2)
	assert.Equal(t, "#ff0000", q1.Color)
	assert.Equal(t, domain.DefaultDetailColor, q2.Color)

	var stats statsJSON
	s.doJSON(t, http.MethodGet, fmt.Sprintf("/api/topics/%d/stats", sales.ID), nil, http.StatusOK, &stats)
	assert.Equal(t, 2, stats.Count)
	assert.Equal(t, "300.00", stats.Sum)
	assert.Equal(t, "150.00", stats.Average)
	require.Len(t, stats.Shares, 2)
	assert.Equal(t, "33.33%", stats.Shares[0].Percentage)

	// The database holds exactly what the mirror shows.
	var count int
	require.NoError(t, s.Pool.QueryRow(context.Background(),
		`SELECT count(*) FROM details WHERE topic_id = $1`, sales.ID).Scan(&count))
	assert.Equal(t, 2, count)

	var updated detailJSON
	s.doJSON(t, http.MethodPatch, fmt.Sprintf("%s/%d", detailsPath, q1.ID),
		map[string]any{"name": "Q1", "value": 150, "color": "#00ff00"}, http.StatusOK, &updated)
	assert.InDelta(t, 150, updated.Value, 1e-9)

	var value float64
	require.NoError(t, s.Pool.QueryRow(context.Background(),
		`SELECT value FROM details WHERE id = $1`, q1.ID).Scan(&value))
	assert.InDelta(t, 150, value, 1e-9)

	s.doJSON(t, http.MethodDelete, fmt.Sprintf("%s/at/1", detailsPath), nil, http.StatusNoContent, nil)

	var got topicJSON
	s.doJSON(t, http.MethodGet, fmt.Sprintf("/api/topics/%d", sales.ID), nil, http.StatusOK, &got)
	require.Len(t, got.Details, 1)
	assert.Equal(t, q1.ID, got.Details[0].ID)

	s.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/topics/%d", sales.ID), nil, http.StatusNoContent, nil)
	require.NoError(t, s.Pool.QueryRow(context.Background(),
		`SELECT count(*) FROM details WHERE topic_id = $1`, sales.ID).Scan(&count))
	assert.Zero(t, count, "details cascade with their topic")

	var list topicsJSON
	s.doJSON(t, http.MethodGet, "/api/topics", nil, http.StatusOK, &list)
	assert.Empty(t, list.Topics)
}

func TestE2E_InvalidInputWritesNothing(t *testing.T) {
	s := setupServer(t)

	var e errorJSON
	s.doJSON(t, http.MethodPost, "/api/topics", map[string]any{"name": "", "chart_type": "radar"}, http.StatusBadRequest, &e)
	require.Len(t, e.Fields, 2)

	var sales topicJSON
	s.doJSON(t, http.MethodPost, "/api/topics", map[string]any{"name": "Sales", "chart_type": "pie"}, http.StatusCreated, &sales)

	s.doJSON(t, http.MethodPost, fmt.Sprintf("/api/topics/%d/details", sales.ID),
		map[string]any{"name": "Q1", "value": "abc"}, http.StatusBadRequest, &e)
	assert.Equal(t, "value", e.Fields[0].Field)

	s.doJSON(t, http.MethodPost, "/api/topics/999/details",
		map[string]any{"name": "Q1", "value": 1}, http.StatusNotFound, nil)

	var count int
	require.NoError(t, s.Pool.QueryRow(context.Background(), `SELECT count(*) FROM details`).Scan(&count))
	assert.Zero(t, count)
}

func TestE2E_ReloadPicksUpExternalRows(t *testing.T) {
	s := setupServer(t)

	_, err := s.Pool.Exec(context.Background(), `INSERT INTO topics (name, chart_type) VALUES ('Costs', 'line')`)
	require.NoError(t, err)

	var before topicsJSON
	s.doJSON(t, http.MethodGet, "/api/topics", nil, http.StatusOK, &before)
	assert.Empty(t, before.Topics)

	s.doJSON(t, http.MethodPost, "/api/reload", nil, http.StatusOK, nil)

	var after topicsJSON
	s.doJSON(t, http.MethodGet, "/api/topics", nil, http.StatusOK, &after)
	require.Len(t, after.Topics, 1)
	assert.Equal(t, "Costs", after.Topics[0].Name)
	assert.Greater(t, after.Version, before.Version)
}

func TestE2E_ExportWorkbook(t *testing.T) {
	s := setupServer(t)

	var sales topicJSON
	s.doJSON(t, http.MethodPost, "/api/topics", map[string]any{"name": "Sales", "chart_type": "bar"}, http.StatusCreated, &sales)
	for i, v := range []float64{100, 200} {
		s.doJSON(t, http.MethodPost, fmt.Sprintf("/api/topics/%d/details", sales.ID),
			map[string]any{"name": fmt.Sprintf("Q%d", i+1), "value": v}, http.StatusCreated, nil)
	}
	s.doJSON(t, http.MethodPost, "/api/topics", map[string]any{"name": "Empty", "chart_type": "pie"}, http.StatusCreated, nil)

	resp, data := s.do(t, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(data))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	assert.Equal(t, []string{"All Data", "Sales", "Empty"}, f.GetSheetList())

	rows, err := f.GetRows("All Data")
	require.NoError(t, err)
	assert.Len(t, rows, 3, "header plus one row per detail")

	pics, err := f.GetPictureCells("Sales")
	require.NoError(t, err)
	assert.Len(t, pics, 1)

	pics, err = f.GetPictureCells("Empty")
	require.NoError(t, err)
	assert.Empty(t, pics, "topics without details have no chart")
}

func TestE2E_ChartAndHealth(t *testing.T) {
	s := setupServer(t)

	var sales topicJSON
	s.doJSON(t, http.MethodPost, "/api/topics", map[string]any{"name": "Sales", "chart_type": "line"}, http.StatusCreated, &sales)

	resp, _ := s.do(t, http.MethodGet, fmt.Sprintf("/api/topics/%d/chart.png", sales.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "no details, no chart")

	s.doJSON(t, http.MethodPost, fmt.Sprintf("/api/topics/%d/details", sales.ID),
		map[string]any{"name": "Q1", "value": 1}, http.StatusCreated, nil)

	resp, data := s.do(t, http.MethodGet, fmt.Sprintf("/api/topics/%d/chart.png", sales.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	resp, _ = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
