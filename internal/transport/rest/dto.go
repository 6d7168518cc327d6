package rest

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/heartmarshall/chartboard/internal/domain"
)

type detailResponse struct {
	ID        int64     `json:"id"`
	TopicID   int64     `json:"topic_id"`
	Name      string    `json:"name"`
	Value     float64   `json:"value"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

type topicResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	ChartType string           `json:"chart_type"`
	Details   []detailResponse `json:"details"`
	CreatedAt time.Time        `json:"created_at"`
}

type topicsResponse struct {
	Version uint64          `json:"version"`
	Topics  []topicResponse `json:"topics"`
}

func toDetailResponse(d domain.Detail) detailResponse {
	return detailResponse{
		ID:        d.ID,
		TopicID:   d.TopicID,
		Name:      d.Name,
		Value:     d.Value,
		Color:     d.Color,
		CreatedAt: d.CreatedAt,
	}
}

func toTopicResponse(t domain.Topic) topicResponse {
	details := make([]detailResponse, len(t.Details))
	for i, d := range t.Details {
		details[i] = toDetailResponse(d)
	}
	return topicResponse{
		ID:        t.ID,
		Name:      t.Name,
		ChartType: string(t.ChartType),
		Details:   details,
		CreatedAt: t.CreatedAt,
	}
}

// Metrics are rendered as strings so "N/A" needs no special casing in the UI.
type shareResponse struct {
	DetailID   int64   `json:"detail_id"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Color      string  `json:"color"`
	Percentage string  `json:"percentage"`
}

type statsResponse struct {
	TopicID int64           `json:"topic_id"`
	Count   int             `json:"count"`
	Sum     string          `json:"sum"`
	Average string          `json:"average"`
	Max     string          `json:"max"`
	Min     string          `json:"min"`
	Shares  []shareResponse `json:"shares"`
}

func toStatsResponse(topicID int64, s domain.TopicStats) statsResponse {
	shares := make([]shareResponse, len(s.Shares))
	for i, sh := range s.Shares {
		shares[i] = shareResponse{
			DetailID:   sh.DetailID,
			Name:       sh.Name,
			Value:      sh.Value,
			Color:      sh.Color,
			Percentage: sh.Percent.Percent(),
		}
	}
	return statsResponse{
		TopicID: topicID,
		Count:   s.Count,
		Sum:     s.Sum.String(),
		Average: s.Average.String(),
		Max:     s.Max.String(),
		Min:     s.Min.String(),
		Shares:  shares,
	}
}

// flexValue accepts a detail value sent either as a JSON number or as the
// raw text of the form field.
type flexValue string

func (v *flexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = flexValue(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	if _, err := strconv.ParseFloat(f.String(), 64); err != nil {
		return err
	}
	*v = flexValue(f.String())
	return nil
}

// topicPatchRequest leaves absent fields unchanged.
type topicPatchRequest struct {
	Name      *string `json:"name"`
	ChartType *string `json:"chart_type"`
}

type detailRequest struct {
	Name  string    `json:"name"`
	Value flexValue `json:"value"`
	Color string    `json:"color"`
}
