package domain

import (
	"slices"
	"time"
)

// Topic is a named group of details drawn as one chart.
// IDs are assigned by the remote store; zero means "not yet persisted".
type Topic struct {
	ID        int64
	Name      string
	ChartType ChartType
	Details   []Detail
	CreatedAt time.Time
}

// Detail is a labeled numeric data point owned by exactly one topic.
type Detail struct {
	ID        int64
	TopicID   int64
	Name      string
	Value     float64
	Color     string
	CreatedAt time.Time
}

// TopicUpdateParams holds a partial topic update. Nil fields are left unchanged.
type TopicUpdateParams struct {
	Name      *string
	ChartType *ChartType
}

// DetailParams holds the writable fields of a detail.
type DetailParams struct {
	Name  string
	Value float64
	Color string
}

// Clone returns a deep copy of the topic; the details slice is not shared.
func (t Topic) Clone() Topic {
	t.Details = slices.Clone(t.Details)
	if t.Details == nil {
		t.Details = []Detail{}
	}
	return t
}

// DetailIndex returns the position of the detail with the given id, or -1.
func (t Topic) DetailIndex(detailID int64) int {
	return slices.IndexFunc(t.Details, func(d Detail) bool { return d.ID == detailID })
}

// Spec converts the topic into the series description used by chart renderers.
func (t Topic) Spec() ChartSpec {
	points := make([]ChartPoint, len(t.Details))
	for i, d := range t.Details {
		points[i] = ChartPoint{Label: d.Name, Value: d.Value, Color: d.Color}
	}
	return ChartSpec{
		Kind:   t.ChartType,
		Title:  t.Name,
		Points: points,
	}
}

// ChartSpec is an ordered series description plus the chart kind to draw it with.
type ChartSpec struct {
	Kind   ChartType
	Title  string
	Points []ChartPoint
}

// ChartPoint is one name/value/color triple of a chart series.
type ChartPoint struct {
	Label string
	Value float64
	Color string
}

// Change describes one applied mirror mutation.
// Version increases by one for every applied mutation.
type Change struct {
	Version  uint64     `json:"version"`
	Kind     ChangeKind `json:"kind"`
	TopicID  int64      `json:"topic_id,omitempty"`
	DetailID int64      `json:"detail_id,omitempty"`
}
