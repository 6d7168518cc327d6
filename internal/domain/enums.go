package domain

import "strings"

// ChartType is the kind of chart a topic is drawn with.
// The zero value is the unset state of an unfinished topic form.
type ChartType string

const (
	ChartTypeUnset ChartType = ""
	ChartTypePie   ChartType = "pie"
	ChartTypeBar   ChartType = "bar"
	ChartTypeLine  ChartType = "line"
)

func (c ChartType) String() string { return string(c) }

// IsValid reports whether c is one of the renderable chart types.
// ChartTypeUnset is not valid.
func (c ChartType) IsValid() bool {
	switch c {
	case ChartTypePie, ChartTypeBar, ChartTypeLine:
		return true
	}
	return false
}

// ParseChartType normalizes user input ("Bar", " pie ") to a ChartType.
// Unknown values are returned as-is and fail IsValid.
func ParseChartType(s string) ChartType {
	return ChartType(strings.ToLower(strings.TrimSpace(s)))
}

// ChartTypes lists the valid chart types in display order.
func ChartTypes() []ChartType {
	return []ChartType{ChartTypeBar, ChartTypePie, ChartTypeLine}
}

// ChangeKind identifies the mirror mutation carried by a Change.
type ChangeKind string

const (
	ChangeLoaded        ChangeKind = "mirror.loaded"
	ChangeTopicCreated  ChangeKind = "topic.created"
	ChangeTopicUpdated  ChangeKind = "topic.updated"
	ChangeTopicDeleted  ChangeKind = "topic.deleted"
	ChangeDetailCreated ChangeKind = "detail.created"
	ChangeDetailUpdated ChangeKind = "detail.updated"
	ChangeDetailDeleted ChangeKind = "detail.deleted"
)

func (k ChangeKind) String() string { return string(k) }

func (k ChangeKind) IsValid() bool {
	switch k {
	case ChangeLoaded, ChangeTopicCreated, ChangeTopicUpdated, ChangeTopicDeleted,
		ChangeDetailCreated, ChangeDetailUpdated, ChangeDetailDeleted:
		return true
	}
	return false
}

// ExportLayout selects how topic sections are laid out in an exported workbook.
type ExportLayout string

const (
	// ExportLayoutPerTopic writes one sheet per topic.
	ExportLayoutPerTopic ExportLayout = "per_topic"
	// ExportLayoutSummary writes all topics sequentially into one sheet.
	ExportLayoutSummary ExportLayout = "summary"
)

func (l ExportLayout) String() string { return string(l) }

func (l ExportLayout) IsValid() bool {
	switch l {
	case ExportLayoutPerTopic, ExportLayoutSummary:
		return true
	}
	return false
}
