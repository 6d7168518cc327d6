package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/heartmarshall/chartboard/internal/domain"
)

const (
	allDataSheet = "All Data"
	summarySheet = "Summary"

	// Height of a default spreadsheet row in pixels.
	rowPixels = 20
	// Column the chart image is anchored to, right of the tabular data.
	imageColumn = "G"
)

var (
	allDataHeader   = []any{"Topic", "Detail", "Value", "Color"}
	breakdownHeader = []any{"Detail", "Value", "Percentage", "Color"}
)

// section is one topic rendered into a sheet: its data, its aggregates
// and its chart image, which may be missing.
type section struct {
	topic domain.Topic
	stats domain.TopicStats
	image []byte
}

// workbook wraps an excelize file with cached cell styles.
type workbook struct {
	f           *excelize.File
	imageHeight int

	boldStyle  int
	titleStyle int
	fills      map[string]int
}

func newWorkbook(imageHeight int) (*workbook, error) {
	f := excelize.NewFile()
	w := &workbook{f: f, imageHeight: imageHeight, fills: make(map[string]int)}

	var err error
	if w.boldStyle, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("bold style: %w", err)
	}
	if w.titleStyle, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("title style: %w", err)
	}
	return w, nil
}

func (w *workbook) close() {
	_ = w.f.Close()
}

// fill returns a solid fill style for a "#rrggbb" color, creating it once.
func (w *workbook) fill(color string) (int, error) {
	if id, ok := w.fills[color]; ok {
		return id, nil
	}
	hex := strings.TrimPrefix(color, "#")
	if normalized, err := domain.NormalizeColor(color); err == nil {
		hex = strings.TrimPrefix(normalized, "#")
	}
	id, err := w.f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{strings.ToUpper(hex)}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("fill style %s: %w", color, err)
	}
	w.fills[color] = id
	return id, nil
}

func (w *workbook) setRow(sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

func (w *workbook) styleRange(sheet string, row, fromCol, toCol, style int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, row)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, row)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, from, to, style)
}

// writeAllData renames the default sheet to "All Data" and lists every
// detail of every topic, one row each.
func (w *workbook) writeAllData(topics []domain.Topic) error {
	if err := w.f.SetSheetName(w.f.GetSheetName(0), allDataSheet); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}
	if err := w.setRow(allDataSheet, 1, allDataHeader); err != nil {
		return err
	}
	if err := w.styleRange(allDataSheet, 1, 1, len(allDataHeader), w.boldStyle); err != nil {
		return err
	}

	row := 2
	for _, t := range topics {
		for _, d := range t.Details {
			if err := w.setRow(allDataSheet, row, []any{t.Name, d.Name, d.Value, d.Color}); err != nil {
				return err
			}
			style, err := w.fill(d.Color)
			if err != nil {
				return err
			}
			if err := w.styleRange(allDataSheet, row, 4, 4, style); err != nil {
				return err
			}
			row++
		}
	}
	return w.f.SetColWidth(allDataSheet, "A", "B", 24)
}

// writeSection lays out a topic starting at row and returns the first
// free row after it, leaving room for the chart image.
func (w *workbook) writeSection(sheet string, row int, s section) (int, error) {
	start := row

	if err := w.f.SetCellValue(sheet, cellName(1, row), s.topic.Name); err != nil {
		return 0, err
	}
	if err := w.styleRange(sheet, row, 1, 1, w.titleStyle); err != nil {
		return 0, err
	}
	row++

	kind := string(s.topic.ChartType)
	if kind == "" {
		kind = domain.NotApplicable
	}
	if err := w.setRow(sheet, row, []any{"Chart type", kind}); err != nil {
		return 0, err
	}
	row += 2

	for _, kv := range [][]any{
		{"Details", s.stats.Count},
		{"Total", metricValue(s.stats.Sum)},
		{"Average", metricValue(s.stats.Average)},
		{"Maximum", metricValue(s.stats.Max)},
		{"Minimum", metricValue(s.stats.Min)},
	} {
		if err := w.setRow(sheet, row, kv); err != nil {
			return 0, err
		}
		if err := w.styleRange(sheet, row, 1, 1, w.boldStyle); err != nil {
			return 0, err
		}
		row++
	}
	row++

	if err := w.setRow(sheet, row, breakdownHeader); err != nil {
		return 0, err
	}
	if err := w.styleRange(sheet, row, 1, len(breakdownHeader), w.boldStyle); err != nil {
		return 0, err
	}
	row++

	for _, share := range s.stats.Shares {
		if err := w.setRow(sheet, row, []any{share.Name, share.Value, share.Percent.Percent(), share.Color}); err != nil {
			return 0, err
		}
		style, err := w.fill(share.Color)
		if err != nil {
			return 0, err
		}
		if err := w.styleRange(sheet, row, 4, 4, style); err != nil {
			return 0, err
		}
		row++
	}

	if len(s.image) > 0 {
		anchor := fmt.Sprintf("%s%d", imageColumn, start)
		if err := w.f.AddPictureFromBytes(sheet, anchor, &excelize.Picture{
			Extension: ".png",
			File:      s.image,
			Format: &excelize.GraphicOptions{
				AltText:         s.topic.Name + " chart",
				PrintObject:     boolPtr(true),
				LockAspectRatio: true,
				Positioning:     "oneCell",
			},
		}); err != nil {
			return 0, fmt.Errorf("add chart of topic %d: %w", s.topic.ID, err)
		}
		if end := start + w.imageHeight/rowPixels + 1; end > row {
			row = end
		}
	}

	return row + 1, nil
}

func (w *workbook) formatColumns(sheet string) error {
	if err := w.f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	return w.f.SetColWidth(sheet, "B", "D", 14)
}

// writePerTopic creates one sheet per section, named after its topic.
func (w *workbook) writePerTopic(sections []section) error {
	names := newSheetNames(allDataSheet)
	for _, s := range sections {
		sheet := names.next(s.topic.Name, fmt.Sprintf("Topic %d", s.topic.ID))
		if _, err := w.f.NewSheet(sheet); err != nil {
			return fmt.Errorf("new sheet %q: %w", sheet, err)
		}
		if _, err := w.writeSection(sheet, 1, s); err != nil {
			return fmt.Errorf("write sheet %q: %w", sheet, err)
		}
		if err := w.formatColumns(sheet); err != nil {
			return err
		}
	}
	return nil
}

// writeSummary lists every section sequentially in one sheet.
func (w *workbook) writeSummary(sections []section) error {
	if _, err := w.f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("new sheet %q: %w", summarySheet, err)
	}
	row := 1
	for _, s := range sections {
		next, err := w.writeSection(summarySheet, row, s)
		if err != nil {
			return fmt.Errorf("write summary section of topic %d: %w", s.topic.ID, err)
		}
		row = next + 1
	}
	return w.formatColumns(summarySheet)
}

func (w *workbook) bytes() ([]byte, error) {
	w.f.SetActiveSheet(0)
	var buf bytes.Buffer
	if _, err := w.f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func metricValue(m domain.Metric) any {
	if !m.Valid {
		return domain.NotApplicable
	}
	return m.Value
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func boolPtr(b bool) *bool { return &b }
