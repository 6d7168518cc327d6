// Package export builds spreadsheet workbooks from topic snapshots.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/chartboard/internal/config"
	"github.com/heartmarshall/chartboard/internal/domain"
)

// File is a serialized workbook ready to be downloaded or written to disk.
type File struct {
	Name string
	Data []byte
}

// Request selects the layout and the chart images of one export.
// Zero values use the configured layout and server side rendering.
type Request struct {
	Layout domain.ExportLayout
	Images ImageSource
}

// Engine turns topics into an .xlsx workbook.
type Engine struct {
	log    *slog.Logger
	images ImageSource
	cfg    config.ExportConfig
	now    func() time.Time
}

// NewEngine creates an export engine. images is the default chart source,
// usually RenderedImages.
func NewEngine(logger *slog.Logger, images ImageSource, cfg config.ExportConfig) *Engine {
	return &Engine{
		log:    logger.With("service", "export"),
		images: images,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Export builds the workbook for topics. Topics without a chart image are
// written as tabular data only; only a canceled ctx or a workbook failure
// fails the export.
func (e *Engine) Export(ctx context.Context, topics []domain.Topic, req Request) (File, error) {
	layout := req.Layout
	if layout == "" {
		layout = e.cfg.DefaultLayout()
	}
	if !layout.IsValid() {
		return File{}, domain.NewValidationError("layout", "must be one of per_topic, summary")
	}
	source := req.Images
	if source == nil {
		source = e.images
	}

	sections, err := e.collect(ctx, topics, source)
	if err != nil {
		return File{}, err
	}

	w, err := newWorkbook(e.cfg.ChartHeight)
	if err != nil {
		return File{}, workbookError("export", err)
	}
	defer w.close()

	if err := w.writeAllData(topics); err != nil {
		return File{}, workbookError("export all data", err)
	}
	switch layout {
	case domain.ExportLayoutSummary:
		err = w.writeSummary(sections)
	default:
		err = w.writePerTopic(sections)
	}
	if err != nil {
		return File{}, workbookError("export "+layout.String(), err)
	}

	data, err := w.bytes()
	if err != nil {
		return File{}, workbookError("export", err)
	}

	file := File{Name: Filename(e.cfg.FilenamePrefix, e.now()), Data: data}
	e.log.InfoContext(ctx, "workbook exported",
		slog.String("file", file.Name),
		slog.String("layout", layout.String()),
		slog.Int("topics", len(topics)),
		slog.Int("bytes", len(data)),
	)
	return file, nil
}

func workbookError(step string, err error) error {
	return fmt.Errorf("%s: %w: %w", step, domain.ErrWorkbook, err)
}

// collect computes aggregates and fetches chart images concurrently.
func (e *Engine) collect(ctx context.Context, topics []domain.Topic, source ImageSource) ([]section, error) {
	sections := make([]section, len(topics))

	g := new(errgroup.Group)
	g.SetLimit(max(e.cfg.RenderConcurrency, 1))

	for i, t := range topics {
		sections[i] = section{topic: t, stats: domain.ComputeStats(t.Details)}
		if source == nil {
			continue
		}
		g.Go(func() error {
			sections[i].image = e.image(ctx, source, t)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return sections, nil
}

func (e *Engine) image(ctx context.Context, source ImageSource, topic domain.Topic) []byte {
	if ctx.Err() != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, e.cfg.RenderTimeout)
	defer cancel()

	data, err := source.Image(ctx, topic)
	switch {
	case err == nil:
		return data
	case errors.Is(err, domain.ErrChartUnavailable):
		e.log.DebugContext(ctx, "chart unavailable",
			slog.Int64("topic_id", topic.ID),
			slog.String("error", err.Error()),
		)
	default:
		e.log.WarnContext(ctx, "chart image failed",
			slog.Int64("topic_id", topic.ID),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
