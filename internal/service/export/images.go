package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/heartmarshall/chartboard/internal/domain"
)

// ImageSource yields the PNG chart of a topic, or an error wrapping
// domain.ErrChartUnavailable when the topic has no chart.
type ImageSource interface {
	Image(ctx context.Context, topic domain.Topic) ([]byte, error)
}

type chartRenderer interface {
	Render(ctx context.Context, spec domain.ChartSpec) ([]byte, error)
}

// ElementID is the key under which the browser uploads a topic's rasterized chart.
func ElementID(topicID int64) string {
	return "chart-" + strconv.FormatInt(topicID, 10)
}

// RenderedImages draws charts server side.
type RenderedImages struct {
	renderer chartRenderer
}

// NewRenderedImages wraps a chart renderer as an ImageSource.
func NewRenderedImages(renderer chartRenderer) *RenderedImages {
	return &RenderedImages{renderer: renderer}
}

// Image renders the topic's chart. Topics without details or without a
// chart type have none.
func (s *RenderedImages) Image(ctx context.Context, topic domain.Topic) ([]byte, error) {
	if len(topic.Details) == 0 {
		return nil, fmt.Errorf("topic %d has no details: %w", topic.ID, domain.ErrChartUnavailable)
	}
	return s.renderer.Render(ctx, topic.Spec())
}

// UploadedImages serves charts the browser rasterized, keyed by ElementID.
// Missing entries go to the fallback source, if any.
type UploadedImages struct {
	images   map[string][]byte
	fallback ImageSource
}

// NewUploadedImages creates an ImageSource over uploaded PNGs. fallback may be nil.
func NewUploadedImages(images map[string][]byte, fallback ImageSource) *UploadedImages {
	return &UploadedImages{images: images, fallback: fallback}
}

func (s *UploadedImages) Image(ctx context.Context, topic domain.Topic) ([]byte, error) {
	if data, ok := s.images[ElementID(topic.ID)]; ok && len(data) > 0 {
		return data, nil
	}
	if s.fallback != nil {
		return s.fallback.Image(ctx, topic)
	}
	return nil, fmt.Errorf("no uploaded image for %s: %w", ElementID(topic.ID), domain.ErrChartUnavailable)
}
