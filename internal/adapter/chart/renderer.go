// Package chart rasterizes topic chart descriptions to PNG with go-chart.
package chart

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/heartmarshall/chartboard/internal/domain"
)

const (
	minSize      = 100
	barWidthMax  = 60
	lineStroke   = 3.0
	dotWidth     = 5.0
	paddingPixel = 20
)

// Renderer draws pie, bar and line charts at a fixed size.
type Renderer struct {
	width  int
	height int
}

// New creates a Renderer producing width x height images.
func New(width, height int) *Renderer {
	return &Renderer{width: max(width, minSize), height: max(height, minSize)}
}

// Render returns the PNG encoding of spec. Specs that cannot be drawn (unset
// kind, no points, a pie without a positive slice) and go-chart failures
// yield domain.ErrChartUnavailable. Rendering stops waiting when ctx ends.
func (r *Renderer) Render(ctx context.Context, spec domain.ChartSpec) ([]byte, error) {
	if !spec.Kind.IsValid() {
		return nil, fmt.Errorf("chart type %q: %w", spec.Kind, domain.ErrChartUnavailable)
	}
	if len(spec.Points) == 0 {
		return nil, fmt.Errorf("no data points: %w", domain.ErrChartUnavailable)
	}

	type result struct {
		png []byte
		err error
	}
	done := make(chan result, 1)
	go func() {
		png, err := r.draw(spec)
		done <- result{png: png, err: err}
	}()

	select {
	case res := <-done:
		return res.png, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Renderer) draw(spec domain.ChartSpec) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch spec.Kind {
	case domain.ChartTypePie:
		var pie gochart.PieChart
		pie, err = r.pie(spec)
		if err == nil {
			err = pie.Render(gochart.PNG, &buf)
		}
	case domain.ChartTypeBar:
		bar := r.bar(spec)
		err = bar.Render(gochart.PNG, &buf)
	case domain.ChartTypeLine:
		line := r.line(spec)
		err = line.Render(gochart.PNG, &buf)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %v: %w", spec.Kind, err, domain.ErrChartUnavailable)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) pie(spec domain.ChartSpec) (gochart.PieChart, error) {
	values := make([]gochart.Value, 0, len(spec.Points))
	for _, p := range spec.Points {
		if p.Value <= 0 || math.IsInf(p.Value, 0) || math.IsNaN(p.Value) {
			continue
		}
		values = append(values, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   color(p.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		})
	}
	if len(values) == 0 {
		return gochart.PieChart{}, fmt.Errorf("no positive slices")
	}

	return gochart.PieChart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}, nil
}

func (r *Renderer) bar(spec domain.ChartSpec) gochart.BarChart {
	bars := make([]gochart.Value, len(spec.Points))
	for i, p := range spec.Points {
		bars[i] = gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   color(p.Color),
				StrokeColor: color(p.Color),
			},
		}
	}

	slot := (r.width - 2*paddingPixel) / (len(bars) + 1)
	return gochart.BarChart{
		Title:    spec.Title,
		Width:    r.width,
		Height:   r.height,
		BarWidth: min(max(slot, 1), barWidthMax),
		Background: gochart.Style{
			Padding: gochart.Box{Top: 2 * paddingPixel, Left: paddingPixel, Right: paddingPixel, Bottom: paddingPixel},
		},
		YAxis: gochart.YAxis{Range: valueRange(spec.Points)},
		Bars:  bars,
	}
}

func (r *Renderer) line(spec domain.ChartSpec) gochart.Chart {
	xs := make([]float64, len(spec.Points))
	ys := make([]float64, len(spec.Points))
	ticks := make([]gochart.Tick, len(spec.Points))
	for i, p := range spec.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks[i] = gochart.Tick{Value: float64(i), Label: p.Label}
	}

	// The series takes the first point's color; labels carry the rest.
	stroke := color(spec.Points[0].Color)

	return gochart.Chart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 2 * paddingPixel, Left: paddingPixel, Right: paddingPixel, Bottom: paddingPixel},
		},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: -0.5, Max: float64(len(xs)) - 0.5},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{Range: valueRange(spec.Points)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    spec.Title,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: stroke,
					StrokeWidth: lineStroke,
					DotColor:    stroke,
					DotWidth:    dotWidth,
				},
			},
		},
	}
}

// valueRange widens a flat series so go-chart never sees a zero-width range.
func valueRange(points []domain.ChartPoint) *gochart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, p := range points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi + pad}
}

// color converts "#rrggbb" to a drawing color. Invalid input falls back to
// the default detail color.
func color(hex string) drawing.Color {
	c, err := domain.NormalizeColor(hex)
	if err != nil {
		c = domain.DefaultDetailColor
	}
	return drawing.ColorFromHex(strings.TrimPrefix(c, "#"))
}
