package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/heartmarshall/chartboard/internal/adapter/chart"
	"github.com/heartmarshall/chartboard/internal/config"
	"github.com/heartmarshall/chartboard/internal/domain"
	"github.com/heartmarshall/chartboard/internal/service/export"
)

// Export loads the mirror once and writes the workbook into dir. An empty
// layout uses the configured default. It returns the written path.
func Export(ctx context.Context, dir string, layout domain.ExportLayout) (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	logger := NewLogger(cfg.Log)

	m, err := openMirror(ctx, cfg, logger)
	if err != nil {
		return "", err
	}
	defer m.close()

	if err := loadWithRetry(ctx, m.store, cfg.Store, logger); err != nil {
		return "", err
	}

	engine := export.NewEngine(logger, export.NewRenderedImages(chart.New(cfg.Export.ChartWidth, cfg.Export.ChartHeight)), cfg.Export)
	return writeExport(ctx, engine, m.store.Topics(), dir, layout, logger)
}

type workbookExporter interface {
	Export(ctx context.Context, topics []domain.Topic, req export.Request) (export.File, error)
}

func writeExport(
	ctx context.Context,
	engine workbookExporter,
	topics []domain.Topic,
	dir string,
	layout domain.ExportLayout,
	logger *slog.Logger,
) (string, error) {
	file, err := engine.Export(ctx, topics, export.Request{Layout: layout})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	logger.InfoContext(ctx, "workbook written", slog.String("path", path), slog.Int("topics", len(topics)))
	return path, nil
}
