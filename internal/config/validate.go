package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if err := c.Export.validate(); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	return nil
}

func (s *StoreConfig) validate() error {
	if s.RemoteTimeout <= 0 {
		return fmt.Errorf("remote_timeout must be > 0 (got %v)", s.RemoteTimeout)
	}
	if s.LoadAttempts < 1 {
		return fmt.Errorf("load_attempts must be >= 1 (got %d)", s.LoadAttempts)
	}
	if s.LoadBackoff < 0 {
		return fmt.Errorf("load_backoff must be >= 0 (got %v)", s.LoadBackoff)
	}
	return nil
}

func (e *ExportConfig) validate() error {
	e.Layout = strings.ToLower(strings.TrimSpace(e.Layout))
	if !e.DefaultLayout().IsValid() {
		return fmt.Errorf("layout must be per_topic or summary (got %q)", e.Layout)
	}
	if e.ChartWidth < 100 || e.ChartHeight < 100 {
		return fmt.Errorf("chart size must be at least 100x100 (got %dx%d)", e.ChartWidth, e.ChartHeight)
	}
	if e.RenderTimeout <= 0 {
		return fmt.Errorf("render_timeout must be > 0 (got %v)", e.RenderTimeout)
	}
	if e.RenderConcurrency < 1 {
		return fmt.Errorf("render_concurrency must be >= 1 (got %d)", e.RenderConcurrency)
	}
	if strings.TrimSpace(e.FilenamePrefix) == "" {
		return fmt.Errorf("filename_prefix is required")
	}
	if strings.ContainsAny(e.FilenamePrefix, `/\"`) {
		return fmt.Errorf("filename_prefix must not contain path separators or quotes")
	}
	return nil
}
