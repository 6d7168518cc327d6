// Command export loads all topics from the database and writes the
// spreadsheet export to disk, without starting the HTTP server.
//
// Flags:
//
//	-out     output directory (default: current directory)
//	-layout  per_topic or summary (default: export.layout from config)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/heartmarshall/chartboard/internal/app"
	"github.com/heartmarshall/chartboard/internal/config"
	"github.com/heartmarshall/chartboard/internal/domain"
)

func main() {
	out := flag.String("out", ".", "output directory")
	layout := flag.String("layout", "", "workbook layout: per_topic or summary")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
		config.Usage(out, "\nConfiguration (CONFIG_PATH or environment):")
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := app.Export(ctx, *out, domain.ExportLayout(strings.ToLower(strings.TrimSpace(*layout))))
	if err != nil {
		slog.Error("export failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(path)
}
