package rest

import (
	"bufio"
	"io"
	"strings"
	"testing"
)

type sseEvent struct {
	event string
	data  string
}

// eventReader parses "event:"/"data:" blocks, skipping heartbeat comments.
type eventReader struct {
	sc *bufio.Scanner
}

func newEventReader(r io.Reader) *eventReader {
	return &eventReader{sc: bufio.NewScanner(r)}
}

func (r *eventReader) next(t *testing.T) sseEvent {
	t.Helper()
	var ev sseEvent
	for r.sc.Scan() {
		line := r.sc.Text()
		switch {
		case line == "":
			if ev.event != "" {
				return ev
			}
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			ev.event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
	t.Fatalf("stream ended before next event: %v", r.sc.Err())
	return ev
}
