// internal/jobs/sink.go
package jobs

import (
	"fmt"
	"os"
)

// timeFormat matches the historical log line format.
const timeFormat = "02/01/2006-15:04:05"

// Sink is an append-only text log target. Each job writes one line per
// event; the file is opened per append so independent job runs can share a
// path.
type Sink struct {
	path string
}

func NewSink(path string) *Sink {
	return &Sink{path: path}
}

func (s *Sink) Append(line string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log sink: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append to log sink: %w", err)
	}
	return nil
}
