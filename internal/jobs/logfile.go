package jobs

import (
	"fmt"
	"os"
	"strings"
)

// Sink is an append-only log file. Every Append opens, writes and closes
// the file, so concurrent writers rely only on the OS appending each write
// atomically.
type Sink struct {
	Path string
}

// NewSink creates a sink for the given path. The file is created on first
// append.
func NewSink(path string) *Sink {
	return &Sink{Path: path}
}

// Append writes the entry to the file, adding a trailing newline if the
// entry lacks one.
func (s *Sink) Append(entry string) error {
	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", s.Path, err)
	}
	if !strings.HasSuffix(entry, "\n") {
		entry += "\n"
	}
	if _, err := f.WriteString(entry); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to log file %s: %w", s.Path, err)
	}
	return f.Close()
}
