// Package file provides the file-backed log sink used when an
// experiment writes its trial log to disk.
package file

import (
	"bufio"
	"fmt"
	"os"
)

// LogSink implements ports.LogSink on top of an append-only file.
// Writes are buffered; Flush drains the buffer and fsyncs so the lines
// survive a crash, which is what callers rely on between trials.
type LogSink struct {
	f *os.File
	w *bufio.Writer
}

// OpenLog opens (or creates) the log file for appending.
func OpenLog(path string) (*LogSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &LogSink{f: f, w: bufio.NewWriter(f)}, nil
}

// WriteLine appends one line to the log.
func (s *LogSink) WriteLine(line string) error {
	if _, err := s.w.WriteString(line); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write log line: %w", err)
	}
	return nil
}

// Flush forces pending lines to durable storage.
func (s *LogSink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush log buffer: %w", err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("failed to fsync log file: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (s *LogSink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.f.Close()
}
