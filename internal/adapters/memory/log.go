// Package memory provides an in-memory log sink for tests.
package memory

import "sync"

// LogSink implements ports.LogSink by collecting lines in memory.
type LogSink struct {
	mu      sync.Mutex
	lines   []string
	flushes int
}

// New creates an empty in-memory log sink.
func New() *LogSink {
	return &LogSink{}
}

// WriteLine records one line.
func (s *LogSink) WriteLine(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return nil
}

// Flush counts flush requests; there is nothing to make durable.
func (s *LogSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
	return nil
}

// Lines returns a copy of everything written so far.
func (s *LogSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}

// Flushes returns how many times Flush was called.
func (s *LogSink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}
