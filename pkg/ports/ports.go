// Package ports defines the contracts between the scripting core and the
// host that embeds it. The core never implements these itself: the host
// (an experiment runner, a GUI, a test harness) injects them when the
// Experiment is constructed.
package ports

import "time"

// TimeFunc returns a timestamp in milliseconds. The source must be
// monotonic during a single experiment run; items publish these values
// as time_<name> variables.
type TimeFunc func() float64

// SleepFunc blocks for the given duration. It is treated as an opaque
// call; the core attaches no cancellation or timeout semantics to it.
type SleepFunc func(d time.Duration)

// LogSink is an append-only, line-oriented log destination.
// Flush must make previously written lines durable before returning.
type LogSink interface {
	WriteLine(line string) error
	Flush() error
}
