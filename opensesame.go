package opensesame

import (
	"log/slog"
	"time"

	"github.com/brabagaza/OpenSesame/internal/logging"
	"github.com/brabagaza/OpenSesame/pkg/ports"
	"github.com/brabagaza/OpenSesame/pkg/script"
)

// Version is the library version reported by the osc CLI.
var Version = "0.2.0"

// Experiment owns the experiment-level variable store and the
// collaborators injected by the host. It is itself an item: global
// variables live in its store, and items resolve names against it when
// their own store misses.
type Experiment struct {
	Item

	timeFn  ports.TimeFunc
	sleepFn ports.SleepFunc
	sink    ports.LogSink
	logger  *slog.Logger

	items map[string]*Item
}

// Option configures an Experiment.
type Option func(*Experiment)

// WithTimeFunc injects the monotonic time source (milliseconds).
func WithTimeFunc(fn ports.TimeFunc) Option {
	return func(e *Experiment) { e.timeFn = fn }
}

// WithSleepFunc injects the sleep primitive.
func WithSleepFunc(fn ports.SleepFunc) Option {
	return func(e *Experiment) { e.sleepFn = fn }
}

// WithLogSink injects the line log sink items write to.
func WithLogSink(sink ports.LogSink) Option {
	return func(e *Experiment) { e.sink = sink }
}

// WithLogger sets a structured logger for the core's own diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Experiment) { e.logger = logger }
}

// WithRoundDecimals sets the default float precision for substitution.
func WithRoundDecimals(n int) Option {
	return func(e *Experiment) { e.Vars.SetRoundDecimals(n) }
}

// New creates an experiment. Without options it uses a process-local
// monotonic clock, time.Sleep, a discarding log sink and no logging.
func New(name string, opts ...Option) *Experiment {
	e := &Experiment{
		items: make(map[string]*Item),
	}
	e.Item = Item{
		Definition: script.New(name, "experiment", nil),
	}
	e.Item.exp = e

	start := time.Now()
	e.timeFn = func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000.0
	}
	e.sleepFn = time.Sleep
	e.sink = nopSink{}
	e.logger = logging.NewNop()

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewItem creates an item whose variables fall back to the experiment
// store, parsing src when non-empty. The item is registered under its
// final name (the define header in src wins over the name argument).
func (e *Experiment) NewItem(name, itemType, src string) (*Item, error) {
	it := &Item{
		Definition: script.New(name, itemType, e.Vars),
		exp:        e,
	}
	if src != "" {
		if err := it.ParseScript(src); err != nil {
			return nil, err
		}
	}
	e.items[it.Name] = it
	e.logger.Debug("item created", "item", it.Name, "type", it.ItemType)
	return it, nil
}

// LoadScript parses a whole experiment script: global lines populate the
// experiment store and each define section becomes a registered item.
func (e *Experiment) LoadScript(text string) error {
	f, err := script.ParseFile(text, e.Definition)
	if err != nil {
		return err
	}
	for _, d := range f.Items {
		e.items[d.Name] = &Item{Definition: d, exp: e}
	}
	e.logger.Debug("script loaded", "items", len(f.Items))
	return nil
}

// ItemByName returns a registered item, or nil.
func (e *Experiment) ItemByName(name string) *Item {
	return e.items[name]
}

// ItemNames returns the names of all registered items.
func (e *Experiment) ItemNames() []string {
	names := make([]string, 0, len(e.items))
	for name := range e.items {
		names = append(names, name)
	}
	return names
}

// nopSink discards log lines; the default until the host injects a real
// sink.
type nopSink struct{}

func (nopSink) WriteLine(string) error { return nil }
func (nopSink) Flush() error           { return nil }
