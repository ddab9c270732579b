package opensesame

import (
	"fmt"
	"time"

	"github.com/brabagaza/OpenSesame/pkg/cond"
	"github.com/brabagaza/OpenSesame/pkg/script"
)

// Item is one named, typed unit of an experiment (a screen, a response
// collector, a logger). The scripting core gives it a definition, a
// variable store scoped under the experiment, and access to the host
// collaborators; concrete behavior lives with the host.
type Item struct {
	*script.Definition

	exp   *Experiment
	count int
}

// Experiment returns the experiment this item belongs to.
func (i *Item) Experiment() *Experiment { return i.exp }

// Prepare publishes the call counter as count_<name> in the experiment
// store. Hosts with concrete item behavior call this before each run.
func (i *Item) Prepare() error {
	if err := i.exp.Vars.Set("count_"+i.Name, i.count); err != nil {
		return err
	}
	i.count++
	i.exp.logger.Debug("item prepared", "item", i.Name, "count", i.count)
	return nil
}

// Run is the base no-op run phase.
func (i *Item) Run() error { return nil }

// Time returns the current timestamp in milliseconds from the host's
// time source.
func (i *Item) Time() float64 { return i.exp.timeFn() }

// Sleep blocks for the given number of milliseconds via the host's
// sleep primitive.
func (i *Item) Sleep(ms float64) {
	i.exp.sleepFn(time.Duration(ms * float64(time.Millisecond)))
}

// SetItemOnset publishes the current time as time_<name> in the
// experiment store, timestamping this item's execution.
func (i *Item) SetItemOnset() error {
	return i.exp.Vars.Set("time_"+i.Name, i.Time())
}

// Log writes one line to the experiment's log sink.
func (i *Item) Log(msg string) error {
	return i.exp.sink.WriteLine(msg)
}

// FlushLog forces pending log lines to durable storage.
func (i *Item) FlushLog() error {
	return i.exp.sink.Flush()
}

// CompileCond compiles a conditional statement for this item. The
// returned condition may be cached for the lifetime of the definition.
func (i *Item) CompileCond(src string) (*cond.Condition, error) {
	c, err := cond.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", i.Name, err)
	}
	return c, nil
}

// VarInfo describes the variables this item publishes at run time.
func (i *Item) VarInfo() [][2]string {
	return [][2]string{
		{"time_" + i.Name, "[Timestamp of last item call]"},
		{"count_" + i.Name, "[Number of item calls]"},
	}
}
