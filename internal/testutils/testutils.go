// Package testutils provides shared scaffolding for tests.
package testutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	opensesame "github.com/brabagaza/OpenSesame"
	"github.com/brabagaza/OpenSesame/internal/adapters/memory"
)

// SetupTestExperiment creates an experiment with deterministic
// collaborators: a clock that advances 1ms per call, a sleep that
// returns immediately, and an in-memory log sink. It returns the
// experiment and the sink for assertions.
func SetupTestExperiment(t *testing.T, opts ...opensesame.Option) (*opensesame.Experiment, *memory.LogSink) {
	t.Helper()

	sink := memory.New()
	var now float64
	base := []opensesame.Option{
		opensesame.WithTimeFunc(func() float64 {
			now++
			return now
		}),
		opensesame.WithSleepFunc(func(time.Duration) {}),
		opensesame.WithLogSink(sink),
	}
	exp := opensesame.New("experiment", append(base, opts...)...)
	require.NotNil(t, exp)

	return exp, sink
}
