// Runner drives the step loop to the configured horizon.
package engine

import (
	"log/slog"
)

// Runner advances the simulation step by step until the horizon is reached
// or Stop is called.
type Runner struct {
	Step    uint64 // Current step counter (monotonic, never resets)
	Horizon uint64 // Run ends after this many steps; 0 = unbounded
	Running bool

	// Callbacks — populated during setup.
	OnStep     func(step uint64) // Every step
	OnSnapshot func(step uint64) // Every SnapshotEvery steps

	SnapshotEvery uint64
}

// NewRunner creates a runner for the given horizon.
func NewRunner(horizon uint64) *Runner {
	return &Runner{Horizon: horizon}
}

// Run executes the step loop. Blocks until the horizon is reached or Stop()
// is called.
func (r *Runner) Run() {
	r.Running = true
	slog.Info("simulation started", "step", r.Step, "horizon", r.Horizon)

	for r.Running {
		if r.Horizon > 0 && r.Step >= r.Horizon {
			break
		}
		r.Step++

		if r.OnStep != nil {
			r.OnStep(r.Step)
		}

		if r.SnapshotEvery > 0 && r.Step%r.SnapshotEvery == 0 && r.OnSnapshot != nil {
			r.OnSnapshot(r.Step)
		}
	}

	r.Running = false
	slog.Info("simulation stopped", "step", r.Step)
}

// Stop halts the step loop.
func (r *Runner) Stop() {
	r.Running = false
}
