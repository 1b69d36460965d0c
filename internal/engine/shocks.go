// Exogenous demand disturbances — a smooth deterministic series over the
// step axis, reproducible from the run seed.
package engine

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// shockFrequency controls how fast the disturbance drifts per step.
const shockFrequency = 0.05

// ShockSeries produces a demand multiplier centered on 1.0.
type ShockSeries struct {
	noise     opensimplex.Noise
	amplitude float64
}

// NewShockSeries creates a shock series from the run seed.
func NewShockSeries(seed int64, amplitude float64) *ShockSeries {
	return &ShockSeries{
		noise:     opensimplex.New(seed + 700),
		amplitude: amplitude,
	}
}

// At returns the multiplier for a step. Values stay within
// roughly [1-amplitude, 1+amplitude].
func (s *ShockSeries) At(step uint64) float64 {
	return 1 + s.amplitude*s.noise.Eval2(float64(step)*shockFrequency, 0.5)
}
