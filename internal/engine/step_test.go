package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/creditcycle/internal/agents"
	"github.com/talgya/creditcycle/internal/banking"
)

func spawnTestSim(seed int64) *Simulation {
	p := testParams()
	p.Seed = seed

	sp := agents.NewSpawner(seed)
	init := agents.FirmInit{
		Liquidity:    20,
		K:            12,
		CapitalPrice: p.CapitalPrice,
		Price:        1.2,
		Output:       8,
		CapOutRatio:  p.CapitalOutputRatio,
		InterestRate: p.RiskFreeRate,
	}
	cons := sp.SpawnFirms(agents.KindConsumption, 12, init)
	capital := sp.SpawnFirms(agents.KindCapital, 4, init)
	workers := sp.SpawnWorkers(80)

	return NewSimulation(p, cons, capital, workers, banking.NewBank(500))
}

func TestStepDeterminism(t *testing.T) {
	a := spawnTestSim(7)
	b := spawnTestSim(7)

	for step := uint64(1); step <= 40; step++ {
		a.Step(step)
		b.Step(step)
	}

	require.Equal(t, a.Stats, b.Stats)
	require.Equal(t, a.Defaults, b.Defaults)
	require.Equal(t, *a.Bank, *b.Bank)
}

func TestStepKeepsBooksConsistent(t *testing.T) {
	sim := spawnTestSim(3)

	for step := uint64(1); step <= 60; step++ {
		sim.Step(step)

		// The loan book always equals the firms' outstanding debt.
		totalDebt := 0.0
		for _, f := range sim.allFirms() {
			totalDebt += f.Debt
		}
		require.InDelta(t, totalDebt, sim.Bank.Loans, 1e-6, "step %d", step)
	}

	require.False(t, math.IsNaN(sim.Stats.Output))
	require.False(t, math.IsInf(sim.Stats.TotalNetWorth, 0))
	require.GreaterOrEqual(t, sim.Stats.Unemployment, 0.0)
	require.LessOrEqual(t, sim.Stats.Unemployment, 1.0)
}

func TestStepLaborAccounting(t *testing.T) {
	sim := spawnTestSim(11)

	for step := uint64(1); step <= 25; step++ {
		sim.Step(step)

		// Effective labor matches employer references exactly.
		counts := make(map[agents.FirmID]int)
		for _, w := range sim.Workers {
			if w.Employed() {
				counts[w.Employer]++
			}
		}
		for _, f := range sim.allFirms() {
			require.Equal(t, counts[f.ID], f.EffLabor, "firm %d at step %d", f.ID, step)
		}
	}
}

func TestRunnerStopsAtHorizon(t *testing.T) {
	r := NewRunner(10)
	r.SnapshotEvery = 4

	steps := 0
	snapshots := 0
	r.OnStep = func(step uint64) { steps++ }
	r.OnSnapshot = func(step uint64) { snapshots++ }

	r.Run()

	require.Equal(t, 10, steps)
	require.Equal(t, 2, snapshots)
	require.Equal(t, uint64(10), r.Step)
	require.False(t, r.Running)
}
