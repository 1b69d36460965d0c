// Firm and worker spawning — creates the initial populations with
// balance sheets consistent with zero-debt, positive-equity entrants.
package agents

import (
	"math/rand"
)

// FirmInit holds the starting balance sheet for a spawned firm.
// Jitter is applied per firm so the cross-section is not degenerate.
type FirmInit struct {
	Liquidity    float64
	K            float64 // Ignored for capital firms
	CapitalPrice float64 // Valuation of the installed stock
	Price        float64
	Output       float64
	CapOutRatio  float64
	InterestRate float64
}

// Spawner creates firms and workers for the simulation.
type Spawner struct {
	rng        *rand.Rand
	nextFirmID FirmID
	nextWorker uint64
}

// NewSpawner creates a spawner with the given seed.
func NewSpawner(seed int64) *Spawner {
	return &Spawner{
		rng:        rand.New(rand.NewSource(seed + 300)),
		nextFirmID: 1,
		nextWorker: 1,
	}
}

// SetNextFirmID sets the next firm ID to be issued (used when restoring from DB).
func (s *Spawner) SetNextFirmID(id FirmID) {
	s.nextFirmID = id
}

// SpawnFirms creates a batch of firms of one kind.
func (s *Spawner) SpawnFirms(kind FirmKind, count int, init FirmInit) []*Firm {
	firms := make([]*Firm, 0, count)
	for i := 0; i < count; i++ {
		firms = append(firms, s.spawnFirm(kind, init))
	}
	return firms
}

func (s *Spawner) spawnFirm(kind FirmKind, init FirmInit) *Firm {
	id := s.nextFirmID
	s.nextFirmID++

	// ±10% jitter around the configured starting values.
	jitter := func(v float64) float64 {
		return v * (0.9 + 0.2*s.rng.Float64())
	}

	f := &Firm{
		ID:           id,
		Kind:         kind,
		Liquidity:    jitter(init.Liquidity),
		Price:        jitter(init.Price),
		PriorOutput:  jitter(init.Output),
		CapOutRatio:  init.CapOutRatio,
		InterestRate: init.InterestRate,
	}
	f.DesiredOutput = f.PriorOutput
	if kind == KindConsumption {
		f.K = jitter(init.K)
		f.TargetK = f.CapOutRatio * f.DesiredOutput
		if f.CapOutRatio > 0 {
			f.CapacityOutput = f.K / f.CapOutRatio
		}
	}
	// Zero-debt entrant: equity is liquid funds plus the valued capital stock.
	f.NetWorth = f.Liquidity + f.EntrantCapitalValue(init.CapitalPrice)
	return f
}

// SpawnWorkers creates the labor force, all initially unemployed.
func (s *Spawner) SpawnWorkers(count int) []*Worker {
	workers := make([]*Worker, 0, count)
	for i := 0; i < count; i++ {
		workers = append(workers, &Worker{
			ID:       s.nextWorker,
			Employer: NoEmployer,
		})
		s.nextWorker++
	}
	return workers
}
