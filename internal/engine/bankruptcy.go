// Bankruptcy resolution — liquidates firms with negative net worth and
// reinitializes them in place as freshly capitalized entrants.
package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/talgya/creditcycle/internal/agents"
	"github.com/talgya/creditcycle/internal/stats"
)

const (
	// targetLeverage bounds a fresh entrant's initial output scale.
	targetLeverage = 0.2

	// trimProportion is the tail share discarded when estimating a typical
	// prior output among solvent peers.
	trimProportion = 0.1
)

// resolveBankruptcies scans both firm populations once, in population order,
// and resolves every firm with negative net worth immediately. Resolution is
// not batched: a firm reinitialized earlier in the pass is visible to the
// cross-sectional statistics computed for firms resolved later.
func (s *Simulation) resolveBankruptcies(step uint64) {
	for _, f := range s.ConsumptionFirms {
		if f.NetWorth < 0 {
			s.liquidate(f, s.ConsumptionFirms, step)
		}
	}
	for _, f := range s.CapitalFirms {
		if f.NetWorth < 0 {
			s.liquidate(f, s.CapitalFirms, step)
		}
	}
}

// liquidate settles a failed firm against the bank and rebuilds it as a new
// entrant. The order matters: the bank write-off uses the firm's pre-reset
// liquidity and debt, and the price cross-section still includes the failed
// firm's own current price.
func (s *Simulation) liquidate(f *agents.Firm, population []*agents.Firm, step uint64) {
	if f.Kind == agents.KindConsumption {
		s.Defaults.Consumption++
	} else {
		s.Defaults.Capital++
	}

	s.Bank.AbsorbLoss(f.Liquidity, f.Debt)

	// Entrant price: plain mean over the whole same-kind population.
	prices := make([]float64, len(population))
	for i, peer := range population {
		prices[i] = peer.Price
	}
	price := stats.Mean(prices)

	// Robust prior-output estimate from currently solvent peers. When the
	// entire population is insolvent the estimate degenerates to +Inf and
	// the leverage cap below decides alone.
	var outputs []float64
	for _, peer := range population {
		if peer.Solvent() {
			outputs = append(outputs, peer.PriorOutput)
		}
	}
	priorOutput := math.Inf(1)
	if len(outputs) == 0 {
		slog.Warn("no solvent firms in population",
			"kind", agents.KindName(f.Kind),
			"step", step,
			"firm", f.ID,
		)
	} else {
		priorOutput = stats.TrimmedMean(outputs, trimProportion)
	}

	p := s.Params
	capVal := f.EntrantCapitalValue(p.CapitalPrice)
	f.NetWorth = f.Retained + capVal
	f.Retained = 0
	f.Liquidity = f.NetWorth - capVal
	f.Debt = 0
	f.Price = price

	// Initial scale bounded by what the entrant could staff at target
	// leverage: wage bill financed out of equity plus matching credit.
	maxOutput := f.NetWorth * (1 + targetLeverage/(1-targetLeverage)) / p.BaseWage * p.Alpha
	f.PriorOutput = math.Min(priorOutput, maxOutput)
	f.DesiredOutput = f.PriorOutput
	f.CapOutRatio = p.CapitalOutputRatio
	f.TargetK = f.CapOutRatio * f.PriorOutput
	f.CapacityOutput = 0
	if f.CapOutRatio > 0 {
		f.CapacityOutput = f.K / f.CapOutRatio
	}
	f.Output = 0
	f.Inventory = 0
	f.InterestRate = p.RiskFreeRate

	s.releaseWorkforce(f)

	s.Events = append(s.Events, Event{
		Step:        step,
		Description: fmt.Sprintf("%s firm %d failed and re-entered", agents.KindName(f.Kind), f.ID),
		Category:    "bankruptcy",
	})
}

// releaseWorkforce severs the employment relation for every worker attached
// to the firm and zeroes its effective labor. Safe to call on a firm whose
// workforce was already released.
func (s *Simulation) releaseWorkforce(f *agents.Firm) {
	for _, w := range s.Workers {
		if w.Employer == f.ID {
			w.Release()
		}
	}
	f.EffLabor = 0
}
