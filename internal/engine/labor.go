// Labor market — production planning, hiring and firing, wage payment.
package engine

import (
	"math"

	"github.com/talgya/creditcycle/internal/agents"
)

// capitalDepreciation is the per-step decay of the installed capital stock.
const capitalDepreciation = 0.03

// planProduction sets each firm's desired output adaptively from last
// period's result: sold-out firms expand, firms sitting on stock contract.
func (s *Simulation) planProduction(step uint64) {
	p := s.Params

	for _, f := range s.allFirms() {
		if f.Kind == agents.KindConsumption {
			f.K *= 1 - capitalDepreciation
			if f.CapOutRatio > 0 {
				f.CapacityOutput = f.K / f.CapOutRatio
			}
		}

		if f.Inventory < 0.01*math.Max(f.PriorOutput, 1) {
			f.DesiredOutput = f.PriorOutput * 1.05
		} else {
			f.DesiredOutput = f.PriorOutput * 0.95
		}

		// At least one worker's worth of output.
		if f.DesiredOutput < p.Alpha {
			f.DesiredOutput = p.Alpha
		}

		// Consumption firms cannot plan past installed capacity.
		if f.Kind == agents.KindConsumption && f.DesiredOutput > f.CapacityOutput {
			f.DesiredOutput = f.CapacityOutput
		}

		f.TargetK = f.CapOutRatio * f.DesiredOutput
	}
}

// clearLaborMarket matches firms' desired labor against the worker pool.
// Surplus workers are let go first so the unemployed pool is current when
// expanding firms hire.
func (s *Simulation) clearLaborMarket(step uint64) {
	p := s.Params

	// Firing pass.
	for _, f := range s.allFirms() {
		desired := desiredLabor(f, p.Alpha)
		for f.EffLabor > desired {
			fired := false
			for _, w := range s.Workers {
				if w.Employer == f.ID {
					w.Release()
					f.EffLabor--
					fired = true
					break
				}
			}
			if !fired {
				// Employer references already gone; trust the worker scan.
				f.EffLabor = 0
				break
			}
		}
	}

	// Hiring pass: unemployed workers in population order.
	var pool []*agents.Worker
	for _, w := range s.Workers {
		if !w.Employed() {
			pool = append(pool, w)
		}
	}

	next := 0
	for _, f := range s.allFirms() {
		desired := desiredLabor(f, p.Alpha)
		for f.EffLabor < desired && next < len(pool) {
			w := pool[next]
			next++
			w.Employer = f.ID
			w.Wage = p.BaseWage
			f.EffLabor++
		}
	}
}

// desiredLabor is the headcount needed to produce the desired output.
func desiredLabor(f *agents.Firm, alpha float64) int {
	if alpha <= 0 {
		return 0
	}
	return int(math.Ceil(f.DesiredOutput / alpha))
}

// payWages settles each firm's wage bill, borrowing any shortfall from the
// bank at the firm's current rate.
func (s *Simulation) payWages(step uint64) {
	for _, f := range s.allFirms() {
		bill := 0.0
		for _, w := range s.Workers {
			if w.Employer == f.ID {
				bill += w.Wage
			}
		}
		if bill <= 0 {
			continue
		}
		if f.Liquidity < bill {
			s.borrow(f, bill-f.Liquidity, step)
		}
		f.Liquidity -= bill
	}
}

// produce turns employed labor into output and adds it to inventory.
func (s *Simulation) produce(step uint64) {
	alpha := s.Params.Alpha
	for _, f := range s.allFirms() {
		f.Output = alpha * float64(f.EffLabor)
		f.Inventory += f.Output
		f.PriorOutput = f.Output
	}
}
