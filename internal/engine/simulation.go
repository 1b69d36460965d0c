// Simulation ties together the firm populations, the labor force, and the
// bank, and runs them each step.
package engine

import (
	"log/slog"

	"github.com/talgya/creditcycle/internal/agents"
	"github.com/talgya/creditcycle/internal/banking"
	"github.com/talgya/creditcycle/internal/params"
)

// Simulation holds the complete model state and wires systems together.
// Populations are stable-order slices; firms are mutated in place and never
// removed, so the sweep's scan order is deterministic and reproducible.
type Simulation struct {
	ConsumptionFirms []*agents.Firm
	CapitalFirms     []*agents.Firm
	FirmIndex        map[agents.FirmID]*agents.Firm
	Workers          []*agents.Worker
	Bank             *banking.Bank
	Params           *params.Params

	// Default counters, split by firm kind. The bankruptcy subsystem is the
	// only writer.
	Defaults DefaultCounters

	Shocks   *ShockSeries
	Events   []Event
	LastStep uint64

	// Statistics recomputed at the end of each step.
	Stats SimStats
}

// DefaultCounters counts liquidations since the start of the run.
type DefaultCounters struct {
	Consumption uint64 `json:"consumption"`
	Capital     uint64 `json:"capital"`
}

// Event is a notable occurrence in the model.
type Event struct {
	Step        uint64 `json:"step"`
	Description string `json:"description"`
	Category    string `json:"category"` // "bankruptcy", "credit", "labor"
}

// SimStats tracks aggregate model statistics.
type SimStats struct {
	Output           float64 `json:"output"`
	ConsumptionPrice float64 `json:"consumption_price"` // Mean price, consumption firms
	TotalNetWorth    float64 `json:"total_net_worth"`
	TotalDebt        float64 `json:"total_debt"`
	BankEquity       float64 `json:"bank_equity"`
	BankLoans        float64 `json:"bank_loans"`
	Employed         int     `json:"employed"`
	Unemployment     float64 `json:"unemployment"`
	DefaultsC        uint64  `json:"defaults_consumption"`
	DefaultsK        uint64  `json:"defaults_capital"`
}

// NewSimulation creates a Simulation from spawned populations.
func NewSimulation(p *params.Params, cons, cap []*agents.Firm, workers []*agents.Worker, bank *banking.Bank) *Simulation {
	index := make(map[agents.FirmID]*agents.Firm, len(cons)+len(cap))
	for _, f := range cons {
		index[f.ID] = f
	}
	for _, f := range cap {
		index[f.ID] = f
	}

	sim := &Simulation{
		ConsumptionFirms: cons,
		CapitalFirms:     cap,
		FirmIndex:        index,
		Workers:          workers,
		Bank:             bank,
		Params:           p,
		Shocks:           NewShockSeries(p.Seed, p.ShockAmplitude),
	}
	sim.updateStats()
	return sim
}

// CurrentStep returns the most recently processed step number.
func (s *Simulation) CurrentStep() uint64 {
	return s.LastStep
}

// Step advances the model by one full period: planning, factor markets,
// production, goods markets, debt service, profit accounting, and finally
// bankruptcy resolution.
func (s *Simulation) Step(step uint64) {
	s.LastStep = step
	shock := s.Shocks.At(step)

	for _, f := range s.allFirms() {
		f.Revenue = 0
	}

	s.planProduction(step)
	s.clearLaborMarket(step)
	s.payWages(step)
	s.produce(step)
	s.clearGoodsMarket(step, shock)
	s.serviceDebt(step)
	s.settleProfits(step)
	s.resolveBankruptcies(step)
	s.updateStats()

	if step%100 == 0 {
		slog.Info("step report",
			"step", step,
			"output", s.Stats.Output,
			"unemployment", s.Stats.Unemployment,
			"bank_equity", s.Stats.BankEquity,
			"defaults_c", s.Stats.DefaultsC,
			"defaults_k", s.Stats.DefaultsK,
			"shock", shock,
		)
	}

	// Trim old events to prevent unbounded growth (keep last 1000).
	if len(s.Events) > 1000 {
		s.Events = s.Events[len(s.Events)-1000:]
	}
}

// allFirms iterates consumption firms first, then capital firms — the same
// fixed order the bankruptcy sweep uses.
func (s *Simulation) allFirms() []*agents.Firm {
	firms := make([]*agents.Firm, 0, len(s.ConsumptionFirms)+len(s.CapitalFirms))
	firms = append(firms, s.ConsumptionFirms...)
	firms = append(firms, s.CapitalFirms...)
	return firms
}

func (s *Simulation) updateStats() {
	output := 0.0
	netWorth := 0.0
	debt := 0.0
	priceSum := 0.0
	for _, f := range s.ConsumptionFirms {
		output += f.Output
		netWorth += f.NetWorth
		debt += f.Debt
		priceSum += f.Price
	}
	for _, f := range s.CapitalFirms {
		output += f.Output
		netWorth += f.NetWorth
		debt += f.Debt
	}

	employed := 0
	for _, w := range s.Workers {
		if w.Employed() {
			employed++
		}
	}

	s.Stats.Output = output
	s.Stats.TotalNetWorth = netWorth
	s.Stats.TotalDebt = debt
	if len(s.ConsumptionFirms) > 0 {
		s.Stats.ConsumptionPrice = priceSum / float64(len(s.ConsumptionFirms))
	}
	s.Stats.BankEquity = s.Bank.Equity
	s.Stats.BankLoans = s.Bank.Loans
	s.Stats.Employed = employed
	if len(s.Workers) > 0 {
		s.Stats.Unemployment = 1 - float64(employed)/float64(len(s.Workers))
	}
	s.Stats.DefaultsC = s.Defaults.Consumption
	s.Stats.DefaultsK = s.Defaults.Capital
}
