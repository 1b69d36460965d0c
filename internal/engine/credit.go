// Credit — loan origination, debt service, and profit accounting.
package engine

import (
	"fmt"

	"github.com/talgya/creditcycle/internal/agents"
)

// loanRepaymentShare is the fraction of outstanding principal a firm
// retires each step, cash permitting.
const loanRepaymentShare = 0.1

// borrow extends bank credit to a firm. The rate charged rises with the
// firm's leverage, floored at the risk-free rate.
func (s *Simulation) borrow(f *agents.Firm, amount float64, step uint64) {
	if amount <= 0 {
		return
	}
	f.Debt += amount
	f.Liquidity += amount
	s.Bank.Grant(amount)

	// Risk premium proportional to debt relative to equity.
	rate := s.Params.RiskFreeRate
	if f.NetWorth > 0 {
		rate += 0.5 * s.Params.RiskFreeRate * (f.Debt / f.NetWorth)
	} else {
		rate += s.Params.RiskFreeRate
	}
	f.InterestRate = rate

	s.Events = append(s.Events, Event{
		Step:        step,
		Description: fmt.Sprintf("%s firm %d borrowed %.2f", agents.KindName(f.Kind), f.ID, amount),
		Category:    "credit",
	})
}

// serviceDebt charges interest and retires principal. Interest is charged
// in full even when it pushes liquidity negative — the shortfall shows up
// as lost equity and, eventually, as a bankruptcy.
func (s *Simulation) serviceDebt(step uint64) {
	for _, f := range s.allFirms() {
		if f.Debt <= 0 {
			continue
		}

		interest := f.Debt * f.InterestRate
		f.Liquidity -= interest
		s.Bank.CollectInterest(interest)

		repay := f.Debt * loanRepaymentShare
		if repay > f.Liquidity {
			repay = f.Liquidity
		}
		if repay > 0 {
			f.Liquidity -= repay
			f.Debt -= repay
			s.Bank.Repay(repay)
		}
	}
}

// settleProfits marks every firm's net worth to its balance sheet and
// splits positive profits between dividends and the retained buffer that
// would capitalize a re-entry.
func (s *Simulation) settleProfits(step uint64) {
	p := s.Params
	for _, f := range s.allFirms() {
		prev := f.NetWorth
		net := f.Liquidity - f.Debt + f.EntrantCapitalValue(p.CapitalPrice)

		profit := net - prev
		if profit > 0 {
			dividend := (1 - p.RetainedShare) * profit
			if dividend > f.Liquidity {
				dividend = f.Liquidity
			}
			f.Liquidity -= dividend
			f.Retained += p.RetainedShare * profit
			net -= dividend
		}

		f.NetWorth = net
	}
}
