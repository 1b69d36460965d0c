// Goods markets — household consumption and capital investment.
package engine

// clearGoodsMarket spends the household wage bill on the consumption good
// and lets under-capitalized consumption firms buy capital goods.
func (s *Simulation) clearGoodsMarket(step uint64, shock float64) {
	s.sellConsumptionGoods(shock)
	s.sellCapitalGoods()
}

// sellConsumptionGoods splits nominal household demand across consumption
// firms by inverse-price weights: cheaper firms capture larger shares.
func (s *Simulation) sellConsumptionGoods(shock float64) {
	wageBill := 0.0
	for _, w := range s.Workers {
		wageBill += w.Wage
	}
	demand := wageBill * s.Params.Propensity * shock
	if demand <= 0 {
		return
	}

	invSum := 0.0
	for _, f := range s.ConsumptionFirms {
		if f.Price > 0 {
			invSum += 1 / f.Price
		}
	}
	if invSum <= 0 {
		return
	}

	for _, f := range s.ConsumptionFirms {
		if f.Price <= 0 {
			continue
		}
		spend := demand * (1 / f.Price) / invSum
		qty := spend / f.Price
		if qty > f.Inventory {
			qty = f.Inventory
		}
		revenue := qty * f.Price
		f.Inventory -= qty
		f.Liquidity += revenue
		f.Revenue += revenue
	}
}

// sellCapitalGoods fills consumption firms' investment gaps from capital
// firms' inventories, in population order, cash-constrained.
func (s *Simulation) sellCapitalGoods() {
	for _, f := range s.ConsumptionFirms {
		gap := f.TargetK - f.K
		if gap <= 0 {
			continue
		}

		for _, kf := range s.CapitalFirms {
			if gap <= 0 {
				break
			}
			if kf.Inventory <= 0 || kf.Price <= 0 {
				continue
			}

			units := gap
			if units > kf.Inventory {
				units = kf.Inventory
			}
			affordable := f.Liquidity / kf.Price
			if units > affordable {
				units = affordable
			}
			if units <= 0 {
				continue
			}

			cost := units * kf.Price
			f.Liquidity -= cost
			f.K += units
			gap -= units
			kf.Inventory -= units
			kf.Liquidity += cost
			kf.Revenue += cost
		}

		if f.CapOutRatio > 0 {
			f.CapacityOutput = f.K / f.CapOutRatio
		}
	}
}
