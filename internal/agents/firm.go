// Package agents provides the firm and worker data model.
package agents

// FirmID is a unique identifier for a firm. Consumption and capital firms
// share one ID sequence so a worker's employer reference is unambiguous.
type FirmID uint64

// FirmKind tags the two firm variants.
type FirmKind uint8

const (
	KindConsumption FirmKind = 0 // Produces the consumption good
	KindCapital     FirmKind = 1 // Produces capital goods
)

// KindName returns a human-readable firm kind label.
func KindName(k FirmKind) string {
	if k == KindCapital {
		return "capital"
	}
	return "consumption"
}

// Firm is a producer in the simulation. Both variants share the same shape;
// Kind selects the solvency predicate and the entrant capital-value term.
// Firms are never removed from their population — a bankrupt firm is
// reinitialized in place as a fresh entrant.
type Firm struct {
	ID   FirmID   `json:"id"`
	Kind FirmKind `json:"kind"`

	// Balance sheet
	NetWorth  float64 `json:"net_worth"` // A — equity; bankruptcy trigger when negative
	Liquidity float64 `json:"liquidity"`
	Debt      float64 `json:"debt"`
	Retained  float64 `json:"retained"` // PA — retained-earnings/new-capital buffer
	K         float64 `json:"k"`        // Physical capital stock (consumption firms)

	// Production plan
	Price          float64 `json:"price"`
	PriorOutput    float64 `json:"prior_output"`    // Y_prev — last period's production
	DesiredOutput  float64 `json:"desired_output"`  // Yd
	Output         float64 `json:"output"`          // Y — current period
	Inventory      float64 `json:"inventory"`       // Unsold stock
	CapOutRatio    float64 `json:"cap_out_ratio"`   // Capital required per unit of output
	TargetK        float64 `json:"target_k"`        // Desired capital stock
	CapacityOutput float64 `json:"capacity_output"` // Output supported by the installed stock

	// Labor and credit
	EffLabor     int     `json:"eff_labor"` // Leff — workers currently employed
	InterestRate float64 `json:"interest_rate"`

	// Per-step flow, reset at the start of each step.
	Revenue float64 `json:"revenue"`
}

// Solvent reports whether the firm counts toward the robust prior-output
// cross-section. The two kinds use different predicates: consumption firms
// must cover their debt out of equity, capital firms only need positive equity.
func (f *Firm) Solvent() bool {
	if f.Kind == KindConsumption {
		return f.NetWorth-f.Debt > 0
	}
	return f.NetWorth > 0
}

// EntrantCapitalValue is the capital-value term added to a fresh entrant's
// net worth. Only consumption firms carry valued physical capital; a capital
// firm re-enters on its retained buffer alone.
func (f *Firm) EntrantCapitalValue(capitalPrice float64) float64 {
	if f.Kind == KindConsumption {
		return f.K * capitalPrice
	}
	return 0
}
