// Package banking provides the bank balance sheet shared by all firms.
package banking

// Bank is the single commercial bank in the model. All firm credit runs
// through its loan book; liquidation losses hit its profit account and
// equity directly.
type Bank struct {
	Profits float64 `json:"profits"` // Running profit/loss account
	Loans   float64 `json:"loans"`   // Total outstanding loan book
	Equity  float64 `json:"equity"`
}

// NewBank creates a bank with the given starting equity.
func NewBank(equity float64) *Bank {
	return &Bank{Equity: equity}
}

// AbsorbLoss settles a liquidated firm against the bank: the firm's residual
// balance (liquidity minus debt) is booked as profit or loss, its debt is
// written out of the loan book, and equity moves by the signed residual.
// Must be called with the firm's pre-reset liquidity and debt.
func (b *Bank) AbsorbLoss(liquidity, debt float64) {
	residual := liquidity - debt
	b.Profits += residual
	b.Loans -= debt
	b.Equity += residual
}

// Grant extends a new loan.
func (b *Bank) Grant(amount float64) {
	b.Loans += amount
}

// Repay retires loan principal.
func (b *Bank) Repay(amount float64) {
	b.Loans -= amount
}

// CollectInterest books interest income into profits and equity.
func (b *Bank) CollectInterest(amount float64) {
	b.Profits += amount
	b.Equity += amount
}
