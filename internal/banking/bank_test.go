package banking

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbsorbLoss_NegativeResidual(t *testing.T) {
	b := &Bank{Profits: 10, Loans: 100, Equity: 50}

	// Firm fails with 5 in liquidity against 30 of debt.
	b.AbsorbLoss(5, 30)

	require.Equal(t, 10.0+(5-30), b.Profits)
	require.Equal(t, 100.0-30, b.Loans)
	require.Equal(t, 50.0+(5-30), b.Equity)
}

func TestAbsorbLoss_PositiveResidual(t *testing.T) {
	// A firm can fail on valuation while still holding more cash than debt;
	// the residual is then a gain for the bank.
	b := &Bank{Loans: 20, Equity: 40}

	b.AbsorbLoss(15, 10)

	require.Equal(t, 5.0, b.Profits)
	require.Equal(t, 10.0, b.Loans)
	require.Equal(t, 45.0, b.Equity)
}

func TestAbsorbLoss_ZeroDebt(t *testing.T) {
	b := &Bank{Loans: 80, Equity: 40}

	b.AbsorbLoss(3, 0)

	require.Equal(t, 80.0, b.Loans)
	require.Equal(t, 43.0, b.Equity)
}

func TestLoanBookFlows(t *testing.T) {
	b := NewBank(100)

	b.Grant(50)
	require.Equal(t, 50.0, b.Loans)

	b.Repay(20)
	require.Equal(t, 30.0, b.Loans)

	b.CollectInterest(3)
	require.Equal(t, 3.0, b.Profits)
	require.Equal(t, 103.0, b.Equity)
}
