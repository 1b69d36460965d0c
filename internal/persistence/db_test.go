package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/creditcycle/internal/agents"
	"github.com/talgya/creditcycle/internal/banking"
	"github.com/talgya/creditcycle/internal/engine"
	"github.com/talgya/creditcycle/internal/params"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testParams(t *testing.T) *params.Params {
	t.Helper()
	p, err := params.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	return p
}

func TestSeriesRoundTrip(t *testing.T) {
	db := openTestDB(t)
	runID, err := db.CreateRun(testParams(t))
	require.NoError(t, err)

	stats := engine.SimStats{
		Output:       120.5,
		BankEquity:   480,
		Unemployment: 0.12,
		DefaultsC:    3,
		DefaultsK:    1,
	}
	require.NoError(t, db.SaveSeries(runID, 10, stats))
	require.NoError(t, db.SaveSeries(runID, 20, stats))

	points, err := db.Series(runID)
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, uint64(10), points[0].Step)
	require.Equal(t, 120.5, points[0].Output)
	require.Equal(t, uint64(3), points[1].DefaultsC)
}

func TestSaveSnapshotClearsEvents(t *testing.T) {
	db := openTestDB(t)
	p := testParams(t)
	runID, err := db.CreateRun(p)
	require.NoError(t, err)

	cons := []*agents.Firm{{ID: 1, Kind: agents.KindConsumption, NetWorth: 10, Price: 1}}
	sim := engine.NewSimulation(p, cons, nil, nil, banking.NewBank(100))
	sim.Events = append(sim.Events, engine.Event{Step: 1, Description: "x", Category: "credit"})

	require.NoError(t, db.SaveSnapshot(runID, sim))
	require.Empty(t, sim.Events)

	points, err := db.Series(runID)
	require.NoError(t, err)
	require.Len(t, points, 1)
}
