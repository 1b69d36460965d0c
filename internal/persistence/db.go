// Package persistence provides SQLite-based storage for run output:
// aggregate series, firm snapshots, and events.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/creditcycle/internal/agents"
	"github.com/talgya/creditcycle/internal/engine"
	"github.com/talgya/creditcycle/internal/params"
)

// DB wraps a SQLite connection for run output storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		params_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS series (
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		output REAL NOT NULL,
		consumption_price REAL NOT NULL,
		total_net_worth REAL NOT NULL,
		total_debt REAL NOT NULL,
		bank_equity REAL NOT NULL,
		bank_loans REAL NOT NULL,
		unemployment REAL NOT NULL,
		defaults_consumption INTEGER NOT NULL,
		defaults_capital INTEGER NOT NULL,
		PRIMARY KEY (run_id, step)
	);

	CREATE TABLE IF NOT EXISTS firms (
		run_id TEXT NOT NULL,
		id INTEGER NOT NULL,
		kind INTEGER NOT NULL,
		net_worth REAL NOT NULL,
		liquidity REAL NOT NULL,
		debt REAL NOT NULL,
		retained REAL NOT NULL,
		k REAL NOT NULL,
		price REAL NOT NULL,
		prior_output REAL NOT NULL,
		output REAL NOT NULL,
		inventory REAL NOT NULL,
		eff_labor INTEGER NOT NULL,
		interest_rate REAL NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		step INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_series_run ON series(run_id);
	CREATE INDEX IF NOT EXISTS idx_events_step ON events(run_id, step);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun registers a new run and returns its ID.
func (db *DB) CreateRun(p *params.Params) (string, error) {
	id := uuid.New().String()
	paramsJSON, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}

	_, err = db.conn.Exec(
		"INSERT INTO runs (id, seed, created_at, params_json) VALUES (?, ?, ?, ?)",
		id, p.Seed, time.Now().UTC().Format(time.RFC3339), string(paramsJSON),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SaveSeries appends one step's aggregate statistics.
func (db *DB) SaveSeries(runID string, step uint64, st engine.SimStats) error {
	_, err := db.conn.Exec(`INSERT OR REPLACE INTO series
		(run_id, step, output, consumption_price, total_net_worth, total_debt,
		 bank_equity, bank_loans, unemployment, defaults_consumption, defaults_capital)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, step, st.Output, st.ConsumptionPrice, st.TotalNetWorth, st.TotalDebt,
		st.BankEquity, st.BankLoans, st.Unemployment, st.DefaultsC, st.DefaultsK,
	)
	return err
}

// SaveFirms writes the current firm cross-section (full replace per run).
func (db *DB) SaveFirms(runID string, sim *engine.Simulation) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM firms WHERE run_id = ?", runID); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO firms
		(run_id, id, kind, net_worth, liquidity, debt, retained, k, price,
		 prior_output, output, inventory, eff_labor, interest_rate)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	firms := make([]*agents.Firm, 0, len(sim.ConsumptionFirms)+len(sim.CapitalFirms))
	firms = append(firms, sim.ConsumptionFirms...)
	firms = append(firms, sim.CapitalFirms...)

	for _, f := range firms {
		_, err := stmt.Exec(
			runID, f.ID, f.Kind, f.NetWorth, f.Liquidity, f.Debt, f.Retained,
			f.K, f.Price, f.PriorOutput, f.Output, f.Inventory, f.EffLabor, f.InterestRate,
		)
		if err != nil {
			return fmt.Errorf("insert firm %d: %w", f.ID, err)
		}
	}

	return tx.Commit()
}

// SaveEvents appends events to the database.
func (db *DB) SaveEvents(runID string, events []engine.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, step, description, category) VALUES (?, ?, ?, ?)",
			runID, e.Step, e.Description, e.Category,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SaveSnapshot persists a full picture of the run at the current step.
func (db *DB) SaveSnapshot(runID string, sim *engine.Simulation) error {
	slog.Info("saving snapshot", "run", runID, "step", sim.CurrentStep())

	if err := db.SaveSeries(runID, sim.CurrentStep(), sim.Stats); err != nil {
		return fmt.Errorf("save series: %w", err)
	}
	if err := db.SaveFirms(runID, sim); err != nil {
		return fmt.Errorf("save firms: %w", err)
	}
	if err := db.SaveEvents(runID, sim.Events); err != nil {
		return fmt.Errorf("save events: %w", err)
	}
	sim.Events = sim.Events[:0]

	return nil
}

// SeriesPoint is one row of the aggregate series.
type SeriesPoint struct {
	Step         uint64  `db:"step" json:"step"`
	Output       float64 `db:"output" json:"output"`
	BankEquity   float64 `db:"bank_equity" json:"bank_equity"`
	Unemployment float64 `db:"unemployment" json:"unemployment"`
	DefaultsC    uint64  `db:"defaults_consumption" json:"defaults_consumption"`
	DefaultsK    uint64  `db:"defaults_capital" json:"defaults_capital"`
}

// Series returns the saved aggregate series for a run in step order.
func (db *DB) Series(runID string) ([]SeriesPoint, error) {
	var points []SeriesPoint
	err := db.conn.Select(&points,
		`SELECT step, output, bank_equity, unemployment,
		        defaults_consumption, defaults_capital
		 FROM series WHERE run_id = ? ORDER BY step`,
		runID,
	)
	return points, err
}
