// Command creditsim runs the credit-cycle macroeconomic simulation.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/talgya/creditcycle/internal/agents"
	"github.com/talgya/creditcycle/internal/api"
	"github.com/talgya/creditcycle/internal/banking"
	"github.com/talgya/creditcycle/internal/engine"
	"github.com/talgya/creditcycle/internal/params"
	"github.com/talgya/creditcycle/internal/persistence"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfgPath := "creditcycle.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	p, err := params.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load params", "error", err)
		os.Exit(1)
	}
	slog.Info("creditcycle — agent-based credit-cycle simulation",
		"seed", p.Seed,
		"horizon", p.Horizon,
		"consumption_firms", p.Population.ConsumptionFirms,
		"capital_firms", p.Population.CapitalFirms,
		"workers", p.Population.Workers,
	)

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(p.Database.SQLitePath), 0755)
	db, err := persistence.Open(p.Database.SQLitePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", p.Database.SQLitePath)

	runID, err := db.CreateRun(p)
	if err != nil {
		slog.Error("failed to register run", "error", err)
		os.Exit(1)
	}
	slog.Info("run registered", "run", runID)

	// ── Populations ───────────────────────────────────────────────────
	spawner := agents.NewSpawner(p.Seed)
	init := agents.FirmInit{
		Liquidity:    p.Init.FirmLiquidity,
		K:            p.Init.FirmCapital,
		CapitalPrice: p.CapitalPrice,
		Price:        p.Init.FirmPrice,
		Output:       p.Init.FirmOutput,
		CapOutRatio:  p.CapitalOutputRatio,
		InterestRate: p.RiskFreeRate,
	}
	cons := spawner.SpawnFirms(agents.KindConsumption, p.Population.ConsumptionFirms, init)
	capital := spawner.SpawnFirms(agents.KindCapital, p.Population.CapitalFirms, init)
	workers := spawner.SpawnWorkers(p.Population.Workers)
	bank := banking.NewBank(p.Init.BankEquity)

	sim := engine.NewSimulation(p, cons, capital, workers, bank)
	slog.Info("populations ready",
		"firms", len(cons)+len(capital),
		"workers", len(workers),
		"bank_equity", bank.Equity,
	)

	// ── Runner ────────────────────────────────────────────────────────
	runner := engine.NewRunner(p.Horizon)
	runner.SnapshotEvery = p.SaveEvery
	runner.OnStep = sim.Step
	runner.OnSnapshot = func(step uint64) {
		if err := db.SaveSnapshot(runID, sim); err != nil {
			slog.Error("snapshot failed", "step", step, "error", err)
		}
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Sim:    sim,
		Runner: runner,
		Port:   p.API.Port,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	fmt.Printf("creditcycle: %d firms, %d workers, horizon %d steps.\n",
		len(cons)+len(capital), len(workers), p.Horizon)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", p.API.Port)

	runner.Run()

	// Final save on completion or shutdown.
	if err := db.SaveSnapshot(runID, sim); err != nil {
		slog.Error("final save failed", "error", err)
	}

	fmt.Printf("Run %s finished at step %d: %d consumption and %d capital defaults.\n",
		runID, sim.CurrentStep(), sim.Defaults.Consumption, sim.Defaults.Capital)
}
