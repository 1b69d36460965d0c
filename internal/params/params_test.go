package params

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Seed != 42 {
		t.Errorf("expected default seed 42, got %d", p.Seed)
	}
	if p.Population.ConsumptionFirms != 100 {
		t.Errorf("expected 100 consumption firms, got %d", p.Population.ConsumptionFirms)
	}
	if p.RiskFreeRate != 0.02 {
		t.Errorf("expected default risk-free rate, got %v", p.RiskFreeRate)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	yaml := `
seed: 7
horizon: 250
population:
  consumption_firms: 10
  capital_firms: 3
  workers: 40
base_wage: 1.5
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Seed != 7 {
		t.Errorf("expected seed 7, got %d", p.Seed)
	}
	if p.Horizon != 250 {
		t.Errorf("expected horizon 250, got %d", p.Horizon)
	}
	if p.Population.Workers != 40 {
		t.Errorf("expected 40 workers, got %d", p.Population.Workers)
	}
	if p.BaseWage != 1.5 {
		t.Errorf("expected base wage 1.5, got %v", p.BaseWage)
	}
	// Unset fields still get defaults.
	if p.Alpha != 2.0 {
		t.Errorf("expected default alpha, got %v", p.Alpha)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CREDITCYCLE_SEED", "99")
	t.Setenv("CREDITCYCLE_SQLITE_PATH", "/tmp/override.db")

	p, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Seed != 99 {
		t.Errorf("expected env seed 99, got %d", p.Seed)
	}
	if p.Database.SQLitePath != "/tmp/override.db" {
		t.Errorf("expected env sqlite path, got %s", p.Database.SQLitePath)
	}
}
