// Package params holds model parameters and run configuration.
package params

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds all model parameters and run configuration.
// Model parameters are read-only during a run; the default counters live
// on the simulation, not here.
type Params struct {
	Seed    int64  `yaml:"seed"`
	Horizon uint64 `yaml:"horizon"` // Steps to simulate

	Population struct {
		ConsumptionFirms int `yaml:"consumption_firms"`
		CapitalFirms     int `yaml:"capital_firms"`
		Workers          int `yaml:"workers"`
	} `yaml:"population"`

	// Model parameters.
	Alpha              float64 `yaml:"alpha"`                // Output per unit of labor
	CapitalOutputRatio float64 `yaml:"capital_output_ratio"` // Capital required per unit of output
	RiskFreeRate       float64 `yaml:"risk_free_rate"`
	BaseWage           float64 `yaml:"base_wage"`
	CapitalPrice       float64 `yaml:"capital_price"` // Valuation of physical capital
	Propensity         float64 `yaml:"propensity"`    // Household propensity to consume out of wages
	RetainedShare      float64 `yaml:"retained_share"`
	ShockAmplitude     float64 `yaml:"shock_amplitude"`

	// Starting balance sheets.
	Init struct {
		FirmLiquidity float64 `yaml:"firm_liquidity"`
		FirmCapital   float64 `yaml:"firm_capital"`
		FirmPrice     float64 `yaml:"firm_price"`
		FirmOutput    float64 `yaml:"firm_output"`
		BankEquity    float64 `yaml:"bank_equity"`
	} `yaml:"init"`

	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`

	API struct {
		Port int `yaml:"port"`
	} `yaml:"api"`

	SaveEvery uint64 `yaml:"save_every"` // Persist series/snapshots every N steps
}

// Load reads params from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; defaults apply.
func Load(path string) (*Params, error) {
	p := &Params{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read params: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("parse params: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CREDITCYCLE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.Seed = seed
		}
	}
	if v := os.Getenv("CREDITCYCLE_HORIZON"); v != "" {
		if h, err := strconv.ParseUint(v, 10, 64); err == nil {
			p.Horizon = h
		}
	}
	if v := os.Getenv("CREDITCYCLE_SQLITE_PATH"); v != "" {
		p.Database.SQLitePath = v
	}
	if v := os.Getenv("CREDITCYCLE_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.API.Port = port
		}
	}

	p.applyDefaults()
	return p, nil
}

func (p *Params) applyDefaults() {
	if p.Seed == 0 {
		p.Seed = 42
	}
	if p.Horizon == 0 {
		p.Horizon = 1000
	}
	if p.Population.ConsumptionFirms == 0 {
		p.Population.ConsumptionFirms = 100
	}
	if p.Population.CapitalFirms == 0 {
		p.Population.CapitalFirms = 20
	}
	if p.Population.Workers == 0 {
		p.Population.Workers = 500
	}
	if p.Alpha == 0 {
		p.Alpha = 2.0
	}
	if p.CapitalOutputRatio == 0 {
		p.CapitalOutputRatio = 1.5
	}
	if p.RiskFreeRate == 0 {
		p.RiskFreeRate = 0.02
	}
	if p.BaseWage == 0 {
		p.BaseWage = 1.0
	}
	if p.CapitalPrice == 0 {
		p.CapitalPrice = 2.0
	}
	if p.Propensity == 0 {
		p.Propensity = 0.9
	}
	if p.RetainedShare == 0 {
		p.RetainedShare = 0.25
	}
	if p.ShockAmplitude == 0 {
		p.ShockAmplitude = 0.15
	}
	if p.Init.FirmLiquidity == 0 {
		p.Init.FirmLiquidity = 20
	}
	if p.Init.FirmCapital == 0 {
		p.Init.FirmCapital = 12
	}
	if p.Init.FirmPrice == 0 {
		p.Init.FirmPrice = 1.2
	}
	if p.Init.FirmOutput == 0 {
		p.Init.FirmOutput = 8
	}
	if p.Init.BankEquity == 0 {
		p.Init.BankEquity = 500
	}
	if p.Database.SQLitePath == "" {
		p.Database.SQLitePath = "data/creditcycle.db"
	}
	if p.API.Port == 0 {
		p.API.Port = 8080
	}
	if p.SaveEvery == 0 {
		p.SaveEvery = 50
	}
}
