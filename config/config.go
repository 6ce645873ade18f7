// Package config loads the simulator and server settings from an ini file.
// Every key has a default, so a partial or missing file still yields a
// usable configuration.
package config

import (
	"time"

	"gopkg.in/ini.v1"
)

type Config struct {
	// Simulation parameters.
	GridSize         int
	Diffusion        float64
	Viscosity        float64
	TimeStep         float64
	SolverIterations int

	// Server parameters.
	Addr         string
	PushInterval time.Duration
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		GridSize:         100,
		Diffusion:        0.0,
		Viscosity:        0.0001,
		TimeStep:         0.1,
		SolverIterations: 20,
		Addr:             ":9000",
		PushInterval:     50 * time.Millisecond,
	}
}

// Load reads path and overlays its values on the defaults. On a read or
// parse error the defaults are returned alongside the error so the caller
// can decide whether a missing file is fatal.
func Load(path string) (Config, error) {
	cfg := Default()
	file, err := ini.Load(path)
	if err != nil {
		return cfg, err
	}

	sim := file.Section("simulation")
	cfg.GridSize = sim.Key("GridSize").MustInt(cfg.GridSize)
	cfg.Diffusion = sim.Key("Diffusion").MustFloat64(cfg.Diffusion)
	cfg.Viscosity = sim.Key("Viscosity").MustFloat64(cfg.Viscosity)
	cfg.TimeStep = sim.Key("TimeStep").MustFloat64(cfg.TimeStep)
	cfg.SolverIterations = sim.Key("SolverIterations").MustInt(cfg.SolverIterations)

	srv := file.Section("server")
	cfg.Addr = srv.Key("Addr").MustString(cfg.Addr)
	cfg.PushInterval = time.Duration(srv.Key("PushIntervalMs").MustInt(int(cfg.PushInterval/time.Millisecond))) * time.Millisecond

	return cfg, nil
}
