// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/CosmWasm/cellvm/types"
)

// Backends lists the store backends the CLI can open.
var Backends = []string{"goleveldb", "memdb"}

// GasCosts mirrors types.GasConfig for the environment.
type GasCosts struct {
	ReadCostFlat     uint64 `env:"READ_COST_FLAT" envDefault:"1000"`
	ReadCostPerByte  uint64 `env:"READ_COST_PER_BYTE" envDefault:"3"`
	WriteCostFlat    uint64 `env:"WRITE_COST_FLAT" envDefault:"2000"`
	WriteCostPerByte uint64 `env:"WRITE_COST_PER_BYTE" envDefault:"30"`
}

// Config holds the settings of one runtime instance.
type Config struct {
	// Home is the directory holding the store.
	Home    string `env:"CELLVM_HOME" envDefault:".cellvm"`
	Backend string `env:"CELLVM_BACKEND" envDefault:"goleveldb"`
	// Origin is the hex encoded address allocation starts from.
	Origin   string   `env:"CELLVM_ORIGIN" envDefault:"0000000000000000000000000000000000000000000000000000000000000000"`
	GasLimit uint64   `env:"CELLVM_GAS_LIMIT" envDefault:"100000000"`
	LogLevel string   `env:"CELLVM_LOG_LEVEL" envDefault:"info"`
	Gas      GasCosts `envPrefix:"CELLVM_GAS_"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses the given environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// Default returns the configuration used when the environment sets nothing.
func Default() Config {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks that every field can be used.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.OriginAddress(); err != nil {
		errs = append(errs, fmt.Errorf("origin: %w", err))
	}
	if c.GasLimit == 0 {
		errs = append(errs, errors.New("gas limit must be positive"))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if !validBackend(c.Backend) {
		errs = append(errs, fmt.Errorf("backend %q: must be one of %v", c.Backend, Backends))
	}
	return errors.Join(errs...)
}

// OriginAddress parses Origin.
func (c Config) OriginAddress() (types.Address, error) {
	return types.ParseAddress(c.Origin)
}

// Level parses LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	return zerolog.ParseLevel(c.LogLevel)
}

// GasConfig converts the configured costs.
func (c Config) GasConfig() types.GasConfig {
	return types.GasConfig{
		ReadCostFlat:     c.Gas.ReadCostFlat,
		ReadCostPerByte:  c.Gas.ReadCostPerByte,
		WriteCostFlat:    c.Gas.WriteCostFlat,
		WriteCostPerByte: c.Gas.WriteCostPerByte,
	}
}

func validBackend(b string) bool {
	for _, known := range Backends {
		if b == known {
			return true
		}
	}
	return false
}
