package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CosmWasm/cellvm/types"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ".cellvm", cfg.Home)
	assert.Equal(t, "goleveldb", cfg.Backend)
	assert.Equal(t, uint64(100_000_000), cfg.GasLimit)

	origin, err := cfg.OriginAddress()
	require.NoError(t, err)
	assert.Equal(t, types.Address{}, origin)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	assert.Equal(t, types.DefaultGasConfig(), cfg.GasConfig())
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CELLVM_HOME":                   "/tmp/x",
		"CELLVM_BACKEND":                "memdb",
		"CELLVM_ORIGIN":                 "0x00000000000000000000000000000000000000000000000000000000000000ff",
		"CELLVM_GAS_LIMIT":              "5000",
		"CELLVM_LOG_LEVEL":              "debug",
		"CELLVM_GAS_WRITE_COST_FLAT":    "7",
		"CELLVM_GAS_READ_COST_PER_BYTE": "0",
	})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/x", cfg.Home)
	assert.Equal(t, "memdb", cfg.Backend)
	assert.Equal(t, uint64(5000), cfg.GasLimit)

	origin, err := cfg.OriginAddress()
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), origin[types.AddressLen-1])

	assert.Equal(t, types.GasConfig{
		ReadCostFlat:     1000,
		ReadCostPerByte:  0,
		WriteCostFlat:    7,
		WriteCostPerByte: 30,
	}, cfg.GasConfig())
}

func TestValidate(t *testing.T) {
	specs := map[string]struct {
		environ map[string]string
		wantErr string
	}{
		"bad origin": {
			environ: map[string]string{"CELLVM_ORIGIN": "abcd"},
			wantErr: "origin",
		},
		"zero gas": {
			environ: map[string]string{"CELLVM_GAS_LIMIT": "0"},
			wantErr: "gas limit",
		},
		"bad level": {
			environ: map[string]string{"CELLVM_LOG_LEVEL": "loud"},
			wantErr: "log level",
		},
		"bad backend": {
			environ: map[string]string{"CELLVM_BACKEND": "rocksdb"},
			wantErr: "backend",
		},
		"unparsable number": {
			environ: map[string]string{"CELLVM_GAS_LIMIT": "lots"},
			wantErr: "parse env",
		},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(spec.environ)
			require.Error(t, err)
			assert.Contains(t, err.Error(), spec.wantErr)
		})
	}
}
