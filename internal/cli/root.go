// Package cli implements the cellvm command line.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CosmWasm/cellvm/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	config.Config
	// MetricsOut is a file the VM metrics are written to, msgpack encoded.
	MetricsOut string
}

// NewRootCommand creates the root command. Flag defaults come from the
// CELLVM_* environment.
func NewRootCommand() *cobra.Command {
	cfg, envErr := config.Load()
	if envErr != nil {
		cfg = config.Default()
	}
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "cellvm",
		Short: "cellvm - typed cells over a key-value store",
		Long: `Run the incrementer contract against a persistent store.

Every command is one entry point: setup initializes the counter, inc and get
invoke it. Failed commands leave the store unchanged.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			if err := opts.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Home, "home", cfg.Home, "directory holding the store")
	flags.StringVar(&opts.Backend, "backend", cfg.Backend, fmt.Sprintf("store backend %v", config.Backends))
	flags.StringVar(&opts.Origin, "origin", cfg.Origin, "hex address allocation starts from")
	flags.Uint64Var(&opts.GasLimit, "gas-limit", cfg.GasLimit, "gas limit of one command")
	flags.StringVar(&opts.LogLevel, "log-level", cfg.LogLevel, "log level (trace|debug|info|warn|error)")
	flags.StringVar(&opts.MetricsOut, "metrics-out", "", "write msgpack encoded metrics to this file")

	cmd.AddCommand(NewSetupCommand(opts))
	cmd.AddCommand(NewIncCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewInvokeCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))

	return cmd
}
