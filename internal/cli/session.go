package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/CosmWasm/cellvm"
	"github.com/CosmWasm/cellvm/internal/api/dbstore"
)

const dbName = "cellvm"

// session is one opened store and the VM running against it.
type session struct {
	vm    *cellvm.VM
	store dbstore.Lookup
}

// withSession opens the configured store, runs fn and closes the store.
// Metrics are written even when fn fails.
func withSession(opts *RootOptions, cmd *cobra.Command, fn func(s *session) error) (err error) {
	level, err := opts.Level()
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Logger()

	if opts.Backend != "memdb" {
		if err := os.MkdirAll(opts.Home, 0o755); err != nil {
			return fmt.Errorf("create home: %w", err)
		}
	}
	store, err := dbstore.Open(dbName, opts.Backend, opts.Home)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	vm, err := cellvm.NewIncrementerVM(opts.Config, logger)
	if err != nil {
		return err
	}
	s := &session{vm: vm, store: store}
	err = fn(s)
	if opts.MetricsOut != "" {
		err = errors.Join(err, s.writeMetrics(opts.MetricsOut))
	}
	return err
}

func (s *session) writeMetrics(path string) error {
	m := s.vm.Metrics()
	bz, err := m.MarshalMessagePack()
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	if err := os.WriteFile(path, bz, 0o644); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func printReport(cmd *cobra.Command, r cellvm.Report) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: gas %d/%d, %d write(s)\n", r.Outcome, r.Gas.Used, r.Gas.Limit, r.Writes)
}
