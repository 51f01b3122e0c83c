package cellvm

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/CosmWasm/cellvm/internal/config"
	"github.com/CosmWasm/cellvm/internal/contracts/incrementer"
	"github.com/CosmWasm/cellvm/internal/runtime/db"
	"github.com/CosmWasm/cellvm/internal/runtime/dispatch"
	"github.com/CosmWasm/cellvm/internal/runtime/gas"
	"github.com/CosmWasm/cellvm/types"
)

// KVStore is the host store a contract instance persists its cells in.
type KVStore = types.KVStore

// Host is the input/output side channel of one call.
type Host = types.Host

// Report describes a completed entry point.
// Outcome is only meaningful when the entry point succeeded.
type Report struct {
	Outcome types.OutcomeKind
	Gas     gas.Report
	// Writes is the number of keys committed to the store.
	Writes int
}

// VM runs the entry points of one contract.
// You should create one VM per contract and call it for every deploy and call
// of every instance; instances are told apart by the store passed in.
type VM struct {
	program   dispatch.Program
	origin    types.Address
	gasLimit  uint64
	gasConfig types.GasConfig
	logger    zerolog.Logger

	mu      sync.Mutex
	metrics Metrics
}

// NewVM creates a VM for program.
//
// `cfg` provides the allocation origin, the per call gas limit and the gas costs.
// `logger` receives one debug line per entry point and a warning per abort.
func NewVM(program dispatch.Program, cfg config.Config, logger zerolog.Logger) (*VM, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	origin, err := cfg.OriginAddress()
	if err != nil {
		return nil, err
	}
	vm := &VM{
		program:   program,
		origin:    origin,
		gasLimit:  cfg.GasLimit,
		gasConfig: cfg.GasConfig(),
		logger:    logger,
	}
	logger.Info().Str("origin", origin.String()).Uint64("gas_limit", cfg.GasLimit).Msg("cellvm initialized")
	return vm, nil
}

// NewIncrementerVM creates a VM running the incrementer contract.
func NewIncrementerVM(cfg config.Config, logger zerolog.Logger) (*VM, error) {
	return NewVM(incrementer.Program(), cfg, logger)
}

func (vm *VM) env(store KVStore) (dispatch.Env, *gas.State) {
	meter := gas.NewState(vm.gasLimit)
	return dispatch.Env{
		Origin:    vm.origin,
		Store:     db.New(store),
		Gas:       meter,
		GasConfig: vm.gasConfig,
	}, meter
}

// Deploy lays out and initializes the contract state in store.
// It runs once per instance and overwrites whatever the state's addresses held.
func (vm *VM) Deploy(store KVStore) (Report, error) {
	env, meter := vm.env(store)
	res, err := vm.program.Setup(env)
	report := vm.report(res, meter)
	vm.record("setup", res, report, err)
	if err != nil {
		return report, fmt.Errorf("setup: %w", err)
	}
	return report, nil
}

// Execute decodes input as one command and runs it against store.
// A query returns an outcome of kind types.OutcomeReturned carrying the
// encoded result; a mutation returns types.OutcomeCommitted. On error nothing
// was committed.
func (vm *VM) Execute(input []byte, store KVStore) (types.Outcome, Report, error) {
	env, meter := vm.env(store)
	res, err := vm.program.Invoke(env, input)
	report := vm.report(res, meter)
	vm.record("invoke", res, report, err)
	if err != nil {
		return types.Outcome{}, report, fmt.Errorf("invoke: %w", err)
	}
	return res.Outcome, report, nil
}

// Call is the invoke entry point seen from a host: it reads the input from
// host and, for queries, emits the result through host.Return.
func (vm *VM) Call(host Host, store KVStore) (Report, error) {
	out, report, err := vm.Execute(host.Input(), store)
	if err != nil {
		return report, err
	}
	if out.Kind == types.OutcomeReturned {
		host.Return(out.Data)
	}
	return report, nil
}

func (vm *VM) report(res dispatch.Result, meter *gas.State) Report {
	return Report{
		Outcome: res.Outcome.Kind,
		Gas:     gas.NewReport(meter),
		Writes:  res.Writes,
	}
}

func (vm *VM) record(entry string, res dispatch.Result, report Report, err error) {
	vm.mu.Lock()
	vm.metrics.add(entry, res, report, err)
	vm.mu.Unlock()

	if err != nil {
		vm.logger.Warn().Err(err).Str("entry", entry).Uint64("gas_used", report.Gas.Used).Msg("aborted")
		return
	}
	vm.logger.Debug().
		Str("entry", entry).
		Stringer("outcome", report.Outcome).
		Uint64("gas_used", report.Gas.Used).
		Int("writes", report.Writes).
		Msg("completed")
}

// Metrics returns a snapshot of the VM's counters.
func (vm *VM) Metrics() Metrics {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.metrics
}
