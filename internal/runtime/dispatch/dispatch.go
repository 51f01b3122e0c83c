// Package dispatch runs the two entry points of a contract: Setup, which lays
// out and initializes its state once, and Invoke, which decodes one command
// and executes it against reconstructed state.
//
// Every entry point is one transaction. Cells write into a buffer that only
// reaches the host store once the entry point completed without error.
package dispatch

import (
	"fmt"

	"github.com/CosmWasm/cellvm/internal/runtime/alloc"
	"github.com/CosmWasm/cellvm/internal/runtime/db"
	"github.com/CosmWasm/cellvm/internal/runtime/gas"
	"github.com/CosmWasm/cellvm/internal/runtime/storage"
	"github.com/CosmWasm/cellvm/types"
)

// Contract binds a composite state S and its command type C.
type Contract[S storage.Flusher, C any] interface {
	// AllocateUsing assigns addresses to every cell of the state. It must not
	// read storage and must allocate in the same order on every call.
	AllocateUsing(a alloc.Allocator, backend storage.Backend) S
	// Initialize writes the starting values. Only Setup calls it.
	Initialize(state S)
	DecodeCommand(input []byte) (C, error)
	// Execute runs one command. Queries return types.Returned and must not
	// mutate; mutations return types.Committed and leave their changes in the
	// cells for the dispatcher to flush.
	Execute(state S, cmd C) (types.Outcome, error)
}

// Env is what one entry point runs against.
type Env struct {
	// Origin is where allocation starts. It must be the same for every entry
	// point of one contract instance.
	Origin    types.Address
	Store     types.KVStore
	Gas       types.GasMeter
	GasConfig types.GasConfig
}

// Result describes a completed entry point.
type Result struct {
	Outcome types.Outcome
	// Writes is the number of keys committed to the host store.
	Writes int
}

type txn struct {
	cache   *db.CacheStore
	backend storage.Backend
}

func begin(env Env) txn {
	cache := db.NewCacheStore(env.Store)
	return txn{
		cache:   cache,
		backend: gas.NewStore(cache, env.Gas, env.GasConfig),
	}
}

// commit flushes state into the buffer and the buffer into the host store.
func (t txn) commit(state storage.Flusher) (int, error) {
	if err := state.Flush(); err != nil {
		t.cache.Discard()
		return 0, err
	}
	writes := t.cache.Pending()
	if err := t.cache.Write(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return writes, nil
}

// Setup allocates the state from env.Origin, initializes it and commits it.
// It does not read the store, so prior contents at the state's addresses are
// overwritten.
func Setup[S storage.Flusher, C any](c Contract[S, C], env Env) (Result, error) {
	tx := begin(env)
	state := c.AllocateUsing(alloc.FromOrigin(env.Origin), tx.backend)
	c.Initialize(state)
	writes, err := tx.commit(state)
	if err != nil {
		return Result{}, err
	}
	return Result{Outcome: types.Committed(), Writes: writes}, nil
}

// Invoke decodes input, reconstructs the state and executes the command.
// A decode failure returns before any cell exists. Any error returned leaves
// the host store untouched.
func Invoke[S storage.Flusher, C any](c Contract[S, C], env Env, input []byte) (Result, error) {
	cmd, err := c.DecodeCommand(input)
	if err != nil {
		return Result{}, err
	}

	tx := begin(env)
	state := c.AllocateUsing(alloc.FromOrigin(env.Origin), tx.backend)
	out, err := c.Execute(state, cmd)
	if err != nil {
		return Result{}, err
	}

	switch out.Kind {
	case types.OutcomeReturned:
		return Result{Outcome: out}, nil
	case types.OutcomeCommitted:
		writes, err := tx.commit(state)
		if err != nil {
			return Result{}, err
		}
		return Result{Outcome: out, Writes: writes}, nil
	default:
		return Result{}, fmt.Errorf("unknown outcome kind %d", out.Kind)
	}
}

// Program is a Contract with its type parameters erased, so callers can hold
// contracts of different state types side by side.
type Program interface {
	Setup(env Env) (Result, error)
	Invoke(env Env, input []byte) (Result, error)
}

type program[S storage.Flusher, C any] struct {
	contract Contract[S, C]
}

// Bind turns c into a Program.
func Bind[S storage.Flusher, C any](c Contract[S, C]) Program {
	return program[S, C]{contract: c}
}

func (p program[S, C]) Setup(env Env) (Result, error) {
	return Setup(p.contract, env)
}

func (p program[S, C]) Invoke(env Env, input []byte) (Result, error) {
	return Invoke(p.contract, env, input)
}
