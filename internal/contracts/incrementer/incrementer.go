// Package incrementer is a contract holding one uint32 that can only be
// incremented and read.
package incrementer

import (
	"fmt"

	"github.com/CosmWasm/cellvm/internal/runtime/alloc"
	"github.com/CosmWasm/cellvm/internal/runtime/codec"
	"github.com/CosmWasm/cellvm/internal/runtime/dispatch"
	"github.com/CosmWasm/cellvm/internal/runtime/storage"
	"github.com/CosmWasm/cellvm/types"
)

// Incrementer is the contract state.
type Incrementer struct {
	current *storage.Cell[uint32]
}

// Args are the setup arguments. The incrementer takes none.
type Args struct{}

var (
	_ storage.AllocateFunc[*Incrementer] = AllocateUsing
	_ storage.Initializer[Args]          = (*Incrementer)(nil)
	_ storage.Flusher                    = (*Incrementer)(nil)
)

// AllocateUsing lays the state out starting at the allocator's cursor.
func AllocateUsing(a alloc.Allocator, backend storage.Backend) *Incrementer {
	return &Incrementer{
		current: storage.Allocate[uint32](a, backend, codec.U32{}),
	}
}

// Initialize starts the counter at zero.
func (i *Incrementer) Initialize(Args) {
	i.current.Set(0)
}

// Flush commits the counter if it changed.
func (i *Incrementer) Flush() error {
	return i.current.Flush()
}

// Inc adds by to the current value, wrapping on overflow.
func (i *Incrementer) Inc(by uint32) error {
	return i.current.Mutate(func(v uint32) uint32 {
		return v + by
	})
}

// Get returns the current value.
func (i *Incrementer) Get() (uint32, error) {
	return i.current.Get()
}

// Address returns where the counter is stored.
func (i *Incrementer) Address() types.Address {
	return i.current.Address()
}

// Contract dispatches Actions to an Incrementer.
type Contract struct{}

var _ dispatch.Contract[*Incrementer, Action] = Contract{}

// Program returns the incrementer bound to the dispatcher.
func Program() dispatch.Program {
	return dispatch.Bind[*Incrementer, Action](Contract{})
}

func (Contract) AllocateUsing(a alloc.Allocator, backend storage.Backend) *Incrementer {
	return AllocateUsing(a, backend)
}

func (Contract) Initialize(state *Incrementer) {
	state.Initialize(Args{})
}

func (Contract) DecodeCommand(input []byte) (Action, error) {
	return DecodeAction(input)
}

func (Contract) Execute(state *Incrementer, action Action) (types.Outcome, error) {
	switch action.Kind {
	case ActionGet:
		v, err := state.Get()
		if err != nil {
			return types.Outcome{}, err
		}
		return types.Returned(codec.U32{}.Encode(v)), nil
	case ActionInc:
		if err := state.Inc(action.By); err != nil {
			return types.Outcome{}, err
		}
		return types.Committed(), nil
	default:
		return types.Outcome{}, fmt.Errorf("unhandled action %s", action.Kind)
	}
}
