// Package gas meters storage access of one invocation.
package gas

import (
	"math"

	"github.com/CosmWasm/cellvm/types"
)

// State tracks gas consumption against a limit.
type State struct {
	limit uint64
	used  uint64
}

var _ types.GasMeter = (*State)(nil)

// NewState creates a new State with the given limit
func NewState(limit uint64) *State {
	return &State{
		limit: limit,
	}
}

// Infinite creates a State that never runs out.
func Infinite() *State {
	return NewState(math.MaxUint64)
}

// GasConsumed implements types.GasMeter
func (g *State) GasConsumed() uint64 {
	return g.used
}

// GasLimit implements types.GasMeter
func (g *State) GasLimit() uint64 {
	return g.limit
}

// Remaining returns the amount of gas left
func (g *State) Remaining() uint64 {
	if g.used >= g.limit {
		return 0
	}
	return g.limit - g.used
}

// ConsumeGas implements types.GasMeter. A failed charge consumes the rest of
// the limit, so the meter stays exhausted.
func (g *State) ConsumeGas(amount uint64, descriptor string) error {
	if amount > g.Remaining() {
		err := &types.OutOfGasError{
			Descriptor: descriptor,
			Wanted:     amount,
			Available:  g.Remaining(),
		}
		g.used = g.limit
		return err
	}
	g.used += amount
	return nil
}
