package gas

import (
	"math"
	"math/bits"

	"github.com/CosmWasm/cellvm/types"
)

const (
	descRead  = "storage read"
	descWrite = "storage write"
)

// Store charges gas for every access to the wrapped KVStore.
// It satisfies storage.Backend.
type Store struct {
	kv     types.KVStore
	meter  types.GasMeter
	config types.GasConfig
}

// NewStore wraps kv, charging meter according to config.
func NewStore(kv types.KVStore, meter types.GasMeter, config types.GasConfig) *Store {
	return &Store{
		kv:     kv,
		meter:  meter,
		config: config,
	}
}

// Read charges the flat read cost up front and the per byte cost once the
// value is known.
func (s *Store) Read(addr types.Address) ([]byte, error) {
	if err := s.charge(s.config.ReadCostFlat, 0, 0, descRead); err != nil {
		return nil, err
	}
	value := s.kv.Get(addr.Bytes())
	if err := s.charge(0, s.config.ReadCostPerByte, len(value), descRead); err != nil {
		return nil, err
	}
	return value, nil
}

// Write charges before writing; a write that cannot be paid for is not performed.
func (s *Store) Write(addr types.Address, value []byte) error {
	if err := s.charge(s.config.WriteCostFlat, s.config.WriteCostPerByte, len(value), descWrite); err != nil {
		return err
	}
	s.kv.Set(addr.Bytes(), value)
	return nil
}

// charge consumes flat + perByte*n. A cost that does not fit in a uint64 is
// out of gas for any meter; the meter is exhausted.
func (s *Store) charge(flat, perByte uint64, n int, descriptor string) error {
	hi, product := bits.Mul64(perByte, uint64(n))
	amount, carry := bits.Add64(flat, product, 0)
	if hi != 0 || carry != 0 {
		available := s.meter.GasLimit() - s.meter.GasConsumed()
		_ = s.meter.ConsumeGas(available, descriptor)
		return &types.OutOfGasError{
			Descriptor: descriptor,
			Wanted:     math.MaxUint64,
			Available:  available,
		}
	}
	return s.meter.ConsumeGas(amount, descriptor)
}
