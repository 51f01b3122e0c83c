package types

// Gas represents the amount of computational resources consumed during execution.
type Gas = uint64

// GasMeter tracks gas consumption of one invocation.
type GasMeter interface {
	GasConsumed() Gas
	GasLimit() Gas
	// ConsumeGas charges amount and returns an *OutOfGasError once the limit is exceeded.
	ConsumeGas(amount Gas, descriptor string) error
}

// GasConfig holds the storage gas costs. Cells only read and write, so
// there is no delete cost.
type GasConfig struct {
	ReadCostFlat     Gas
	ReadCostPerByte  Gas
	WriteCostFlat    Gas
	WriteCostPerByte Gas
}

// DefaultGasConfig returns the costs used when nothing else is configured.
func DefaultGasConfig() GasConfig {
	return GasConfig{
		ReadCostFlat:     1000,
		ReadCostPerByte:  3,
		WriteCostFlat:    2000,
		WriteCostPerByte: 30,
	}
}
