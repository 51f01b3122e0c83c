package types

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is returned for malformed or truncated input buffers.
	ErrDecode = errors.New("decode failure")
	// ErrCorruptStorage is returned when the bytes stored at an address cannot be decoded.
	ErrCorruptStorage = errors.New("corrupt storage")
	// ErrMissingValue is returned when a cell is read but nothing was ever committed at its address.
	ErrMissingValue = errors.New("no value at address")
)

// DecodeError describes a failure to decode an input buffer into Target.
type DecodeError struct {
	Target string
	Msg    string
}

var _ error = (*DecodeError)(nil)

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s: %s", e.Target, e.Msg)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// NewDecodeError creates a DecodeError for target.
func NewDecodeError(target string, format string, args ...any) *DecodeError {
	return &DecodeError{Target: target, Msg: fmt.Sprintf(format, args...)}
}

// StorageError ties a storage failure to the address it happened at.
type StorageError struct {
	Address Address
	Err     error
}

var _ error = (*StorageError)(nil)

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage at %s: %v", e.Address, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// OutOfGasError is returned once an invocation consumed more gas than its limit.
type OutOfGasError struct {
	Descriptor string
	Wanted     Gas
	Available  Gas
}

var _ error = (*OutOfGasError)(nil)

func (e *OutOfGasError) Error() string {
	return fmt.Sprintf("out of gas in %s: required %d, but only %d available", e.Descriptor, e.Wanted, e.Available)
}
