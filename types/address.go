package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// AddressLen is the length of a storage address in bytes.
const AddressLen = 32

// Address locates one value in the key space of the host store.
// Addresses are handed out by an allocator; there is no arithmetic on the type itself.
type Address [AddressLen]byte

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns the address as a byte slice, suitable as a store key.
func (a Address) Bytes() []byte {
	return a[:]
}

// MarshalJSON implements the json.Marshaler interface for Address.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface for Address.
func (a *Address) UnmarshalJSON(input []byte) error {
	var hexString string
	if err := json.Unmarshal(input, &hexString); err != nil {
		return err
	}
	addr, err := ParseAddress(hexString)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// NewAddress creates an Address from a byte slice.
// Returns an error if the slice length is not AddressLen.
func NewAddress(b []byte) (Address, error) {
	if len(b) != AddressLen {
		return Address{}, errors.New("got wrong number of bytes for address")
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

// ParseAddress parses a hex encoded address, with or without a 0x prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	data, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return NewAddress(data)
}

// ForceNewAddress creates an Address from a hex string.
// It panics in case the input is invalid.
func ForceNewAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}
