package incrementer

import (
	"fmt"

	"github.com/CosmWasm/cellvm/internal/runtime/codec"
	"github.com/CosmWasm/cellvm/types"
)

// ActionKind is the discriminant byte of an encoded Action.
type ActionKind byte

const (
	// ActionGet queries the current value. It has no payload.
	ActionGet ActionKind = 0
	// ActionInc adds a uint32 to the current value.
	ActionInc ActionKind = 1
)

func (k ActionKind) String() string {
	switch k {
	case ActionGet:
		return "get"
	case ActionInc:
		return "inc"
	default:
		return fmt.Sprintf("ActionKind(%d)", byte(k))
	}
}

// Action is one decoded command. By is only meaningful for ActionInc.
type Action struct {
	Kind ActionKind
	By   uint32
}

// Get creates a get action.
func Get() Action {
	return Action{Kind: ActionGet}
}

// Inc creates an inc action.
func Inc(by uint32) Action {
	return Action{Kind: ActionInc, By: by}
}

// Encode returns the wire form: the kind byte followed by the payload.
func (a Action) Encode() []byte {
	bz := []byte{byte(a.Kind)}
	if a.Kind == ActionInc {
		bz = append(bz, codec.U32{}.Encode(a.By)...)
	}
	return bz
}

// DecodeAction parses an encoded Action. Bytes after a complete action are ignored.
func DecodeAction(bz []byte) (Action, error) {
	r := codec.NewReader("action", bz)
	tag, err := r.ReadByte()
	if err != nil {
		return Action{}, err
	}
	switch ActionKind(tag) {
	case ActionGet:
		return Get(), nil
	case ActionInc:
		by, err := r.ReadU32()
		if err != nil {
			return Action{}, err
		}
		return Inc(by), nil
	default:
		return Action{}, types.NewDecodeError("action", "unknown discriminant %d", tag)
	}
}
