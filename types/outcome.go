package types

// OutcomeKind tags how an entry point terminated.
type OutcomeKind int

const (
	// OutcomeCommitted means mutated cells were committed and control returned normally.
	OutcomeCommitted OutcomeKind = iota
	// OutcomeReturned means a result was emitted and the invocation terminated without commit.
	OutcomeReturned
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCommitted:
		return "committed"
	case OutcomeReturned:
		return "returned"
	default:
		return "unknown"
	}
}

// Outcome is the result of one successful entry point.
// Data is only set for OutcomeReturned and holds the encoded result.
type Outcome struct {
	Kind OutcomeKind
	Data []byte
}

// Committed creates the outcome of a mutating command.
func Committed() Outcome {
	return Outcome{Kind: OutcomeCommitted}
}

// Returned creates the outcome of a query: data is handed to the host, nothing is committed.
func Returned(data []byte) Outcome {
	return Outcome{Kind: OutcomeReturned, Data: data}
}

// Host is the side channel between the runtime and its caller.
type Host interface {
	// Input returns the raw input buffer of the current invocation.
	Input() []byte
	// Return emits the encoded result of the invocation. No further code of the
	// invocation runs after it.
	Return(data []byte)
}
