package cellvm

import (
	"github.com/shamaton/msgpack/v2"

	"github.com/CosmWasm/cellvm/internal/runtime/dispatch"
	"github.com/CosmWasm/cellvm/types"
)

// Metrics counts the entry points a VM ran.
type Metrics struct {
	Setups      uint32 `msgpack:"setups"`
	Invocations uint32 `msgpack:"invocations"`
	// Queries and Commits split the successful invocations by outcome.
	Queries uint32 `msgpack:"queries"`
	Commits uint32 `msgpack:"commits"`
	Aborts  uint32 `msgpack:"aborts"`
	// Cumulative gas of all entry points, aborted ones included
	GasUsed uint64 `msgpack:"gas_used"`
	// Cumulative number of keys written
	Writes uint64 `msgpack:"writes"`
}

func (m *Metrics) add(entry string, res dispatch.Result, report Report, err error) {
	switch entry {
	case "setup":
		m.Setups++
	default:
		m.Invocations++
	}
	m.GasUsed += report.Gas.Used
	if err != nil {
		m.Aborts++
		return
	}
	m.Writes += uint64(res.Writes)
	if entry != "setup" {
		if res.Outcome.Kind == types.OutcomeReturned {
			m.Queries++
		} else {
			m.Commits++
		}
	}
}

// MarshalMessagePack encodes the metrics as a msgpack array.
func (m Metrics) MarshalMessagePack() ([]byte, error) {
	return msgpack.MarshalAsArray(m)
}

// UnmarshalMessagePack decodes metrics written by MarshalMessagePack.
func (m *Metrics) UnmarshalMessagePack(data []byte) error {
	return msgpack.UnmarshalAsArray(data, m)
}
