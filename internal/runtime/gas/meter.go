package gas

// Report contains information about gas usage
type Report struct {
	Limit     uint64 `json:"limit"`
	Remaining uint64 `json:"remaining"`
	Used      uint64 `json:"used"`
}

// NewReport summarises the current state of g.
func NewReport(g *State) Report {
	return Report{
		Limit:     g.GasLimit(),
		Remaining: g.Remaining(),
		Used:      g.GasConsumed(),
	}
}
