package cellvm

// BufferHost is a Host backed by byte slices.
type BufferHost struct {
	In []byte
	// Out holds the data passed to Return.
	Out      []byte
	Returned bool
}

var _ Host = (*BufferHost)(nil)

// NewBufferHost creates a host whose input is in.
func NewBufferHost(in []byte) *BufferHost {
	return &BufferHost{In: in}
}

func (h *BufferHost) Input() []byte {
	return h.In
}

func (h *BufferHost) Return(data []byte) {
	h.Out = data
	h.Returned = true
}
