package eventlog

// FakeSink records flushed batches for test assertions.
type FakeSink struct {
	// Batches holds each Append call's lines.
	Batches [][]string

	// AppendError, if set, is returned by Append. Lines are still
	// recorded.
	AppendError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeSink creates an empty FakeSink.
func NewFakeSink() *FakeSink {
	return &FakeSink{}
}

func (f *FakeSink) Append(lines []string) error {
	batch := make([]string, len(lines))
	copy(batch, lines)
	f.Batches = append(f.Batches, batch)
	return f.AppendError
}

func (f *FakeSink) Close() error {
	f.Closed = true
	return nil
}

// Lines returns all recorded lines across batches, in order.
func (f *FakeSink) Lines() []string {
	var out []string
	for _, b := range f.Batches {
		out = append(out, b...)
	}
	return out
}
