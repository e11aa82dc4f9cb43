package display

// Frame is one displayed line pair.
type Frame struct {
	Line1 string
	Line2 string
}

// FakeDisplay records shown frames for test assertions.
type FakeDisplay struct {
	Frames []Frame

	// ShowError, if set, is returned by Show.
	ShowError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeDisplay creates an empty FakeDisplay.
func NewFakeDisplay() *FakeDisplay {
	return &FakeDisplay{}
}

func (f *FakeDisplay) Show(line1, line2 string) error {
	f.Frames = append(f.Frames, Frame{Line1: line1, Line2: line2})
	return f.ShowError
}

func (f *FakeDisplay) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently shown frame, or a zero Frame.
func (f *FakeDisplay) Last() Frame {
	if len(f.Frames) == 0 {
		return Frame{}
	}
	return f.Frames[len(f.Frames)-1]
}
