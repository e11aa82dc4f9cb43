package output

// LevelWrite records one SetLevel call.
type LevelWrite struct {
	Ch    int
	Level uint8
}

// FakeDriver records output writes for test assertions.
type FakeDriver struct {
	// Levels holds the last level written per channel.
	Levels [4]uint8

	// Relay holds the last relay state written.
	Relay bool

	// LevelWrites and RelayWrites record every call in order.
	LevelWrites []LevelWrite
	RelayWrites []bool

	// SetError, if set, is returned by SetLevel and SetRelay.
	SetError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeDriver creates a FakeDriver with all outputs low.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{}
}

func (f *FakeDriver) SetLevel(ch int, level uint8) error {
	f.LevelWrites = append(f.LevelWrites, LevelWrite{Ch: ch, Level: level})
	if ch >= 0 && ch < len(f.Levels) {
		f.Levels[ch] = level
	}
	return f.SetError
}

func (f *FakeDriver) SetRelay(on bool) error {
	f.RelayWrites = append(f.RelayWrites, on)
	f.Relay = on
	return f.SetError
}

func (f *FakeDriver) Close() error {
	f.Closed = true
	return nil
}
