package nvstore

import "fmt"

// Fake is an in-memory Store for tests. It records the order of slot
// writes so tests can assert write sequencing, and counts writes per slot
// so tests can assert the autosave skip-equal-write rule.
type Fake struct {
	// Cals holds raw calibration bytes. Values above 100 simulate erased
	// or corrupted cells.
	Cals   map[int]uint8
	Totals map[int]uint32
	Flags  map[int]bool
	Count  uint32
	Blink  bool

	// Ops is the ordered list of slot names written, e.g. "total2", "run2".
	Ops []string

	// Writes counts writes per slot name.
	Writes map[string]int

	// WriteError, if set, is returned by every Set* call. Writes are still
	// recorded, mirroring hardware that fails silently.
	WriteError error
}

// NewFake creates an empty Fake, equivalent to a factory-fresh store.
func NewFake() *Fake {
	return &Fake{
		Cals:   make(map[int]uint8),
		Totals: make(map[int]uint32),
		Flags:  make(map[int]bool),
		Writes: make(map[string]int),
	}
}

func (f *Fake) wrote(slot string) {
	f.Ops = append(f.Ops, slot)
	f.Writes[slot]++
}

func (f *Fake) Calibration(ch int) uint8 {
	checkChannel(ch)
	v, ok := f.Cals[ch]
	return clampCalibration(v, ok)
}

func (f *Fake) SetCalibration(ch int, percent uint8) error {
	checkChannel(ch)
	f.wrote(fmt.Sprintf("cal%d", ch))
	f.Cals[ch] = percent
	return f.WriteError
}

func (f *Fake) TotalSeconds(ch int) uint32 {
	checkChannel(ch)
	return f.Totals[ch]
}

func (f *Fake) SetTotalSeconds(ch int, secs uint32) error {
	checkChannel(ch)
	f.wrote(fmt.Sprintf("total%d", ch))
	f.Totals[ch] = secs
	return f.WriteError
}

func (f *Fake) RunningFlag(ch int) bool {
	checkChannel(ch)
	return f.Flags[ch]
}

func (f *Fake) SetRunningFlag(ch int, on bool) error {
	checkChannel(ch)
	f.wrote(fmt.Sprintf("run%d", ch))
	f.Flags[ch] = on
	return f.WriteError
}

func (f *Fake) RelayCount() uint32 { return f.Count }

func (f *Fake) SetRelayCount(n uint32) error {
	f.wrote("relay_count")
	f.Count = n
	return f.WriteError
}

func (f *Fake) BlinkFlag() bool { return f.Blink }

func (f *Fake) SetBlinkFlag(on bool) error {
	f.wrote("blink")
	f.Blink = on
	return f.WriteError
}

func (f *Fake) Close() error { return nil }
