// Package nvstore persists rig accounting state in an address-mapped slot
// store. Each slot is written independently and synchronously; a write is
// atomic within its own slot but the store gives no atomicity across slots.
// The control engine treats write failures as fire-and-forget, so the
// interface deliberately makes reads infallible: a slot that is missing,
// unreadable, or holds garbage reads back as its documented default.
package nvstore

// NumChannels is the number of pump channel slots in the address map.
const NumChannels = 4

// DefaultCalibration substitutes for calibration slots outside [0,100],
// including erased or never-written cells.
const DefaultCalibration = 100

// Store is the slot-level interface over non-volatile storage.
//
// Slots: calibration[4], totalSeconds[4], runningFlag[4], relayCount,
// blinkFlag. Channel indexes outside [0,NumChannels) are a programming
// error and may panic.
type Store interface {
	// Calibration returns the persisted calibration percent for a channel.
	// Out-of-range and missing values read as DefaultCalibration.
	Calibration(ch int) uint8
	SetCalibration(ch int, percent uint8) error

	// TotalSeconds returns the persisted cumulative run time for a channel.
	// Missing values read as 0.
	TotalSeconds(ch int) uint32
	SetTotalSeconds(ch int, secs uint32) error

	// RunningFlag reports whether a channel was active at the last flag
	// write. Missing values read as false.
	RunningFlag(ch int) bool
	SetRunningFlag(ch int, on bool) error

	RelayCount() uint32
	SetRelayCount(n uint32) error

	BlinkFlag() bool
	SetBlinkFlag(on bool) error

	Close() error
}

// clampCalibration applies the erased-cell/garbage rule shared by all
// implementations.
func clampCalibration(v uint8, ok bool) uint8 {
	if !ok || v > 100 {
		return DefaultCalibration
	}
	return v
}

func checkChannel(ch int) {
	if ch < 0 || ch >= NumChannels {
		panic("nvstore: channel index out of range")
	}
}
