// Package output drives the physical pump and relay outputs. Pumps take a
// 0–255 drive level (0 = off), the relay is a plain digital line. The real
// implementation uses periph.io PWM pins; the fake records writes for
// tests.
package output

// Driver writes pump levels and the relay line to hardware.
type Driver interface {
	// SetLevel drives pump channel ch at the given level. Level 0 stops
	// the pump output entirely.
	SetLevel(ch int, level uint8) error

	// SetRelay drives the relay line.
	SetRelay(on bool) error

	// Close releases hardware resources, leaving all outputs low.
	Close() error
}
