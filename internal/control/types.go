// Package control is the pump/relay control engine: the activation state
// machine, its persistent accounting, the periodic autosave sweep, and the
// boot-time recovery that reconstructs running state from the store.
//
// The package is single-threaded by contract: all methods are called from
// the one control loop and never concurrently. Time is always injected as
// a parameter; nothing in here calls time.Now.
package control

import (
	"time"

	"github.com/sweeney/doser-control/internal/nvstore"
)

// NumChannels is the number of pump channels on the rig.
const NumChannels = nvstore.NumChannels

// AutosaveInterval is the period of the accounting re-sync sweep.
const AutosaveInterval = 10 * time.Second

// BlinkInterval is the relay phase alternation period while blinking.
const BlinkInterval = 500 * time.Millisecond

// PumpChannel is the live state of one pump output.
type PumpChannel struct {
	Name    string
	Percent uint8 // calibration, 0–100 in steps of 10
	Level   uint8 // derived 0–255 drive level
	Running bool

	// StartedAt is only meaningful while Running. After a power-loss
	// resume it holds boot time, not the true pre-outage start.
	StartedAt time.Time

	// TotalSeconds is cumulative run time, monotonic except ClearTotals.
	TotalSeconds uint32
}

// Startable reports whether the channel may be started at all. A channel
// calibrated to level 0 can never run.
func (p PumpChannel) Startable() bool { return p.Level > 0 }

// Relay is the live state of the relay/valve pair.
type Relay struct {
	Blinking bool

	// Count increments on every commanded toggle and on every external
	// feedback pulse; both paths share this counter and its store slot.
	Count uint32

	// Phase alternates at BlinkInterval while Blinking; the output follows
	// it. PhaseAt is the instant of the last flip (or blink entry).
	Phase   bool
	PhaseAt time.Time
}
