package control

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sweeney/doser-control/internal/nvstore"
	"github.com/sweeney/doser-control/internal/output"
)

// Recorder receives diagnostic event records. Parts are joined with commas
// by the sink; accounting never depends on a record arriving.
type Recorder interface {
	Record(parts ...string)
}

// Controller owns all live rig state: the four pump channels and the
// relay. It is the sole mutator of that state and of the store.
type Controller struct {
	channels [NumChannels]PumpChannel
	relay    Relay

	store nvstore.Store
	out   output.Driver
	rec   Recorder

	// Warnf, when set, receives diagnostics about failed store and output
	// writes. Failures are never retried or surfaced to control flow; the
	// store is assumed lossy at this level.
	Warnf func(format string, args ...any)
}

// New wires a controller to its store, outputs and event recorder. Call
// Recover before handling any input.
func New(store nvstore.Store, out output.Driver, rec Recorder) *Controller {
	c := &Controller{store: store, out: out, rec: rec}
	for i := range c.channels {
		c.channels[i].Name = fmt.Sprintf("Pump%d", i+1)
	}
	return c
}

// Channel returns a copy of a channel's live state.
func (c *Controller) Channel(idx int) PumpChannel { return c.channels[idx] }

// RelayState returns a copy of the relay's live state.
func (c *Controller) RelayState() Relay { return c.relay }

// StartChannel activates a pump channel. It is a no-op for a channel that
// is already running or calibrated to level 0.
func (c *Controller) StartChannel(idx int, now time.Time) {
	ch := &c.channels[idx]
	if ch.Running || !ch.Startable() {
		return
	}
	c.drive(idx, ch.Level)
	ch.Running = true
	ch.StartedAt = now
	c.persist(c.store.SetRunningFlag(idx, true))
	c.rec.Record(ch.Name, "ON")
}

// StopChannel deactivates a pump channel and folds the elapsed run time
// into the cumulative total. No-op if the channel is not running.
//
// The new total is written before the running flag is cleared. A crash
// between the two writes leaves the flag set, so the next boot resumes the
// channel and the already-recorded final segment is counted again. That
// window is inherited behavior; closing it needs a versioned combined
// record (see DESIGN.md) and is deliberately not done here.
func (c *Controller) StopChannel(idx int, now time.Time) {
	ch := &c.channels[idx]
	if !ch.Running {
		return
	}
	c.drive(idx, 0)
	elapsed := uint32(now.Sub(ch.StartedAt) / time.Second)
	ch.TotalSeconds += elapsed
	c.persist(c.store.SetTotalSeconds(idx, ch.TotalSeconds))
	ch.Running = false
	c.persist(c.store.SetRunningFlag(idx, false))
	c.rec.Record(ch.Name, "OFF",
		"run="+strconv.FormatUint(uint64(elapsed), 10)+"s",
		"total="+FormatTotal(ch.TotalSeconds))
}

// ToggleChannel starts a stopped channel and stops a running one.
func (c *Controller) ToggleChannel(idx int, now time.Time) {
	if c.channels[idx].Running {
		c.StopChannel(idx, now)
	} else {
		c.StartChannel(idx, now)
	}
}

// ToggleAll is the single logical on/off switch over the whole startable
// set: if any startable channel is stopped the set is driven fully on,
// otherwise fully off. The relay toggles once either way.
func (c *Controller) ToggleAll(now time.Time) {
	anyOff := false
	for i := range c.channels {
		if c.channels[i].Startable() && !c.channels[i].Running {
			anyOff = true
			break
		}
	}
	if anyOff {
		for i := range c.channels {
			c.StartChannel(i, now)
		}
	} else {
		for i := range c.channels {
			c.StopChannel(i, now)
		}
	}
	c.ToggleRelay(now)
}

// ToggleRelay flips blink mode. Entering blink re-arms the phase timer
// with the output low at t=0; leaving forces the output low. The toggle
// count increments and persists unconditionally on every call.
func (c *Controller) ToggleRelay(now time.Time) {
	r := &c.relay
	r.Blinking = !r.Blinking
	r.Phase = false
	r.PhaseAt = now
	c.driveRelay(false)
	r.Count++
	c.persist(c.store.SetRelayCount(r.Count))
	c.persist(c.store.SetBlinkFlag(r.Blinking))
	state := "OFF"
	if r.Blinking {
		state = "ON"
	}
	c.rec.Record("Relay", state, "count="+FormatCount(r.Count))
}

// FeedbackPulse records one observed valve cycle from the external
// feedback line. It shares the toggle counter and its store slot with
// commanded toggles.
func (c *Controller) FeedbackPulse() {
	c.relay.Count++
	c.persist(c.store.SetRelayCount(c.relay.Count))
	c.rec.Record("Relay", "PULSE", "count="+FormatCount(c.relay.Count))
}

// SetCalibration applies a new calibration percent live: the derived level
// is recomputed immediately and re-driven if the channel is running. The
// value is not persisted until CommitCalibration.
func (c *Controller) SetCalibration(idx int, percent uint8) {
	if percent > 100 {
		percent = 100
	}
	ch := &c.channels[idx]
	ch.Percent = percent
	ch.Level = Level(percent)
	if ch.Running {
		c.drive(idx, ch.Level)
	}
}

// CommitCalibration writes a channel's calibration percent to the store.
func (c *Controller) CommitCalibration(idx int) {
	c.persist(c.store.SetCalibration(idx, c.channels[idx].Percent))
}

// ClearTotals zeroes every channel's cumulative total and the relay
// toggle count, live and persisted. Slots are written in turn with no
// rollback on partial failure.
func (c *Controller) ClearTotals() {
	for i := range c.channels {
		c.channels[i].TotalSeconds = 0
		c.persist(c.store.SetTotalSeconds(i, 0))
	}
	c.relay.Count = 0
	c.persist(c.store.SetRelayCount(0))
	c.rec.Record("Rig", "CLEAR")
}

// UpdateBlink advances the relay phase while blinking. Called every loop
// iteration; does nothing until BlinkInterval has elapsed since the last
// flip.
func (c *Controller) UpdateBlink(now time.Time) {
	r := &c.relay
	if !r.Blinking {
		return
	}
	if now.Sub(r.PhaseAt) < BlinkInterval {
		return
	}
	r.Phase = !r.Phase
	r.PhaseAt = now
	c.driveRelay(r.Phase)
}

// FormatTotal renders a cumulative-seconds value for log lines and the
// display, e.g. "5m12s".
func FormatTotal(secs uint32) string {
	return (time.Duration(secs) * time.Second).String()
}

// FormatCount renders a toggle count for log lines and the display.
func FormatCount(n uint32) string {
	return strconv.FormatUint(uint64(n), 10)
}

func (c *Controller) drive(idx int, level uint8) {
	if err := c.out.SetLevel(idx, level); err != nil {
		c.warnf("drive %s level %d: %v", c.channels[idx].Name, level, err)
	}
}

func (c *Controller) driveRelay(on bool) {
	if err := c.out.SetRelay(on); err != nil {
		c.warnf("drive relay %v: %v", on, err)
	}
}

// persist is the single funnel for store write results. Failures are
// logged and otherwise ignored: the hardware class this models cannot
// detect them either.
func (c *Controller) persist(err error) {
	if err != nil {
		c.warnf("store write: %v", err)
	}
}

func (c *Controller) warnf(format string, args ...any) {
	if c.Warnf != nil {
		c.Warnf(format, args...)
	}
}
