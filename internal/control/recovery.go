package control

import "time"

// Recover reconstructs live state from the store. It must run once at
// boot, strictly before any input is handled.
//
// Channels whose persisted running flag is set are resumed with
// StartedAt = bootTime: the outage duration is deliberately not
// reconstructed, so at most one autosave interval plus the outage itself
// is lost from the accounting. A set flag on a channel calibrated to
// level 0 is ignored, since such a channel can never run.
func (c *Controller) Recover(bootTime time.Time) {
	for i := range c.channels {
		ch := &c.channels[i]
		ch.Percent = c.store.Calibration(i) // invalid cells read back as 100
		ch.Level = Level(ch.Percent)
		ch.TotalSeconds = c.store.TotalSeconds(i)

		if c.store.RunningFlag(i) && ch.Startable() {
			ch.Running = true
			ch.StartedAt = bootTime
			c.drive(i, ch.Level)
			c.rec.Record(ch.Name, "RESUME", "total="+FormatTotal(ch.TotalSeconds))
		} else {
			ch.Running = false
			c.drive(i, 0)
		}
	}

	c.relay.Count = c.store.RelayCount()
	c.relay.Blinking = c.store.BlinkFlag()
	c.relay.Phase = false
	c.relay.PhaseAt = bootTime
	c.driveRelay(false)
	if c.relay.Blinking {
		c.rec.Record("Relay", "RESUME", "count="+FormatCount(c.relay.Count))
	}
}
