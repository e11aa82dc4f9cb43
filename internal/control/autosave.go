package control

import "time"

// Autosave re-synchronizes accumulated runtime to the store. For every
// running channel the candidate total (committed total plus the floor of
// the current segment's elapsed seconds) is compared against the stored
// value and written only when different, with a log line on write. The
// live total is untouched; it is only folded in at StopChannel.
//
// Independently of the totals, every running flag and the blink flag are
// rewritten on every sweep. That makes the flags self-healing against a
// single missed or corrupted write, but does not close the stop-ordering
// window described at StopChannel.
func (c *Controller) Autosave(now time.Time) {
	for i := range c.channels {
		ch := &c.channels[i]
		if ch.Running && ch.Startable() {
			candidate := ch.TotalSeconds + uint32(now.Sub(ch.StartedAt)/time.Second)
			if candidate != c.store.TotalSeconds(i) {
				c.persist(c.store.SetTotalSeconds(i, candidate))
				c.rec.Record(ch.Name, "AUTOSAVE", "total="+FormatTotal(candidate))
			}
		}
		c.persist(c.store.SetRunningFlag(i, ch.Running))
	}
	c.persist(c.store.SetBlinkFlag(c.relay.Blinking))
}
