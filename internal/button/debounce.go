package button

import "time"

// DefaultDebounce suits the tactile switches and optocoupler on the rig.
const DefaultDebounce = 30 * time.Millisecond

// line tracks debounce state for one input line. All lines start stable
// in the released/low state.
type line struct {
	stable     bool
	pending    bool
	hasPending bool
	pendingAt  time.Time
}

// step feeds one raw sample into the line and reports a completed stable
// transition as (rose, fell).
func (l *line) step(raw bool, now time.Time, debounce time.Duration) (rose, fell bool) {
	if raw == l.stable {
		l.hasPending = false
		return false, false
	}
	if !l.hasPending || l.pending != raw {
		l.pending = raw
		l.hasPending = true
		l.pendingAt = now
		return false, false
	}
	if now.Sub(l.pendingAt) < debounce {
		return false, false
	}
	l.stable = raw
	l.hasPending = false
	return raw, !raw
}

// Debouncer converts raw samples into events. Buttons fire on the rising
// (press) edge only; the feedback line fires on the falling edge only, so
// no event is ever delivered twice for one physical actuation.
type Debouncer struct {
	debounce time.Duration
	lines    [5]line
}

// NewDebouncer creates a Debouncer with the given debounce duration.
func NewDebouncer(debounce time.Duration) *Debouncer {
	return &Debouncer{debounce: debounce}
}

// Process feeds one sample and returns the events it completed, in the
// fixed order Left, Right, Select, Back, Feedback.
func (d *Debouncer) Process(s Sample, now time.Time) []Event {
	raw := [5]bool{s.Left, s.Right, s.Select, s.Back, s.Feedback}

	var events []Event
	for i := range d.lines {
		rose, fell := d.lines[i].step(raw[i], now, d.debounce)
		ev := Event(i)
		if ev == Feedback {
			if fell {
				events = append(events, ev)
			}
		} else if rose {
			events = append(events, ev)
		}
	}
	return events
}
