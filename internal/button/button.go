// Package button turns raw input line levels into debounced, edge-triggered
// events: one event per physical press of the four menu buttons, and one
// event per falling edge of the relay feedback line. The debouncer is a
// pure state machine with injected time; hardware access lives behind the
// Sampler interface.
package button

// Event is a single debounced input event.
type Event int

const (
	Left Event = iota
	Right
	Select
	Back
	// Feedback fires on the falling edge of the relay feedback line,
	// confirming one physical valve cycle.
	Feedback
)

func (e Event) String() string {
	switch e {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Select:
		return "Select"
	case Back:
		return "Back"
	case Feedback:
		return "Feedback"
	}
	return "Unknown"
}

// Sample is one reading of all input lines in logical form: true means
// button held / feedback asserted.
type Sample struct {
	Left     bool
	Right    bool
	Select   bool
	Back     bool
	Feedback bool
}

// Sampler reads the input lines.
type Sampler interface {
	// Sample returns the current logical line levels.
	Sample() (Sample, error)

	// Close releases input resources.
	Close() error
}
