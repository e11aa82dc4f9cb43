//go:build linux

package button

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Pins names the BCM lines for the five inputs.
type Pins struct {
	Left     int
	Right    int
	Select   int
	Back     int
	Feedback int
}

// RealSampler reads the input lines through the Linux GPIO character
// device. Buttons and the feedback optocoupler pull the line to ground
// when active, so raw 0 reads as logical true.
type RealSampler struct {
	chip  *gpiocdev.Chip
	lines [5]*gpiocdev.Line
}

// NewRealSampler requests the five input lines with pull-ups.
func NewRealSampler(pins Pins) (*RealSampler, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	s := &RealSampler{chip: chip}
	order := []struct {
		name string
		pin  int
	}{
		{"left", pins.Left},
		{"right", pins.Right},
		{"select", pins.Select},
		{"back", pins.Back},
		{"feedback", pins.Feedback},
	}
	for i, o := range order {
		l, err := chip.RequestLine(o.pin, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("request %s pin %d: %w", o.name, o.pin, err)
		}
		s.lines[i] = l
	}
	return s, nil
}

// Sample reads all lines. Raw active-low values are inverted to logical
// levels.
func (s *RealSampler) Sample() (Sample, error) {
	var vals [5]bool
	for i, l := range s.lines {
		raw, err := l.Value()
		if err != nil {
			return Sample{}, fmt.Errorf("read input line %d: %w", i, err)
		}
		vals[i] = raw == 0
	}
	return Sample{
		Left:     vals[0],
		Right:    vals[1],
		Select:   vals[2],
		Back:     vals[3],
		Feedback: vals[4],
	}, nil
}

// Close releases the lines and the chip.
func (s *RealSampler) Close() error {
	var firstErr error
	for _, l := range s.lines {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.chip != nil {
		if err := s.chip.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
