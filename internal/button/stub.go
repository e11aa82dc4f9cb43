//go:build !linux

package button

import "errors"

// Pins names the BCM lines for the five inputs.
type Pins struct {
	Left     int
	Right    int
	Select   int
	Back     int
	Feedback int
}

// RealSampler is not available on non-Linux platforms.
type RealSampler struct{}

// NewRealSampler returns an error on non-Linux platforms.
func NewRealSampler(Pins) (*RealSampler, error) {
	return nil, errors.New("button: gpio input requires Linux")
}

func (s *RealSampler) Sample() (Sample, error) {
	return Sample{}, errors.New("button: not supported")
}

func (s *RealSampler) Close() error { return nil }
