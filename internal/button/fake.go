package button

// FakeSampler returns scripted samples. Once the script is exhausted the
// last sample repeats, which models lines holding their level.
type FakeSampler struct {
	Samples []Sample
	index   int

	// SampleError, if set, is returned by Sample.
	SampleError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakeSampler creates a FakeSampler with the given script. An empty
// script reads as all lines released.
func NewFakeSampler(samples []Sample) *FakeSampler {
	return &FakeSampler{Samples: samples}
}

func (f *FakeSampler) Sample() (Sample, error) {
	if f.SampleError != nil {
		return Sample{}, f.SampleError
	}
	if len(f.Samples) == 0 {
		return Sample{}, nil
	}
	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s, nil
}

func (f *FakeSampler) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the script.
func (f *FakeSampler) Reset() {
	f.index = 0
	f.Closed = false
}
