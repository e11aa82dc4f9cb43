package eventlog

// MultiSink fans batches out to several sinks. Every sink sees every
// batch; the first error is reported after all sinks have been tried.
type MultiSink []Sink

func (m MultiSink) Append(lines []string) error {
	var firstErr error
	for _, s := range m {
		if err := s.Append(lines); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m MultiSink) Close() error {
	var firstErr error
	for _, s := range m {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
