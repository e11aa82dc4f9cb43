package eventlog

import (
	"fmt"
	"os"
)

// FileSink appends log lines to a file, syncing after every batch so a
// flushed batch survives power loss.
type FileSink struct {
	f *os.File
}

// NewFileSink opens (creating if necessary) the log file at path for
// appending.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open event log %s: %w", path, err)
	}
	return &FileSink{f: f}, nil
}

func (s *FileSink) Append(lines []string) error {
	for _, line := range lines {
		if _, err := s.f.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("append event log: %w", err)
		}
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync event log: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error { return s.f.Close() }
