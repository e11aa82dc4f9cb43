// Package eventlog is the append-only diagnostic log: one comma-joined
// record per notable rig event, buffered in memory and flushed to a sink
// on a timer or on demand. It is diagnostic data only — accounting lives
// in the persistent store, and records lost between flushes are an
// accepted cost of power loss.
package eventlog

import "strings"

// Header is written once per session, ahead of the first flushed batch.
const Header = "Pump,Event,Duration,RelayCount"

// BufferCap is the number of records held between flushes. Records past
// the cap are dropped, not queued: on this class of device an unbounded
// buffer is a worse failure mode than losing diagnostics.
const BufferCap = 20

// Sink receives flushed batches of log lines.
type Sink interface {
	// Append writes the lines, in order, to the underlying medium.
	Append(lines []string) error

	// Close releases the sink.
	Close() error
}

// Log buffers records between flushes. Not safe for concurrent use; the
// control loop is the sole writer.
type Log struct {
	sink       Sink
	buf        []string
	dropped    int
	headerSent bool
}

// New creates a Log writing to sink.
func New(sink Sink) *Log {
	return &Log{sink: sink, buf: make([]string, 0, BufferCap)}
}

// Record buffers one event record, joining parts with commas. Records
// arriving while the buffer is full are silently dropped.
func (l *Log) Record(parts ...string) {
	if len(l.buf) >= BufferCap {
		l.dropped++
		return
	}
	l.buf = append(l.buf, strings.Join(parts, ","))
}

// Buffered returns the number of records currently waiting.
func (l *Log) Buffered() int { return len(l.buf) }

// Dropped returns the number of records dropped since the last flush.
func (l *Log) Dropped() int { return l.dropped }

// Flush sends the buffered lines to the sink and empties the buffer, with
// the session header prepended to the first batch. The buffer is cleared
// even when the sink fails: these are diagnostics, and retrying would
// just re-drop newer records instead.
func (l *Log) Flush() error {
	if len(l.buf) == 0 && l.headerSent {
		return nil
	}
	lines := l.buf
	if !l.headerSent {
		lines = append([]string{Header}, lines...)
		l.headerSent = true
	}
	l.buf = make([]string, 0, BufferCap)
	l.dropped = 0
	return l.sink.Append(lines)
}
