package eventlog

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestHeaderOnFirstFlushOnly(t *testing.T) {
	sink := NewFakeSink()
	l := New(sink)

	l.Record("Pump1", "ON")
	if err := l.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	if len(sink.Batches) != 1 {
		t.Fatalf("got %d batches, want 1", len(sink.Batches))
	}
	want := []string{Header, "Pump1,ON"}
	got := sink.Batches[0]
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("first batch = %v, want %v", got, want)
	}

	l.Record("Pump1", "OFF", "run=3s", "total=3s")
	l.Flush()
	if got := sink.Batches[1]; len(got) != 1 || got[0] != "Pump1,OFF,run=3s,total=3s" {
		t.Errorf("second batch = %v", got)
	}
}

func TestEmptyFlushAfterHeaderIsNoop(t *testing.T) {
	sink := NewFakeSink()
	l := New(sink)
	l.Flush() // header only
	l.Flush()
	l.Flush()
	if len(sink.Batches) != 1 {
		t.Errorf("empty flushes reached the sink: %d batches", len(sink.Batches))
	}
}

func TestBufferCapacityDropsExcess(t *testing.T) {
	sink := NewFakeSink()
	l := New(sink)
	l.Flush() // get the header out of the way

	for i := 0; i < BufferCap+5; i++ {
		l.Record("Pump1", "EV"+strconv.Itoa(i))
	}
	if got := l.Dropped(); got != 5 {
		t.Errorf("dropped = %d, want 5", got)
	}

	l.Flush()
	batch := sink.Batches[1]
	if len(batch) != BufferCap {
		t.Fatalf("flushed %d lines, want exactly %d", len(batch), BufferCap)
	}
	// The survivors are the oldest entries; excess was dropped, not queued.
	if batch[0] != "Pump1,EV0" || batch[BufferCap-1] != "Pump1,EV"+strconv.Itoa(BufferCap-1) {
		t.Errorf("batch boundaries = %q .. %q", batch[0], batch[len(batch)-1])
	}

	// Nothing carried over.
	l.Flush()
	if len(sink.Batches) != 2 {
		t.Error("dropped entries reappeared after flush")
	}
}

func TestFlushClearsBufferOnSinkError(t *testing.T) {
	sink := NewFakeSink()
	sink.AppendError = errors.New("sink down")
	l := New(sink)
	l.Record("Pump1", "ON")

	if err := l.Flush(); err == nil {
		t.Fatal("expected sink error")
	}
	if l.Buffered() != 0 {
		t.Error("buffer retained after failed flush")
	}
}

func TestMultiSinkFanout(t *testing.T) {
	a, b := NewFakeSink(), NewFakeSink()
	b.AppendError = errors.New("b down")
	m := MultiSink{a, b}

	err := m.Append([]string{"x"})
	if err == nil {
		t.Fatal("expected error from failing sink")
	}
	if len(a.Batches) != 1 || len(b.Batches) != 1 {
		t.Error("not every sink saw the batch")
	}

	if err := m.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
	if !a.Closed || !b.Closed {
		t.Error("not every sink closed")
	}
}

func TestEmptyMultiSink(t *testing.T) {
	var m MultiSink
	if err := m.Append([]string{"x"}); err != nil {
		t.Errorf("append to no sinks: %v", err)
	}
}

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	s, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := s.Append([]string{Header, "Pump1,ON"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Append([]string{"Pump1,OFF,run=2s,total=2s"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := Header + "\nPump1,ON\nPump1,OFF,run=2s,total=2s\n"
	if string(data) != want {
		t.Errorf("file contents = %q, want %q", data, want)
	}
}
