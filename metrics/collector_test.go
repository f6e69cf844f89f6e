package metrics

import (
	"testing"

	"github.com/staccato-io/staccato/types"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector()

	c.IncEvent(types.KindNoteOn)
	c.IncEvent(types.KindNoteOn)
	c.IncEvent(types.KindNoteOff)
	c.IncEvent(types.KindMeta)
	c.IncEvent(types.KindStatusError)
	c.IncTrackCompleted()
	c.IncTrackFailed()
	c.SetBytesRead(1024)

	s := c.Snapshot()
	if s.EventsDecoded != 5 {
		t.Errorf("EventsDecoded = %d, want 5", s.EventsDecoded)
	}
	if s.EventsByKind[types.KindNoteOn] != 2 {
		t.Errorf("note_on count = %d, want 2", s.EventsByKind[types.KindNoteOn])
	}
	if s.StatusByteErrors != 1 {
		t.Errorf("StatusByteErrors = %d, want 1", s.StatusByteErrors)
	}
	if s.TracksCompleted != 1 || s.TracksFailed != 1 {
		t.Errorf("tracks = %d/%d, want 1/1", s.TracksCompleted, s.TracksFailed)
	}
	if s.BytesRead != 1024 {
		t.Errorf("BytesRead = %d, want 1024", s.BytesRead)
	}
}

func TestCollector_SnapshotIsolation(t *testing.T) {
	c := NewCollector()
	c.IncEvent(types.KindNoteOn)

	s := c.Snapshot()
	s.EventsByKind[types.KindNoteOn] = 99

	if got := c.Snapshot().EventsByKind[types.KindNoteOn]; got != 1 {
		t.Errorf("mutating a snapshot leaked into the collector: %d", got)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	// None of these should panic.
	c.IncEvent(types.KindNoteOn)
	c.IncTrackCompleted()
	c.IncTrackFailed()
	c.SetBytesRead(10)

	s := c.Snapshot()
	if s.EventsDecoded != 0 {
		t.Errorf("nil collector snapshot should be empty, got %d events", s.EventsDecoded)
	}
}
