// Package metrics provides per-decode metrics collection.
//
// The Collector accumulates counters during a single decode session.
// It is a leaf package with no internal dependencies. All increment
// methods are nil-receiver safe so callers can leave metrics unset.
package metrics

import (
	"sync"

	"github.com/staccato-io/staccato/types"
)

// Snapshot is an immutable point-in-time view of decode metrics.
// Returned by Collector.Snapshot(). Safe to read after creation.
type Snapshot struct {
	// EventsDecoded is the total number of events handed to consumers.
	EventsDecoded int64 `json:"events_decoded"`
	// EventsByKind breaks the total down by event family.
	EventsByKind map[types.EventKind]int64 `json:"events_by_kind"`
	// StatusByteErrors counts unrecognized 0xF-family status bytes
	// (reported but recovered in place).
	StatusByteErrors int64 `json:"status_byte_errors"`
	// TracksCompleted counts tracks that reached end-of-track or clean
	// stream exhaustion.
	TracksCompleted int64 `json:"tracks_completed"`
	// TracksFailed counts tracks abandoned on a decode error.
	TracksFailed int64 `json:"tracks_failed"`
	// BytesRead is the number of stream bytes consumed.
	BytesRead int64 `json:"bytes_read"`
}

// Collector accumulates metrics during a single decode session.
// Thread-safe via sync.Mutex, though the decoder itself is strictly
// sequential; the lock keeps Snapshot coherent for observers.
type Collector struct {
	mu sync.Mutex

	eventsDecoded    int64
	eventsByKind     map[types.EventKind]int64
	statusByteErrors int64
	tracksCompleted  int64
	tracksFailed     int64
	bytesRead        int64
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		eventsByKind: make(map[types.EventKind]int64),
	}
}

// IncEvent records one decoded event of the given kind.
func (c *Collector) IncEvent(kind types.EventKind) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.eventsDecoded++
	c.eventsByKind[kind]++
	if kind == types.KindStatusError {
		c.statusByteErrors++
	}
	c.mu.Unlock()
}

// IncTrackCompleted records a track that decoded to completion.
func (c *Collector) IncTrackCompleted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.tracksCompleted++
	c.mu.Unlock()
}

// IncTrackFailed records a track abandoned on a decode error.
func (c *Collector) IncTrackFailed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.tracksFailed++
	c.mu.Unlock()
}

// SetBytesRead records the total bytes consumed from the stream.
func (c *Collector) SetBytesRead(n int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.bytesRead = n
	c.mu.Unlock()
}

// Snapshot returns a consistent copy of all counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{EventsByKind: map[types.EventKind]int64{}}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	byKind := make(map[types.EventKind]int64, len(c.eventsByKind))
	for k, v := range c.eventsByKind {
		byKind[k] = v
	}
	return Snapshot{
		EventsDecoded:    c.eventsDecoded,
		EventsByKind:     byKind,
		StatusByteErrors: c.statusByteErrors,
		TracksCompleted:  c.tracksCompleted,
		TracksFailed:     c.tracksFailed,
		BytesRead:        c.bytesRead,
	}
}
