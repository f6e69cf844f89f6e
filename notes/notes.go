// Package notes collects the note on/off sequence of each track from
// a decoded event stream.
package notes

import (
	"context"
	"fmt"

	"github.com/staccato-io/staccato/smf"
	"github.com/staccato-io/staccato/types"
)

// Collector accumulates one ordered Note sequence per track. It
// implements smf.Consumer; every other event kind passes through
// untouched. Not safe for concurrent use, matching the strictly
// sequential decoder.
type Collector struct {
	tracks types.TrackNotes
}

var _ smf.Consumer = (*Collector)(nil)

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Event records note-on and note-off events and ignores the rest.
func (c *Collector) Event(_ context.Context, ev *types.Event) error {
	if !ev.Kind.IsNote() {
		return nil
	}
	for len(c.tracks) <= ev.Track {
		c.tracks = append(c.tracks, nil)
	}
	c.tracks[ev.Track] = append(c.tracks[ev.Track], types.Note{
		NoteNumber: ev.Data1,
		On:         ev.Kind == types.KindNoteOn,
	})
	return nil
}

// Tracks returns the collected note sequences, indexed by track.
// The returned value shares storage with the collector; call it after
// decoding finishes.
func (c *Collector) Tracks() types.TrackNotes {
	return c.tracks
}

// NoteCount returns the total number of notes across all tracks.
func (c *Collector) NoteCount() int {
	return c.tracks.NoteCount()
}

// Tee fans each event out to several consumers in order. The first
// consumer error stops delivery and aborts the decode.
type Tee struct {
	consumers []smf.Consumer
}

var _ smf.Consumer = (*Tee)(nil)

// NewTee creates a Tee over the given consumers.
func NewTee(consumers ...smf.Consumer) *Tee {
	return &Tee{consumers: consumers}
}

// Event delivers ev to every consumer in order.
func (t *Tee) Event(ctx context.Context, ev *types.Event) error {
	for i, consumer := range t.consumers {
		if err := consumer.Event(ctx, ev); err != nil {
			return fmt.Errorf("tee consumer %d: %w", i, err)
		}
	}
	return nil
}
