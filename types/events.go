// Package types defines the shared data model for SMF decoding.
//
// Standard MIDI Files are a sequence of chunks: one MThd header chunk
// followed by one MTrk chunk per track. Track chunks carry a stream of
// (delta-time, event) pairs with no explicit record boundaries; the
// event structure is implied by the status byte values themselves.
package types

// EventKind identifies the family of a decoded track event.
type EventKind string

// Event kind constants. Channel-voice kinds correspond to status byte
// high nibbles 0x8 through 0xE; the remaining kinds cover the 0xF
// (meta/system) status space.
const (
	KindNoteOff           EventKind = "note_off"
	KindNoteOn            EventKind = "note_on"
	KindNoteAfterTouch    EventKind = "note_aftertouch"
	KindController        EventKind = "controller"
	KindProgramChange     EventKind = "program_change"
	KindChannelAfterTouch EventKind = "channel_aftertouch"
	KindPitchBend         EventKind = "pitch_bend"
	KindMeta              EventKind = "meta"
	KindSysexBegin        EventKind = "sysex_begin"
	KindSysexEscape       EventKind = "sysex_escape"
	// KindStatusError marks an unrecognized 0xF-family status byte.
	// It is reported like any other event, but decoding continues at
	// the next delta-time; no payload bytes are consumed.
	KindStatusError EventKind = "status_error"
)

// IsChannelVoice returns true for the seven channel-voice families.
func (k EventKind) IsChannelVoice() bool {
	switch k {
	case KindNoteOff, KindNoteOn, KindNoteAfterTouch, KindController,
		KindProgramChange, KindChannelAfterTouch, KindPitchBend:
		return true
	}
	return false
}

// IsNote returns true for note-on and note-off events.
func (k EventKind) IsNote() bool {
	return k == KindNoteOn || k == KindNoteOff
}

// Status byte values. Channel-voice constants carry a zero channel
// nibble; the low nibble of the actual byte selects the MIDI channel.
const (
	StatusNoteOff           byte = 0x80
	StatusNoteOn            byte = 0x90
	StatusNoteAfterTouch    byte = 0xA0
	StatusController        byte = 0xB0
	StatusProgramChange     byte = 0xC0
	StatusChannelAfterTouch byte = 0xD0
	StatusPitchBend         byte = 0xE0
	StatusSysexBegin        byte = 0xF0
	StatusSysexEscape       byte = 0xF7
	StatusMeta              byte = 0xFF
)

// Event is one decoded track event. It is transient: the decoder fills
// one Event per iteration and hands it to the consumer, which must not
// retain it past the callback (copy what you need).
//
// Data1/Data2 hold the fixed channel-voice payload bytes; their meaning
// depends on Kind (note number and velocity for notes, controller type
// and value for controllers, LSB and MSB for pitch bend, and so on).
// One-byte payloads use Data1 only. Meta is set only for KindMeta.
type Event struct {
	Track   int       `json:"track"`
	Delta   uint32    `json:"delta"`
	Kind    EventKind `json:"kind"`
	Status  byte      `json:"status"`
	Channel uint8     `json:"channel"`
	Data1   byte      `json:"data1"`
	Data2   byte      `json:"data2"`

	Meta *MetaEvent `json:"meta,omitempty"`
}

// Note is the collector's record of a note-on or note-off event.
// Appended in decode order and never mutated afterward.
type Note struct {
	NoteNumber uint8 `json:"note_number"`
	On         bool  `json:"on"`
}

// TrackNotes holds one ordered note sequence per track, indexed by
// track number. Insertion order matches the event order in the byte
// stream; delta-times are not unrolled into absolute ticks.
type TrackNotes [][]Note

// NoteCount returns the total number of notes across all tracks.
func (tn TrackNotes) NoteCount() int {
	var n int
	for _, track := range tn {
		n += len(track)
	}
	return n
}
