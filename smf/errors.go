// Package smf implements the Standard MIDI File track event decoder.
//
// The decoder walks a byte stream of delta-times, status bytes (with
// running-status elision), channel-voice events, meta events, and
// system-exclusive events, advancing a single cursor with at most one
// byte of pushback. Decoded events are handed to a Consumer in stream
// order.
package smf

import (
	"errors"
	"fmt"
)

// Sentinel errors for decode failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrNotSMF indicates the file does not start with an MThd chunk.
	ErrNotSMF = errors.New("smf: not a standard MIDI file")

	// ErrTruncatedHeader indicates fewer than 14 bytes were available
	// for the file header.
	ErrTruncatedHeader = errors.New("smf: truncated header")

	// ErrUnexpectedEOF indicates the stream ended mid-event: inside a
	// variable-length quantity, a fixed payload, or a length-prefixed
	// payload.
	ErrUnexpectedEOF = errors.New("smf: unexpected end of stream")

	// ErrNoRunningStatus indicates a data byte arrived before any
	// status byte was seen in the track, so there is no running status
	// to reuse.
	ErrNoRunningStatus = errors.New("smf: data byte with no running status")

	// ErrBadTrackChunk indicates a track chunk tag other than MTrk.
	ErrBadTrackChunk = errors.New("smf: bad track chunk")

	// ErrBadMetaLength indicates a fixed-size meta payload whose
	// declared length does not match the SMF specification.
	ErrBadMetaLength = errors.New("smf: bad meta event length")

	// ErrVarLenOverflow indicates a variable-length quantity longer
	// than the 4-byte / 28-bit maximum.
	ErrVarLenOverflow = errors.New("smf: variable-length quantity overflows 28 bits")

	// ErrMissingEndOfTrack is returned in strict-length mode when a
	// track's declared byte count is exhausted before an end-of-track
	// meta event was seen.
	ErrMissingEndOfTrack = errors.New("smf: declared track length exhausted before end-of-track")
)

// TrackError is a track-scoped decode failure. Tracks decoded before
// the failing one remain valid in the result; the error carries enough
// context (track index, byte offset) to diagnose a malformed file.
type TrackError struct {
	// Track is the zero-based track index.
	Track int
	// Offset is the byte offset into the stream where decoding stopped.
	Offset int64
	// Err is the underlying failure.
	Err error
}

func (e *TrackError) Error() string {
	return fmt.Sprintf("track %d at offset %d: %v", e.Track, e.Offset, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *TrackError) Unwrap() error {
	return e.Err
}
