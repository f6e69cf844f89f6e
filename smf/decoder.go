package smf

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/staccato-io/staccato/log"
	"github.com/staccato-io/staccato/metrics"
	"github.com/staccato-io/staccato/types"
)

// Consumer receives decoded events in stream order. The *types.Event
// is transient; implementations must copy anything they retain past
// the call. A non-nil error aborts the whole decode.
type Consumer interface {
	Event(ctx context.Context, ev *types.Event) error
}

// StubConsumer discards every event. Useful as a placeholder and for
// benchmarking raw decode throughput.
type StubConsumer struct{}

var _ Consumer = (*StubConsumer)(nil)

func (*StubConsumer) Event(context.Context, *types.Event) error { return nil }

// Options configures a Decoder. The zero value is a reasonable
// default: lenient track lengths, note-on velocity preserved, no
// logging, no metrics.
type Options struct {
	// StrictLength enforces each track's declared byte count: a track
	// whose declared length runs out before its end-of-track meta
	// event fails with ErrMissingEndOfTrack. When false the declared
	// length is advisory and only the end-of-track event (or stream
	// exhaustion) terminates a track.
	StrictLength bool

	// FoldZeroVelocity reports note-on events with velocity zero as
	// note-off events. Many files use the zero-velocity convention to
	// exploit running status; folding gives consumers one uniform
	// note-off representation.
	FoldZeroVelocity bool

	Logger  *log.Logger
	Metrics *metrics.Collector
}

// Decoder walks a standard MIDI file byte stream and hands each track
// event to a Consumer. A Decoder is single-use: create one per stream.
type Decoder struct {
	c    *Cursor
	opts Options

	// running is the active running status for the current track, or
	// zero when no status byte has been seen yet.
	running byte
}

// Result summarizes a completed decode. TrackErrors holds one entry
// per track that failed mid-stream; tracks decoded before (and, when
// resynchronization succeeded, after) a failing track are unaffected.
type Result struct {
	Header      *types.Header
	TrackErrors []*TrackError
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader, opts Options) *Decoder {
	return &Decoder{c: NewCursor(r), opts: opts}
}

// consumerError marks a failure raised by the Consumer rather than by
// the byte stream, so Decode can abort instead of recording a
// track-scoped error.
type consumerError struct {
	err error
}

func (e *consumerError) Error() string { return fmt.Sprintf("consumer: %v", e.err) }
func (e *consumerError) Unwrap() error { return e.err }

// Decode reads the header and every declared track, delivering events
// to consumer in stream order.
//
// Structural failures (no MThd, truncated header, unreadable first
// track chunk) return an error with a nil Result. Failures inside a
// track are recorded in Result.TrackErrors; the decoder then skips the
// rest of the track's declared bytes to realign on the next chunk, so
// one corrupt track does not take the rest of the file with it.
// Consumer errors and context cancellation abort the decode.
func (d *Decoder) Decode(ctx context.Context, consumer Consumer) (*Result, error) {
	header, err := ReadHeader(d.c)
	if err != nil {
		return nil, err
	}
	d.logDebug("header decoded", map[string]any{
		"format":        header.Format,
		"track_count":   header.TrackCount,
		"time_division": header.TimeDivision,
	})

	res := &Result{Header: header}
	for track := 0; track < int(header.TrackCount); track++ {
		chunk, err := readTrackChunk(d.c)
		if err != nil {
			if track == 0 {
				return nil, err
			}
			// Without a chunk header there is nothing to realign on.
			res.TrackErrors = append(res.TrackErrors, &TrackError{
				Track: track, Offset: d.c.Offset(), Err: err,
			})
			d.opts.Metrics.IncTrackFailed()
			break
		}

		payloadStart := d.c.Offset()
		err = d.decodeTrack(ctx, track, chunk, consumer)
		if err != nil {
			var cerr *consumerError
			if errors.As(err, &cerr) {
				return res, cerr.err
			}
			if ctx.Err() != nil {
				return res, ctx.Err()
			}

			res.TrackErrors = append(res.TrackErrors, &TrackError{
				Track: track, Offset: d.c.Offset(), Err: err,
			})
			d.opts.Metrics.IncTrackFailed()
			d.logWarn("track failed", map[string]any{
				"track":  track,
				"offset": d.c.Offset(),
				"error":  err.Error(),
			})
			if !d.resync(payloadStart, chunk.DeclaredLength) {
				break
			}
			continue
		}
		d.opts.Metrics.IncTrackCompleted()

		// Files may pad between the end-of-track event and the
		// declared chunk end; skip the remainder so the next chunk
		// header lines up. A failed skip surfaces on the next
		// readTrackChunk.
		if consumed := d.c.Offset() - payloadStart; consumed < int64(chunk.DeclaredLength) {
			_ = d.c.Skip(uint32(int64(chunk.DeclaredLength) - consumed))
		}
	}

	d.opts.Metrics.SetBytesRead(d.c.Offset())
	return res, nil
}

// resync skips whatever remains of a failed track's declared payload
// so the cursor lands on the next chunk header. Reports false when the
// cursor has already overrun the declared length (or the skip hits
// end of stream), in which case alignment is lost and decoding stops.
func (d *Decoder) resync(payloadStart int64, declared uint32) bool {
	consumed := d.c.Offset() - payloadStart
	if consumed > int64(declared) {
		return false
	}
	if err := d.c.Skip(uint32(int64(declared) - consumed)); err != nil {
		return false
	}
	return true
}

// decodeTrack runs the event loop for one track payload: delta-time,
// status resolution (with running-status reuse), then dispatch on the
// status family. Returns nil on the end-of-track meta event or clean
// stream exhaustion at a delta-time boundary.
func (d *Decoder) decodeTrack(ctx context.Context, track int, chunk *types.TrackChunk, consumer Consumer) error {
	d.running = 0
	end := d.c.Offset() + int64(chunk.DeclaredLength)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.opts.StrictLength && d.c.Offset() >= end {
			return ErrMissingEndOfTrack
		}

		delta, err := ReadVarLen(d.c)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// Stream exhaustion at an event boundary terminates
				// the track like an end-of-track meta event would.
				return nil
			}
			return err
		}

		b, err := d.c.ReadByte()
		if err != nil {
			return ErrUnexpectedEOF
		}

		status := b
		if b < 0x80 {
			if d.running == 0 {
				return fmt.Errorf("%w: data byte 0x%02X", ErrNoRunningStatus, b)
			}
			// The byte is the event's first data byte; put it back
			// and reuse the previous status.
			_ = d.c.UnreadByte()
			status = d.running
		} else {
			d.running = b
		}

		ev := types.Event{Track: track, Delta: delta, Status: status}
		done, err := d.decodeEvent(&ev)
		if err != nil {
			return err
		}

		d.opts.Metrics.IncEvent(ev.Kind)
		if err := consumer.Event(ctx, &ev); err != nil {
			return &consumerError{err: err}
		}
		if done {
			return nil
		}
	}
}

// decodeEvent consumes the payload for ev.Status and fills in the
// event. Reports done=true on the end-of-track meta event.
func (d *Decoder) decodeEvent(ev *types.Event) (done bool, err error) {
	switch {
	case ev.Status == types.StatusMeta:
		meta, err := readMeta(d.c)
		if err != nil {
			return false, err
		}
		ev.Kind = types.KindMeta
		ev.Meta = meta
		return meta.Kind == types.MetaEndOfTrack, nil

	case ev.Status == types.StatusSysexBegin, ev.Status == types.StatusSysexEscape:
		ev.Kind = types.KindSysexBegin
		if ev.Status == types.StatusSysexEscape {
			ev.Kind = types.KindSysexEscape
		}
		return false, d.skipSysex()

	case ev.Status >= 0xF0:
		// Unrecognized system byte. Reported as an event so consumers
		// can count it; no payload bytes are consumed and decoding
		// resumes at the next byte.
		ev.Kind = types.KindStatusError
		d.logWarn("unrecognized status byte", map[string]any{
			"track":  ev.Track,
			"status": fmt.Sprintf("0x%02X", ev.Status),
			"offset": d.c.Offset(),
		})
		return false, nil

	default:
		return false, d.decodeChannelVoice(ev)
	}
}

// decodeChannelVoice fills in a channel-voice event: kind and channel
// from the status byte, then one or two data bytes by family.
func (d *Decoder) decodeChannelVoice(ev *types.Event) error {
	ev.Channel = ev.Status & 0x0F

	var twoBytes bool
	switch ev.Status & 0xF0 {
	case types.StatusNoteOff:
		ev.Kind, twoBytes = types.KindNoteOff, true
	case types.StatusNoteOn:
		ev.Kind, twoBytes = types.KindNoteOn, true
	case types.StatusNoteAfterTouch:
		ev.Kind, twoBytes = types.KindNoteAfterTouch, true
	case types.StatusController:
		ev.Kind, twoBytes = types.KindController, true
	case types.StatusProgramChange:
		ev.Kind, twoBytes = types.KindProgramChange, false
	case types.StatusChannelAfterTouch:
		ev.Kind, twoBytes = types.KindChannelAfterTouch, false
	case types.StatusPitchBend:
		ev.Kind, twoBytes = types.KindPitchBend, true
	}

	var err error
	if ev.Data1, err = d.c.ReadByte(); err != nil {
		return ErrUnexpectedEOF
	}
	if twoBytes {
		if ev.Data2, err = d.c.ReadByte(); err != nil {
			return ErrUnexpectedEOF
		}
	}

	if d.opts.FoldZeroVelocity && ev.Kind == types.KindNoteOn && ev.Data2 == 0 {
		ev.Kind = types.KindNoteOff
	}
	return nil
}

// skipSysex consumes a system-exclusive event: a subtype byte, a
// variable-length payload length, then the payload itself. The payload
// is discarded; only the event's presence is reported.
func (d *Decoder) skipSysex() error {
	if _, err := d.c.ReadByte(); err != nil {
		return ErrUnexpectedEOF
	}
	length, err := ReadVarLen(d.c)
	if err != nil {
		return ErrUnexpectedEOF
	}
	if err := d.c.Skip(length); err != nil {
		return ErrUnexpectedEOF
	}
	return nil
}

func (d *Decoder) logDebug(message string, fields map[string]any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Debug(message, fields)
	}
}

func (d *Decoder) logWarn(message string, fields map[string]any) {
	if d.opts.Logger != nil {
		d.opts.Logger.Warn(message, fields)
	}
}
