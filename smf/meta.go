package smf

import (
	"fmt"

	"github.com/staccato-io/staccato/types"
)

// readMeta consumes a meta event from the cursor: the type byte, a
// variable-length payload length, and the payload itself. The payload
// is always fully consumed, even for unrecognized types, so the cursor
// stays aligned on the next event.
func readMeta(c *Cursor) (*types.MetaEvent, error) {
	typeByte, err := c.ReadByte()
	if err != nil {
		return nil, ErrUnexpectedEOF
	}
	length, err := ReadVarLen(c)
	if err != nil {
		return nil, ErrUnexpectedEOF
	}

	var payload []byte
	if length > 0 {
		payload = make([]byte, length)
		if err := c.ReadFull(payload); err != nil {
			return nil, ErrUnexpectedEOF
		}
	}
	return interpretMeta(typeByte, payload)
}

// interpretMeta decodes a meta payload into its tagged-union form.
// Fixed-size kinds validate the payload length against the SMF
// specification; text-like kinds carry bytes as-is; the end-of-track
// event tolerates any payload.
func interpretMeta(typeByte byte, payload []byte) (*types.MetaEvent, error) {
	meta := &types.MetaEvent{
		Kind: types.MetaKindForType(typeByte),
		Type: typeByte,
	}

	switch meta.Kind {
	case types.MetaSequenceNumber:
		if err := wantMetaLength(meta, payload, 2); err != nil {
			return nil, err
		}
		meta.SequenceNumber = &types.SequenceNumber{MSB: payload[0], LSB: payload[1]}

	case types.MetaText, types.MetaCopyright, types.MetaTrackName,
		types.MetaInstrumentName, types.MetaLyric, types.MetaMarker,
		types.MetaCuePoint:
		meta.Text = string(payload)

	case types.MetaChannelPrefix:
		if err := wantMetaLength(meta, payload, 1); err != nil {
			return nil, err
		}
		meta.ChannelPrefix = payload[0]

	case types.MetaEndOfTrack:
		// Always zero-length in practice; tolerated either way since
		// the payload is already consumed.

	case types.MetaSetTempo:
		if err := wantMetaLength(meta, payload, 3); err != nil {
			return nil, err
		}
		meta.Tempo = &types.Tempo{
			MicrosPerQuarter: uint32(payload[0])<<16 | uint32(payload[1])<<8 | uint32(payload[2]),
		}

	case types.MetaSMPTEOffset:
		if err := wantMetaLength(meta, payload, 5); err != nil {
			return nil, err
		}
		meta.SMPTEOffset = &types.SMPTEOffset{
			Hour:     payload[0],
			Minute:   payload[1],
			Second:   payload[2],
			Frame:    payload[3],
			SubFrame: payload[4],
		}

	case types.MetaTimeSignature:
		if err := wantMetaLength(meta, payload, 4); err != nil {
			return nil, err
		}
		meta.TimeSignature = &types.TimeSignature{
			Numerator:                   payload[0],
			DenominatorPow2:             payload[1],
			MetronomeClocks:             payload[2],
			ThirtySecondNotesPerQuarter: payload[3],
		}

	case types.MetaKeySignature:
		if err := wantMetaLength(meta, payload, 2); err != nil {
			return nil, err
		}
		meta.KeySignature = &types.KeySignature{
			SharpsFlats: int8(payload[0]),
			Minor:       payload[1] != 0,
		}

	default:
		// Sequencer-specific and unknown types keep the raw payload.
		meta.Raw = payload
	}

	return meta, nil
}

func wantMetaLength(meta *types.MetaEvent, payload []byte, want int) error {
	if len(payload) != want {
		return fmt.Errorf("%w: type 0x%02X has length %d, want %d",
			ErrBadMetaLength, meta.Type, len(payload), want)
	}
	return nil
}
