package smf

import (
	"encoding/binary"
	"fmt"

	"github.com/staccato-io/staccato/types"
)

// ReadHeader reads and validates the 14-byte MThd chunk from the start
// of the stream. All multi-byte fields are big-endian regardless of
// host byte order.
//
// The chunk tag is validated as a hard error; the declared length is
// conventionally 6 but does not gate further parsing, since only the
// fixed fields after it are consumed.
func ReadHeader(c *Cursor) (*types.Header, error) {
	var buf [types.HeaderLength]byte
	if err := c.ReadFull(buf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedHeader, err)
	}

	h := &types.Header{
		DeclaredLength: binary.BigEndian.Uint32(buf[4:8]),
		Format:         binary.BigEndian.Uint16(buf[8:10]),
		TrackCount:     binary.BigEndian.Uint16(buf[10:12]),
		TimeDivision:   binary.BigEndian.Uint16(buf[12:14]),
	}
	copy(h.ChunkType[:], buf[0:4])

	if h.Tag() != types.HeaderTag {
		return nil, fmt.Errorf("%w: chunk tag %q", ErrNotSMF, h.Tag())
	}
	return h, nil
}

// readTrackChunk reads the 8-byte MTrk chunk prefix: a four-byte tag
// and a big-endian u32 declared length. The declared length is
// advisory (see Options.StrictLength).
func readTrackChunk(c *Cursor) (*types.TrackChunk, error) {
	var buf [8]byte
	if err := c.ReadFull(buf[:]); err != nil {
		return nil, fmt.Errorf("%w: reading track chunk: %v", ErrUnexpectedEOF, err)
	}

	t := &types.TrackChunk{
		DeclaredLength: binary.BigEndian.Uint32(buf[4:8]),
	}
	copy(t.ChunkType[:], buf[0:4])

	if t.Tag() != types.TrackTag {
		return nil, fmt.Errorf("%w: chunk tag %q", ErrBadTrackChunk, t.Tag())
	}
	return t, nil
}
