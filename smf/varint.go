package smf

import (
	"errors"
	"io"
)

// MaxVarLen is the largest value a variable-length quantity can encode:
// four bytes of seven payload bits each.
const MaxVarLen = 0x0FFFFFFF

// ReadVarLen decodes a MIDI variable-length quantity from the cursor.
//
// Each byte contributes its low seven bits, most significant first; a
// set high bit signals continuation. At most four bytes are consumed
// (the SMF specification caps delta-times and lengths at 28 bits).
//
// Returns io.EOF only when the source is exhausted before the first
// byte; a stream ending mid-quantity yields ErrUnexpectedEOF.
func ReadVarLen(c *Cursor) (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		b, err := c.ReadByte()
		if err != nil {
			if i == 0 && errors.Is(err, io.EOF) {
				return 0, io.EOF
			}
			return 0, ErrUnexpectedEOF
		}
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, ErrVarLenOverflow
}

// AppendVarLen appends the variable-length encoding of v to dst and
// returns the extended slice. Values above MaxVarLen are truncated to
// 28 bits.
func AppendVarLen(dst []byte, v uint32) []byte {
	v &= MaxVarLen
	if v == 0 {
		return append(dst, 0)
	}
	var chunks [4]byte
	n := 0
	for v > 0 {
		chunks[n] = byte(v & 0x7F)
		v >>= 7
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b := chunks[i]
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}
