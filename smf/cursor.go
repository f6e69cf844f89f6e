package smf

import (
	"errors"
	"io"
)

// Cursor is a sequential byte reader with a single byte of pushback.
//
// Running status needs the decoder to logically un-consume one byte:
// the byte read as a prospective status turns out to be the first data
// byte of the event. The pushback slot covers exactly that case; there
// is never more than one byte of lookahead, so non-seekable sources
// work without a buffered wrapper.
type Cursor struct {
	r      io.Reader
	offset int64
	buf    [1]byte

	last      byte
	lastValid bool
	unread    bool
}

// NewCursor creates a cursor over r starting at offset zero.
func NewCursor(r io.Reader) *Cursor {
	return &Cursor{r: r}
}

// Offset returns the number of bytes consumed so far. Unreading a byte
// rewinds the offset by one.
func (c *Cursor) Offset() int64 {
	return c.offset
}

// ReadByte reads and returns the next byte. Returns io.EOF when the
// source is exhausted at a byte boundary.
func (c *Cursor) ReadByte() (byte, error) {
	if c.unread {
		c.unread = false
		c.offset++
		return c.last, nil
	}
	if _, err := io.ReadFull(c.r, c.buf[:]); err != nil {
		return 0, err
	}
	c.last = c.buf[0]
	c.lastValid = true
	c.offset++
	return c.buf[0], nil
}

// UnreadByte pushes the most recently read byte back so the next
// ReadByte or ReadFull sees it again. Only valid directly after a
// successful ReadByte, and only one byte deep.
func (c *Cursor) UnreadByte() error {
	if c.unread || !c.lastValid {
		return errors.New("smf: no byte to unread")
	}
	c.unread = true
	c.offset--
	return nil
}

// ReadFull reads exactly len(p) bytes, honoring the pushback slot.
// Returns io.EOF if no bytes were available at all, io.ErrUnexpectedEOF
// if the source ended partway through.
func (c *Cursor) ReadFull(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	start := 0
	if c.unread {
		p[0] = c.last
		c.unread = false
		c.offset++
		start = 1
	}
	c.lastValid = false
	n, err := io.ReadFull(c.r, p[start:])
	c.offset += int64(n)
	if err != nil {
		if start > 0 && err == io.EOF {
			return io.ErrUnexpectedEOF
		}
		return err
	}
	return nil
}

// Skip consumes and discards n bytes.
func (c *Cursor) Skip(n uint32) error {
	if n == 0 {
		return nil
	}
	var scratch [512]byte
	for n > 0 {
		chunk := uint32(len(scratch))
		if n < chunk {
			chunk = n
		}
		if err := c.ReadFull(scratch[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
