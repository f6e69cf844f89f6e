package smf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/staccato-io/staccato/types"
)

func headerBytes(format, trackCount, division uint16) []byte {
	return []byte{
		'M', 'T', 'h', 'd',
		0x00, 0x00, 0x00, 0x06,
		byte(format >> 8), byte(format),
		byte(trackCount >> 8), byte(trackCount),
		byte(division >> 8), byte(division),
	}
}

func TestReadHeader(t *testing.T) {
	h, err := ReadHeader(NewCursor(bytes.NewReader(headerBytes(1, 3, 480))))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if h.Format != 1 || h.TrackCount != 3 || h.TimeDivision != 480 {
		t.Errorf("header = %+v", h)
	}
	if h.DeclaredLength != 6 {
		t.Errorf("DeclaredLength = %d, want 6", h.DeclaredLength)
	}
	if h.SMPTETiming() {
		t.Error("480 tpqn should be metrical timing")
	}
	if got := h.TicksPerQuarterNote(); got != 480 {
		t.Errorf("TicksPerQuarterNote = %d, want 480", got)
	}
}

func TestReadHeader_WrongTag(t *testing.T) {
	raw := headerBytes(0, 1, 96)
	copy(raw, "RIFF")
	_, err := ReadHeader(NewCursor(bytes.NewReader(raw)))
	if !errors.Is(err, ErrNotSMF) {
		t.Errorf("err = %v, want ErrNotSMF", err)
	}
}

func TestReadHeader_Truncated(t *testing.T) {
	for _, n := range []int{0, 1, 13} {
		_, err := ReadHeader(NewCursor(bytes.NewReader(headerBytes(0, 1, 96)[:n])))
		if !errors.Is(err, ErrTruncatedHeader) {
			t.Errorf("%d bytes: err = %v, want ErrTruncatedHeader", n, err)
		}
	}
}

func TestReadTrackChunk(t *testing.T) {
	raw := []byte{'M', 'T', 'r', 'k', 0x00, 0x00, 0x01, 0x00}
	chunk, err := readTrackChunk(NewCursor(bytes.NewReader(raw)))
	if err != nil {
		t.Fatalf("readTrackChunk: %v", err)
	}
	if chunk.Tag() != types.TrackTag || chunk.DeclaredLength != 256 {
		t.Errorf("chunk = %+v", chunk)
	}
}

func TestReadTrackChunk_BadTag(t *testing.T) {
	raw := []byte{'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x00}
	_, err := readTrackChunk(NewCursor(bytes.NewReader(raw)))
	if !errors.Is(err, ErrBadTrackChunk) {
		t.Errorf("err = %v, want ErrBadTrackChunk", err)
	}
}

func TestReadTrackChunk_Truncated(t *testing.T) {
	raw := []byte{'M', 'T', 'r'}
	_, err := readTrackChunk(NewCursor(bytes.NewReader(raw)))
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("err = %v, want ErrUnexpectedEOF", err)
	}
}
