package types

// HeaderTag and TrackTag are the four-byte chunk identifiers defined by
// the SMF container format.
const (
	HeaderTag = "MThd"
	TrackTag  = "MTrk"
)

// HeaderLength is the fixed byte length of the MThd chunk including
// its tag and length fields.
const HeaderLength = 14

// Header is the decoded MThd chunk. Created once per file and immutable
// after construction. All multi-byte fields are big-endian on the wire.
type Header struct {
	ChunkType      [4]byte `json:"-"`
	DeclaredLength uint32  `json:"declared_length"`
	Format         uint16  `json:"format"`
	TrackCount     uint16  `json:"track_count"`
	TimeDivision   uint16  `json:"time_division"`
}

// Tag returns the chunk type as a string.
func (h *Header) Tag() string { return string(h.ChunkType[:]) }

// TicksPerQuarterNote returns the metrical time division, valid only
// when SMPTETiming reports false.
func (h *Header) TicksPerQuarterNote() uint16 {
	return h.TimeDivision & 0x7FFF
}

// SMPTETiming returns true when the division field encodes SMPTE
// frame-based timing (top bit set) rather than ticks per quarter note.
func (h *Header) SMPTETiming() bool {
	return h.TimeDivision&0x8000 != 0
}

// TrackChunk is the decoded MTrk chunk prefix. The declared length is
// advisory: the decoder's terminator is the end-of-track meta event,
// not byte-count exhaustion, unless strict-length mode is enabled.
type TrackChunk struct {
	ChunkType      [4]byte
	DeclaredLength uint32
}

// Tag returns the chunk type as a string.
func (t *TrackChunk) Tag() string { return string(t.ChunkType[:]) }
