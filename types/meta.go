package types

// MetaKind classifies a meta event payload.
type MetaKind string

// Meta kind constants.
const (
	MetaSequenceNumber    MetaKind = "sequence_number"
	MetaText              MetaKind = "text"
	MetaCopyright         MetaKind = "copyright"
	MetaTrackName         MetaKind = "track_name"
	MetaInstrumentName    MetaKind = "instrument_name"
	MetaLyric             MetaKind = "lyric"
	MetaMarker            MetaKind = "marker"
	MetaCuePoint          MetaKind = "cue_point"
	MetaChannelPrefix     MetaKind = "channel_prefix"
	MetaEndOfTrack        MetaKind = "end_of_track"
	MetaSetTempo          MetaKind = "set_tempo"
	MetaSMPTEOffset       MetaKind = "smpte_offset"
	MetaTimeSignature     MetaKind = "time_signature"
	MetaKeySignature      MetaKind = "key_signature"
	MetaSequencerSpecific MetaKind = "sequencer_specific"
	MetaUnknown           MetaKind = "unknown"
)

// Meta event type bytes as defined by the SMF specification.
const (
	MetaTypeSequenceNumber    byte = 0x00
	MetaTypeText              byte = 0x01
	MetaTypeCopyright         byte = 0x02
	MetaTypeTrackName         byte = 0x03
	MetaTypeInstrumentName    byte = 0x04
	MetaTypeLyric             byte = 0x05
	MetaTypeMarker            byte = 0x06
	MetaTypeCuePoint          byte = 0x07
	MetaTypeChannelPrefix     byte = 0x20
	MetaTypeEndOfTrack        byte = 0x2F
	MetaTypeSetTempo          byte = 0x51
	MetaTypeSMPTEOffset       byte = 0x54
	MetaTypeTimeSignature     byte = 0x58
	MetaTypeKeySignature      byte = 0x59
	MetaTypeSequencerSpecific byte = 0x7F
)

// MetaEvent is the interpreted payload of a 0xFF track event, a tagged
// union over MetaKind. Exactly the fields implied by Kind are set; the
// rest stay zero. Raw holds the uninterpreted payload for
// sequencer-specific and unknown types (unknown payloads are still
// consumed from the stream to keep the cursor aligned).
type MetaEvent struct {
	Kind MetaKind `json:"kind"`
	Type byte     `json:"type"`

	// Text-like kinds (0x01-0x07). SMF does not specify an encoding;
	// the bytes are carried as-is.
	Text string `json:"text,omitempty"`

	SequenceNumber *SequenceNumber `json:"sequence_number,omitempty"`
	ChannelPrefix  uint8           `json:"channel_prefix,omitempty"`
	Tempo          *Tempo          `json:"tempo,omitempty"`
	SMPTEOffset    *SMPTEOffset    `json:"smpte_offset,omitempty"`
	TimeSignature  *TimeSignature  `json:"time_signature,omitempty"`
	KeySignature   *KeySignature   `json:"key_signature,omitempty"`
	Raw            []byte          `json:"raw,omitempty"`
}

// SequenceNumber is the 0x00 meta payload.
type SequenceNumber struct {
	MSB uint8 `json:"msb"`
	LSB uint8 `json:"lsb"`
}

// Tempo is the 0x51 meta payload: three big-endian payload bytes
// forming microseconds per quarter note.
type Tempo struct {
	MicrosPerQuarter uint32 `json:"micros_per_quarter"`
}

// BPM derives beats per minute from the tempo. Returns 0 for a zero
// tempo rather than dividing by it.
func (t *Tempo) BPM() float64 {
	if t.MicrosPerQuarter == 0 {
		return 0
	}
	return 60_000_000 / float64(t.MicrosPerQuarter)
}

// SMPTEOffset is the 0x54 meta payload.
type SMPTEOffset struct {
	Hour     uint8 `json:"hour"`
	Minute   uint8 `json:"minute"`
	Second   uint8 `json:"second"`
	Frame    uint8 `json:"frame"`
	SubFrame uint8 `json:"sub_frame"`
}

// TimeSignature is the 0x58 meta payload. Denominator is a power of
// two: 2 means a quarter note, 3 an eighth, and so on.
type TimeSignature struct {
	Numerator                   uint8 `json:"numerator"`
	DenominatorPow2             uint8 `json:"denominator_pow2"`
	MetronomeClocks             uint8 `json:"metronome_clocks"`
	ThirtySecondNotesPerQuarter uint8 `json:"thirty_second_notes_per_quarter"`
}

// KeySignature is the 0x59 meta payload. SharpsFlats is signed:
// -7 means seven flats, 0 the key of C, 7 seven sharps.
type KeySignature struct {
	SharpsFlats int8 `json:"sharps_flats"`
	Minor       bool `json:"minor"`
}

// MetaKindForType maps a raw meta type byte onto its MetaKind.
// Unmapped types yield MetaUnknown.
func MetaKindForType(t byte) MetaKind {
	switch t {
	case MetaTypeSequenceNumber:
		return MetaSequenceNumber
	case MetaTypeText:
		return MetaText
	case MetaTypeCopyright:
		return MetaCopyright
	case MetaTypeTrackName:
		return MetaTrackName
	case MetaTypeInstrumentName:
		return MetaInstrumentName
	case MetaTypeLyric:
		return MetaLyric
	case MetaTypeMarker:
		return MetaMarker
	case MetaTypeCuePoint:
		return MetaCuePoint
	case MetaTypeChannelPrefix:
		return MetaChannelPrefix
	case MetaTypeEndOfTrack:
		return MetaEndOfTrack
	case MetaTypeSetTempo:
		return MetaSetTempo
	case MetaTypeSMPTEOffset:
		return MetaSMPTEOffset
	case MetaTypeTimeSignature:
		return MetaTimeSignature
	case MetaTypeKeySignature:
		return MetaKeySignature
	case MetaTypeSequencerSpecific:
		return MetaSequencerSpecific
	default:
		return MetaUnknown
	}
}
