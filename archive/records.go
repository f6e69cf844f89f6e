package archive

import (
	"github.com/staccato-io/staccato/types"
)

// RecordKind discriminator values for archived frames.
const (
	RecordKindEvent = "event"
)

// EventRecord is the storage format for one decoded track event.
// Every record carries the decode session identity so archives from
// different runs can share a bucket prefix and still be attributed.
type EventRecord struct {
	// Record discriminator
	RecordKind string `msgpack:"record_kind"`

	// Decode session identity
	DecodeID string `msgpack:"decode_id"`
	Source   string `msgpack:"source"`

	// Event fields
	Track   int    `msgpack:"track"`
	Delta   uint32 `msgpack:"delta"`
	Kind    string `msgpack:"kind"`
	Status  byte   `msgpack:"status"`
	Channel uint8  `msgpack:"channel"`
	Data1   byte   `msgpack:"data1"`
	Data2   byte   `msgpack:"data2"`

	Meta *MetaRecord `msgpack:"meta,omitempty"`
}

// MetaRecord is the storage form of an interpreted meta payload.
// Structured fields are flattened to scalars; kinds without a
// structured interpretation keep the raw payload bytes.
type MetaRecord struct {
	Kind string `msgpack:"kind"`
	Type byte   `msgpack:"type"`

	Text string `msgpack:"text,omitempty"`

	SequenceNumber *uint16 `msgpack:"sequence_number,omitempty"`
	ChannelPrefix  *uint8  `msgpack:"channel_prefix,omitempty"`

	MicrosPerQuarter *uint32 `msgpack:"micros_per_quarter,omitempty"`

	Raw []byte `msgpack:"raw,omitempty"`
}

// NewEventRecord converts a transient decoder event into its storage
// record. The returned record owns its data; it does not alias ev.
func NewEventRecord(meta *types.DecodeMeta, ev *types.Event) *EventRecord {
	rec := &EventRecord{
		RecordKind: RecordKindEvent,
		DecodeID:   meta.DecodeID,
		Source:     meta.Source,
		Track:      ev.Track,
		Delta:      ev.Delta,
		Kind:       string(ev.Kind),
		Status:     ev.Status,
		Channel:    ev.Channel,
		Data1:      ev.Data1,
		Data2:      ev.Data2,
	}
	if ev.Meta != nil {
		rec.Meta = newMetaRecord(ev.Meta)
	}
	return rec
}

func newMetaRecord(meta *types.MetaEvent) *MetaRecord {
	rec := &MetaRecord{
		Kind: string(meta.Kind),
		Type: meta.Type,
		Text: meta.Text,
	}
	if meta.SequenceNumber != nil {
		n := uint16(meta.SequenceNumber.MSB)<<8 | uint16(meta.SequenceNumber.LSB)
		rec.SequenceNumber = &n
	}
	if meta.Kind == types.MetaChannelPrefix {
		prefix := meta.ChannelPrefix
		rec.ChannelPrefix = &prefix
	}
	if meta.Tempo != nil {
		micros := meta.Tempo.MicrosPerQuarter
		rec.MicrosPerQuarter = &micros
	}
	if len(meta.Raw) > 0 {
		rec.Raw = append([]byte(nil), meta.Raw...)
	}
	return rec
}
