package archive

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/staccato-io/staccato/types"
)

func testMeta() *types.DecodeMeta {
	return &types.DecodeMeta{DecodeID: "d-123", Source: "song.mid"}
}

func TestFrameRoundTrip(t *testing.T) {
	ev := &types.Event{
		Track: 1, Delta: 96, Kind: types.KindNoteOn,
		Status: 0x91, Channel: 1, Data1: 60, Data2: 0x40,
	}

	frame, err := AppendFrame(nil, NewEventRecord(testMeta(), ev))
	if err != nil {
		t.Fatalf("AppendFrame: %v", err)
	}

	payload, err := NewFrameDecoder(bytes.NewReader(frame)).ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	record, err := DecodeEventRecord(payload)
	if err != nil {
		t.Fatalf("DecodeEventRecord: %v", err)
	}

	if record.DecodeID != "d-123" || record.Source != "song.mid" {
		t.Errorf("session identity = %s/%s", record.DecodeID, record.Source)
	}
	if record.Kind != string(types.KindNoteOn) || record.Data1 != 60 || record.Data2 != 0x40 {
		t.Errorf("record = %+v", record)
	}
	if record.Track != 1 || record.Delta != 96 || record.Channel != 1 {
		t.Errorf("record = %+v", record)
	}
}

func TestFrameRoundTrip_MetaEvent(t *testing.T) {
	ev := &types.Event{
		Kind:   types.KindMeta,
		Status: 0xFF,
		Meta: &types.MetaEvent{
			Kind:  types.MetaSetTempo,
			Type:  0x51,
			Tempo: &types.Tempo{MicrosPerQuarter: 500000},
		},
	}

	frame, err := AppendFrame(nil, NewEventRecord(testMeta(), ev))
	if err != nil {
		t.Fatal(err)
	}
	payload, err := NewFrameDecoder(bytes.NewReader(frame)).ReadFrame()
	if err != nil {
		t.Fatal(err)
	}
	record, err := DecodeEventRecord(payload)
	if err != nil {
		t.Fatal(err)
	}

	if record.Meta == nil || record.Meta.Kind != string(types.MetaSetTempo) {
		t.Fatalf("meta = %+v", record.Meta)
	}
	if record.Meta.MicrosPerQuarter == nil || *record.Meta.MicrosPerQuarter != 500000 {
		t.Errorf("tempo = %+v", record.Meta.MicrosPerQuarter)
	}
}

func TestReadFrame_CleanEOF(t *testing.T) {
	_, err := NewFrameDecoder(bytes.NewReader(nil)).ReadFrame()
	if err != io.EOF {
		t.Errorf("err = %v, want io.EOF", err)
	}
}

func TestReadFrame_PartialIsFatal(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "partial prefix", input: []byte{0x00, 0x00}},
		{name: "partial payload", input: []byte{0x00, 0x00, 0x00, 0x08, 0xAA}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewFrameDecoder(bytes.NewReader(tc.input)).ReadFrame()
			var frameErr *FrameError
			if !errors.As(err, &frameErr) || frameErr.Kind != FrameErrorPartial {
				t.Fatalf("err = %v, want FrameErrorPartial", err)
			}
			if !IsFatalFrameError(err) {
				t.Error("partial frame should be fatal")
			}
		})
	}
}

func TestReadFrame_TooLarge(t *testing.T) {
	var prefix [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], MaxPayloadSize+1)

	_, err := NewFrameDecoder(bytes.NewReader(prefix[:])).ReadFrame()
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != FrameErrorTooLarge {
		t.Fatalf("err = %v, want FrameErrorTooLarge", err)
	}
	if !frameErr.IsFatal() {
		t.Error("oversized frame should be fatal")
	}
}

func TestDecodeEventRecord_Garbage(t *testing.T) {
	_, err := DecodeEventRecord([]byte{0xC1}) // reserved msgpack byte
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != FrameErrorDecode {
		t.Fatalf("err = %v, want FrameErrorDecode", err)
	}
	if frameErr.IsFatal() {
		t.Error("decode errors are scoped to one frame, not fatal")
	}
}

func TestFrameStream_MultipleFrames(t *testing.T) {
	var stream []byte
	for i := 0; i < 3; i++ {
		ev := &types.Event{Kind: types.KindNoteOn, Data1: byte(60 + i)}
		var err error
		stream, err = AppendFrame(stream, NewEventRecord(testMeta(), ev))
		if err != nil {
			t.Fatal(err)
		}
	}

	dec := NewFrameDecoder(bytes.NewReader(stream))
	for i := 0; i < 3; i++ {
		payload, err := dec.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		record, err := DecodeEventRecord(payload)
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if record.Data1 != byte(60+i) {
			t.Errorf("frame %d Data1 = %d", i, record.Data1)
		}
	}
	if _, err := dec.ReadFrame(); err != io.EOF {
		t.Errorf("after last frame: err = %v, want io.EOF", err)
	}
}
