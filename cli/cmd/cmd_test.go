package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/staccato-io/staccato/cli/config"
	"github.com/staccato-io/staccato/notes"
	"github.com/staccato-io/staccato/types"
)

func newTestContext(t *testing.T, args []string, flagValues map[string]string) *cli.Context {
	t.Helper()

	app := cli.NewApp()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String("format", "", "")
	fs.Bool("no-color", false, "")
	fs.Bool("tui", false, "")
	fs.String("config", "", "")
	fs.Bool("strict-length", false, "")
	fs.Bool("fold-zero-velocity", false, "")
	fs.Bool("verbose", false, "")
	fs.Bool("stats", false, "")
	fs.String("out", "", "")
	fs.String("s3", "", "")
	fs.String("region", "", "")
	fs.String("endpoint", "", "")
	fs.Bool("s3-path-style", false, "")

	for name, val := range flagValues {
		if err := fs.Set(name, val); err != nil {
			t.Fatalf("failed to set flag %s: %v", name, err)
		}
	}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse args: %v", err)
	}

	return cli.NewContext(app, fs, nil)
}

// writeTestSMF writes a single-track file with one note on, one note
// off, and an end-of-track event.
func writeTestSMF(t *testing.T) string {
	t.Helper()

	track := []byte{
		0x00, 0x90, 0x3C, 0x40,
		0x10, 0x80, 0x3C, 0x00,
		0x00, 0xFF, 0x2F, 0x00,
	}

	var buf bytes.Buffer
	buf.WriteString("MThd")
	buf.Write([]byte{0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x00, 0x60})
	buf.WriteString("MTrk")
	buf.Write([]byte{0x00, 0x00, 0x00, byte(len(track))})
	buf.Write(track)

	path := filepath.Join(t.TempDir(), "test.mid")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write test file: %v", err)
	}
	return path
}

func TestReadOnlyFlags_IncludesTUI(t *testing.T) {
	hasTUI := false
	for _, f := range ReadOnlyFlags() {
		if f.Names()[0] == "tui" {
			hasTUI = true
			break
		}
	}
	if !hasTUI {
		t.Error("ReadOnlyFlags should include --tui flag for explicit error handling")
	}
}

func TestDecodeFlags_IncludeDecodeOptions(t *testing.T) {
	want := map[string]bool{
		"config":             false,
		"strict-length":      false,
		"fold-zero-velocity": false,
		"verbose":            false,
	}
	for _, f := range DecodeFlags() {
		if _, ok := want[f.Names()[0]]; ok {
			want[f.Names()[0]] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("DecodeFlags missing --%s", name)
		}
	}
}

func TestInputMeta_RequiresArgument(t *testing.T) {
	c := newTestContext(t, nil, nil)

	_, err := inputMeta(c)
	if err == nil {
		t.Fatal("expected error for missing argument")
	}

	var coder cli.ExitCoder
	if !errors.As(err, &coder) {
		t.Fatalf("expected cli.ExitCoder, got %T", err)
	}
	if coder.ExitCode() != exitUsage {
		t.Errorf("exit code = %d, want %d", coder.ExitCode(), exitUsage)
	}
}

func TestInputMeta_SetsSource(t *testing.T) {
	c := newTestContext(t, []string{"song.mid"}, nil)

	meta, err := inputMeta(c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Source != "song.mid" {
		t.Errorf("Source = %q, want song.mid", meta.Source)
	}
	if meta.DecodeID == "" {
		t.Error("expected non-empty DecodeID")
	}
}

func TestDecodeFile_Session(t *testing.T) {
	path := writeTestSMF(t)
	c := newTestContext(t, []string{path}, nil)

	meta, err := inputMeta(c)
	if err != nil {
		t.Fatalf("inputMeta: %v", err)
	}

	collector := &rowCollector{}
	sess, err := decodeFile(c, meta, collector)
	if err != nil {
		t.Fatalf("decodeFile: %v", err)
	}

	if sess.Result.Header.TrackCount != 1 {
		t.Errorf("TrackCount = %d, want 1", sess.Result.Header.TrackCount)
	}
	if len(sess.Result.TrackErrors) != 0 {
		t.Errorf("unexpected track errors: %v", sess.Result.TrackErrors)
	}
	if len(collector.rows) != 3 {
		t.Fatalf("expected 3 event rows, got %d", len(collector.rows))
	}
	if collector.rows[0].Kind != string(types.KindNoteOn) {
		t.Errorf("first row kind = %q, want note_on", collector.rows[0].Kind)
	}
	if got := sess.Metrics.Snapshot().EventsDecoded; got != 3 {
		t.Errorf("EventsDecoded = %d, want 3", got)
	}
}

func TestDecodeFile_MissingFile(t *testing.T) {
	c := newTestContext(t, []string{"/nonexistent/file.mid"}, nil)

	meta, err := inputMeta(c)
	if err != nil {
		t.Fatalf("inputMeta: %v", err)
	}

	_, err = decodeFile(c, meta)
	var coder cli.ExitCoder
	if !errors.As(err, &coder) {
		t.Fatalf("expected cli.ExitCoder, got %v", err)
	}
	if coder.ExitCode() != exitUnreadable {
		t.Errorf("exit code = %d, want %d", coder.ExitCode(), exitUnreadable)
	}
}

func TestDecodeFile_NotSMF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bogus.mid")
	if err := os.WriteFile(path, []byte("RIFF....not a midi file"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	c := newTestContext(t, []string{path}, nil)

	meta, err := inputMeta(c)
	if err != nil {
		t.Fatalf("inputMeta: %v", err)
	}

	_, err = decodeFile(c, meta)
	var coder cli.ExitCoder
	if !errors.As(err, &coder) {
		t.Fatalf("expected cli.ExitCoder, got %v", err)
	}
	if coder.ExitCode() != exitStructural {
		t.Errorf("exit code = %d, want %d", coder.ExitCode(), exitStructural)
	}
}

func TestEventDetail(t *testing.T) {
	tests := []struct {
		name string
		ev   types.Event
		want string
	}{
		{
			name: "note on",
			ev:   types.Event{Kind: types.KindNoteOn, Channel: 1, Data1: 60, Data2: 64},
			want: "channel=1 note=60 velocity=64",
		},
		{
			name: "controller",
			ev:   types.Event{Kind: types.KindController, Channel: 0, Data1: 7, Data2: 100},
			want: "channel=0 controller=7 value=100",
		},
		{
			name: "program change",
			ev:   types.Event{Kind: types.KindProgramChange, Channel: 9, Data1: 5},
			want: "channel=9 program=5",
		},
		{
			name: "pitch bend combines data bytes",
			ev:   types.Event{Kind: types.KindPitchBend, Channel: 2, Data1: 0x01, Data2: 0x40},
			want: "channel=2 value=8193",
		},
		{
			name: "status error",
			ev:   types.Event{Kind: types.KindStatusError, Status: 0xF3},
			want: "status=0xF3",
		},
		{
			name: "sysex has no detail",
			ev:   types.Event{Kind: types.KindSysexBegin},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eventDetail(&tt.ev); got != tt.want {
				t.Errorf("eventDetail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetaDetail(t *testing.T) {
	tests := []struct {
		name string
		meta *types.MetaEvent
		want string
	}{
		{
			name: "nil meta",
			meta: nil,
			want: "",
		},
		{
			name: "tempo",
			meta: &types.MetaEvent{
				Kind:  types.MetaSetTempo,
				Tempo: &types.Tempo{MicrosPerQuarter: 500000},
			},
			want: "set_tempo micros_per_quarter=500000 bpm=120.0",
		},
		{
			name: "time signature",
			meta: &types.MetaEvent{
				Kind:          types.MetaTimeSignature,
				TimeSignature: &types.TimeSignature{Numerator: 6, DenominatorPow2: 3},
			},
			want: "time_signature 6/8",
		},
		{
			name: "key signature",
			meta: &types.MetaEvent{
				Kind:         types.MetaKeySignature,
				KeySignature: &types.KeySignature{SharpsFlats: -3, Minor: true},
			},
			want: "key_signature sharps_flats=-3 minor=true",
		},
		{
			name: "track name",
			meta: &types.MetaEvent{Kind: types.MetaTrackName, Text: "piano"},
			want: `track_name "piano"`,
		},
		{
			name: "end of track",
			meta: &types.MetaEvent{Kind: types.MetaEndOfTrack},
			want: "end_of_track",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := metaDetail(tt.meta); got != tt.want {
				t.Errorf("metaDetail = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNotesView(t *testing.T) {
	collector := notes.NewCollector()
	ctx := context.Background()
	events := []types.Event{
		{Track: 0, Kind: types.KindNoteOn, Data1: 60},
		{Track: 0, Kind: types.KindNoteOff, Data1: 60},
		{Track: 1, Kind: types.KindNoteOn, Data1: 69},
	}
	for i := range events {
		if err := collector.Event(ctx, &events[i]); err != nil {
			t.Fatalf("collect: %v", err)
		}
	}

	view := notesView("song.mid", collector)
	if view.Source != "song.mid" {
		t.Errorf("Source = %q", view.Source)
	}
	if len(view.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(view.Tracks))
	}
	if len(view.Tracks[0].Notes) != 2 {
		t.Errorf("track 0 notes = %d, want 2", len(view.Tracks[0].Notes))
	}
	if view.Tracks[0].Notes[0].NoteNumber != 60 || !view.Tracks[0].Notes[0].On {
		t.Errorf("track 0 first note = %+v", view.Tracks[0].Notes[0])
	}
	if view.Tracks[1].Notes[0].NoteNumber != 69 {
		t.Errorf("track 1 first note = %+v", view.Tracks[1].Notes[0])
	}
}

func TestNewArchiveClient_MutuallyExclusive(t *testing.T) {
	c := newTestContext(t, nil, map[string]string{"out": "/tmp", "s3": "bucket"})

	_, _, err := newArchiveClient(c, &config.Config{})
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("expected mutual exclusion error, got %v", err)
	}
}

func TestNewArchiveClient_RequiresDestination(t *testing.T) {
	c := newTestContext(t, nil, nil)

	_, _, err := newArchiveClient(c, &config.Config{})
	if err == nil || !strings.Contains(err.Error(), "destination") {
		t.Errorf("expected destination error, got %v", err)
	}
}

func TestNewArchiveClient_FileBackend(t *testing.T) {
	dir := t.TempDir()
	c := newTestContext(t, nil, map[string]string{"out": dir})

	client, archivePath, err := newArchiveClient(c, &config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if archivePath != "file://"+dir {
		t.Errorf("archivePath = %q", archivePath)
	}
}

func TestNewArchiveClient_ConfigFallback(t *testing.T) {
	dir := t.TempDir()
	c := newTestContext(t, nil, nil)
	cfg := &config.Config{}
	cfg.Archive.Backend = "file"
	cfg.Archive.Path = dir

	client, archivePath, err := newArchiveClient(c, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if archivePath != "file://"+dir {
		t.Errorf("archivePath = %q", archivePath)
	}
}

func TestNewAdapter_UnknownType(t *testing.T) {
	_, err := newAdapter(config.AdapterConfig{Type: "kafka"})
	if err == nil || !strings.Contains(err.Error(), "unknown adapter type") {
		t.Errorf("expected unknown type error, got %v", err)
	}
}

func TestNewAdapter_WebhookRequiresURL(t *testing.T) {
	_, err := newAdapter(config.AdapterConfig{Type: "webhook"})
	if err == nil {
		t.Error("expected error for missing URL")
	}
}

func TestNewAdapter_Webhook(t *testing.T) {
	a, err := newAdapter(config.AdapterConfig{Type: "webhook", URL: "http://localhost/hook"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = a.Close()
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "a", "b"); got != "a" {
		t.Errorf("firstNonEmpty = %q, want a", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
