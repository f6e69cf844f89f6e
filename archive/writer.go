package archive

import (
	"context"
	"fmt"
	"sync"

	"github.com/staccato-io/staccato/smf"
	"github.com/staccato-io/staccato/types"
)

// Client stores an archive object under a key. Implementations:
// FileClient (local filesystem), S3Client (S3-compatible object
// storage), StubClient (testing).
type Client interface {
	// Put writes data under key, replacing any existing object.
	Put(ctx context.Context, key string, data []byte) error
	// Close releases client resources.
	Close() error
}

// Writer archives a decoded event stream. It implements smf.Consumer:
// each event is converted to an EventRecord and appended to an
// in-memory frame buffer, which Flush writes to the Client in one
// object. Buffering the whole stream keeps the object write atomic;
// track event streams are small relative to MaxFrameSize.
type Writer struct {
	client Client
	meta   *types.DecodeMeta

	buf    []byte
	events int
}

var _ smf.Consumer = (*Writer)(nil)

// NewWriter creates a Writer archiving to client under the decode
// session's key.
func NewWriter(client Client, meta *types.DecodeMeta) *Writer {
	return &Writer{client: client, meta: meta}
}

// Event appends one event to the pending archive.
func (w *Writer) Event(_ context.Context, ev *types.Event) error {
	buf, err := AppendFrame(w.buf, NewEventRecord(w.meta, ev))
	if err != nil {
		return fmt.Errorf("archive event: %w", err)
	}
	w.buf = buf
	w.events++
	return nil
}

// Events returns the number of events buffered so far.
func (w *Writer) Events() int {
	return w.events
}

// Key returns the object key the archive will be written under.
func (w *Writer) Key() string {
	return fmt.Sprintf("decodes/%s/events.bin", w.meta.DecodeID)
}

// Flush writes the buffered frames to the client. Flushing an empty
// archive is a no-op so decodes with no events leave no object behind.
func (w *Writer) Flush(ctx context.Context) error {
	if len(w.buf) == 0 {
		return nil
	}
	return WrapWriteError(w.client.Put(ctx, w.Key(), w.buf), w.Key())
}

// StubClient records Put calls for testing.
type StubClient struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Closed  bool

	// PutErr, when set, is returned by every Put.
	PutErr error
}

var _ Client = (*StubClient)(nil)

// NewStubClient creates an empty StubClient.
func NewStubClient() *StubClient {
	return &StubClient{Objects: make(map[string][]byte)}
}

// Put implements Client by recording the object.
func (c *StubClient) Put(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.PutErr != nil {
		return c.PutErr
	}
	c.Objects[key] = append([]byte(nil), data...)
	return nil
}

// Close implements Client.
func (c *StubClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Closed = true
	return nil
}
