// Package adapter defines the notification boundary for finished
// decodes.
//
// Adapters publish decode completion events to downstream systems.
// The CLI owns adapter lifecycle; users provide configuration only.
package adapter

import "context"

// EventTypeDecodeCompleted is the EventType value for completion events.
const EventTypeDecodeCompleted = "decode_completed"

// Outcome values for DecodeCompletedEvent.
const (
	// OutcomeSuccess means every track decoded to completion.
	OutcomeSuccess = "success"
	// OutcomePartial means at least one track failed but the decode
	// as a whole produced results.
	OutcomePartial = "partial"
)

// DecodeCompletedEvent is the payload published when a decode finishes.
type DecodeCompletedEvent struct {
	EventType    string `json:"event_type"` // always "decode_completed"
	DecodeID     string `json:"decode_id"`
	Source       string `json:"source"`
	Outcome      string `json:"outcome"` // success, partial
	Format       uint16 `json:"format"`
	TrackCount   uint16 `json:"track_count"`
	EventCount   int64  `json:"event_count"`
	NoteCount    int64  `json:"note_count"`
	FailedTracks int    `json:"failed_tracks"`
	ArchivePath  string `json:"archive_path,omitempty"`
	Timestamp    string `json:"timestamp"` // ISO 8601
	DurationMs   int64  `json:"duration_ms"`
}

// Adapter publishes decode completion events to a downstream system.
// Implementations must be safe for single-use per decode.
type Adapter interface {
	// Publish sends a decode completion event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *DecodeCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}
