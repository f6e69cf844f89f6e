package types

import "github.com/google/uuid"

// DecodeMeta identifies one decode session. The decode ID is carried in
// log entries, archive records, and adapter notifications so downstream
// systems can correlate them.
type DecodeMeta struct {
	// DecodeID is a unique identifier for this decode session.
	DecodeID string `json:"decode_id"`
	// Source is the input path or URL the bytes came from.
	Source string `json:"source"`
}

// NewDecodeMeta creates a DecodeMeta with a fresh decode ID.
func NewDecodeMeta(source string) *DecodeMeta {
	return &DecodeMeta{
		DecodeID: uuid.NewString(),
		Source:   source,
	}
}
