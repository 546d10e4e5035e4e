package models

import "time"

// SnapshotVersion is bumped whenever the wire format changes shape.
// Restore refuses documents with a version it does not know.
const SnapshotVersion = 1

// Snapshot is the complete serialized engine state. Every collection is an
// ordered array so replay is deterministic regardless of map iteration
// order; activity records are sorted by staff id before encoding.
// Timestamps travel as RFC 3339 strings via encoding/json.
type Snapshot struct {
	Version  int                    `json:"version"`
	SavedAt  time.Time              `json:"saved_at"`
	Patterns []KnowledgePattern     `json:"patterns"`
	Requests []KnowledgeRequest     `json:"requests"`
	Sessions []CrossTrainingSession `json:"sessions"`
	Activity []ActivityRecord       `json:"activity"`
}
