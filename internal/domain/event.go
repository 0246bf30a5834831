package domain

import (
	"encoding/json"
	"time"
)

// EventType defines the type of snapshot lifecycle event.
type EventType string

const (
	// EventSnapshotPublished fires after a new snapshot replaced the old one.
	EventSnapshotPublished EventType = "SNAPSHOT_PUBLISHED"
	// EventReloadRejected fires when a reload produced nothing usable and the
	// previous snapshot was kept.
	EventReloadRejected EventType = "RELOAD_REJECTED"
	// EventDatasetLoadFailed fires once per dataset that degraded to empty.
	EventDatasetLoadFailed EventType = "DATASET_LOAD_FAILED"
)

// DomainEvent represents an immutable lifecycle event.
type DomainEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	Source    string    `json:"source"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// SnapshotPayload describes a published or rejected snapshot.
type SnapshotPayload struct {
	Rows     map[string]int `json:"rows"`
	Failed   []string       `json:"failed,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// ToJSON converts payload to JSON bytes.
func (p SnapshotPayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}

// DatasetFailurePayload names the dataset that failed and why.
type DatasetFailurePayload struct {
	Dataset string `json:"dataset"`
	Reason  string `json:"reason"`
}

// ToJSON converts payload to JSON bytes.
func (p DatasetFailurePayload) ToJSON() ([]byte, error) {
	return json.Marshal(p)
}
