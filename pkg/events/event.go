package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_INDEXED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation every emitter uses.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeDocumentIndexed    = "DOCUMENT_INDEXED"
	TypeIngestionCompleted = "INGESTION_COMPLETED"
)

// NewDocumentIndexed signals that the chunks of one source URL or file
// were embedded and added to a vector store.
func NewDocumentIndexed(source, contentHash, userID string, chunkCount int) Event {
	return BaseEvent{
		Type: TypeDocumentIndexed,
		Data: map[string]interface{}{
			"source":       source,
			"content_hash": contentHash,
			"user_id":      userID,
			"chunk_count":  chunkCount,
		},
		OccurredAt: time.Now(),
	}
}

// NewIngestionCompleted signals the end of a full ingestion run.
func NewIngestionCompleted(userID string, documentsAdded, sourcesSkipped int) Event {
	return BaseEvent{
		Type: TypeIngestionCompleted,
		Data: map[string]interface{}{
			"user_id":         userID,
			"documents_added": documentsAdded,
			"sources_skipped": sourcesSkipped,
		},
		OccurredAt: time.Now(),
	}
}
