package events

import "time"

// Event codes published on the bus
const (
	MashupGenerated  = "MASHUP_GENERATED"
	SessionCompleted = "SESSION_COMPLETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MASHUP_GENERATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the standard Event implementation.
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

// NewMashupGenerated builds the event emitted after a pipeline run finishes
func NewMashupGenerated(sessionID, title string, qualityScore float64, fallbackUsed bool) BaseEvent {
	return BaseEvent{
		Type: MashupGenerated,
		Data: map[string]interface{}{
			"session_id":    sessionID,
			"title":         title,
			"quality_score": qualityScore,
			"fallback_used": fallbackUsed,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionCompleted marks a conversation whose mashup has been generated
func NewSessionCompleted(sessionID string) BaseEvent {
	return BaseEvent{
		Type: SessionCompleted,
		Data: map[string]interface{}{
			"session_id": sessionID,
		},
		OccurredAt: time.Now(),
	}
}
