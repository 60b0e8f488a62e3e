package events

import (
	"time"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventShiftCreated  EventType = "shift_created"
	EventShiftApplied  EventType = "shift_applied"
	EventShiftAssigned EventType = "shift_assigned"
	EventShiftRemoved  EventType = "shift_removed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ShiftID   string      `json:"shift_id"`
	Actor     string      `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ShiftAssignmentPayload accompanies assigned/removed events.
type ShiftAssignmentPayload struct {
	Recipient string               `json:"recipient"`
	Shift     domain.ShiftSnapshot `json:"shift"`
}

// ShiftAppliedPayload accompanies apply events.
type ShiftAppliedPayload struct {
	Applicant string               `json:"applicant"`
	Shift     domain.ShiftSnapshot `json:"shift"`
}
