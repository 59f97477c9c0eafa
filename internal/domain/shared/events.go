package shared

import (
	"context"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event represents something significant that
// happened in the academic domain. Events are informational; no write path
// depends on a subscriber having run.
const (
	// Identity events
	EventPersonRegistered EventType = "person.registered"

	// Enrollment events
	EventEnrollmentCreated  EventType = "enrollment.created"
	EventEnrollmentReplaced EventType = "enrollment.replaced"
	EventEnrollmentCleared  EventType = "enrollment.cleared"

	// Exam events
	EventExamScheduled          EventType = "exam.scheduled"
	EventExamUpdated            EventType = "exam.updated"
	EventExamCancelled          EventType = "exam.cancelled"
	EventExamRegistrationMade   EventType = "exam.registration_created"
	EventRegistrationWithdrawn  EventType = "exam.registration_withdrawn"
	EventExamResultRecorded     EventType = "exam.result_recorded"

	// Gradebook events
	EventGradeRecorded EventType = "grade.recorded"

	// Professor events
	EventProfessorSetupCompleted EventType = "professor.setup_completed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType              `json:"type"`
	Timestamp   time.Time              `json:"timestamp"`
	AggregateId string                 `json:"aggregate_id"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
		Data:        data,
	}
}

// EventType implements Event.
func (e BaseEvent) EventType() EventType { return e.Type }

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// AggregateID implements Event.
func (e BaseEvent) AggregateID() string { return e.AggregateId }

// Payload implements Event.
func (e BaseEvent) Payload() map[string]interface{} { return e.Data }

// EventHandler processes a single event.
type EventHandler interface {
	Handle(ctx context.Context, event Event) error
}

// EventHandlerFunc adapts a function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event Event) error

// Handle implements EventHandler.
func (f EventHandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// EventPublisher publishes domain events to interested subscribers.
// Implementations live in infrastructure/messaging.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

// NopPublisher discards all events. Useful for tests and tools that do not
// care about notifications.
type NopPublisher struct{}

// Publish implements EventPublisher.
func (NopPublisher) Publish(ctx context.Context, events ...Event) error { return nil }
