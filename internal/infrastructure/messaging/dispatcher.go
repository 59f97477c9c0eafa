package messaging

import (
	"context"
	"log/slog"

	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS CACHE INVALIDATOR
// ══════════════════════════════════════════════════════════════════════════════

// ReportInvalidator is the slice of the cache the invalidator needs.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, studentID string) error
}

// ProgressInvalidator drops a student's cached progress report whenever an
// event changes the data the report is computed from.
type ProgressInvalidator struct {
	cache  ReportInvalidator
	logger *slog.Logger
}

// NewProgressInvalidator creates a new ProgressInvalidator.
func NewProgressInvalidator(cache ReportInvalidator, logger *slog.Logger) *ProgressInvalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressInvalidator{cache: cache, logger: logger}
}

// Register subscribes the invalidator to every event that feeds the progress
// report.
func (p *ProgressInvalidator) Register(bus *InMemoryEventBus) error {
	eventTypes := []shared.EventType{
		shared.EventEnrollmentCreated,
		shared.EventEnrollmentReplaced,
		shared.EventEnrollmentCleared,
		shared.EventGradeRecorded,
		shared.EventExamResultRecorded,
	}

	for _, eventType := range eventTypes {
		if err := bus.Subscribe(eventType, shared.EventHandlerFunc(p.Handle)); err != nil {
			return err
		}
	}
	return nil
}

// Handle implements shared.EventHandler.
func (p *ProgressInvalidator) Handle(ctx context.Context, event shared.Event) error {
	studentID := studentIDFromEvent(event)
	if studentID == "" {
		return nil
	}

	if err := p.cache.Invalidate(ctx, studentID); err != nil {
		return err
	}

	p.logger.Debug("invalidated progress cache",
		"student_id", studentID,
		"event_type", event.EventType(),
	)
	return nil
}

// studentIDFromEvent pulls the student ID out of the event payload. The
// enrollment.cleared event carries the student ID as its aggregate ID.
func studentIDFromEvent(event shared.Event) string {
	if event.EventType() == shared.EventEnrollmentCleared {
		return event.AggregateID()
	}

	payload := event.Payload()
	if payload == nil {
		return ""
	}
	if id, ok := payload["student_id"].(string); ok {
		return id
	}
	return ""
}

// ══════════════════════════════════════════════════════════════════════════════
// AUDIT LOGGER
// ══════════════════════════════════════════════════════════════════════════════

// AuditLogger logs every published event. It subscribes to all events and is
// the cheapest possible audit trail for a single-instance deployment.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new AuditLogger.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{logger: logger}
}

// Register subscribes the audit logger to all events.
func (a *AuditLogger) Register(bus *InMemoryEventBus) error {
	return bus.SubscribeAll(shared.EventHandlerFunc(a.Handle))
}

// Handle implements shared.EventHandler.
func (a *AuditLogger) Handle(_ context.Context, event shared.Event) error {
	a.logger.Info("domain event",
		"event_type", event.EventType(),
		"aggregate_id", event.AggregateID(),
		"occurred_at", event.OccurredAt(),
	)
	return nil
}
