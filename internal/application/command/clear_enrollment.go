package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ClearEnrollmentCommand removes the student's current enrollment, if any.
// Clearing twice is not an error.
type ClearEnrollmentCommand struct {
	StudentID string
}

// Validate validates the command.
func (c ClearEnrollmentCommand) Validate() error {
	if c.StudentID == "" {
		return shared.NewDomainError("enrollment", "Clear", shared.ErrValidation, "student_id is required")
	}
	return nil
}

// ClearEnrollmentResult reports whether an enrollment existed.
type ClearEnrollmentResult struct {
	Existed bool
}

// ClearEnrollmentHandler handles the ClearEnrollmentCommand.
type ClearEnrollmentHandler struct {
	students    identity.StudentRepository
	enrollments enrollment.Repository
	publisher   shared.EventPublisher
}

// NewClearEnrollmentHandler creates a new ClearEnrollmentHandler.
func NewClearEnrollmentHandler(
	students identity.StudentRepository,
	enrollments enrollment.Repository,
	publisher shared.EventPublisher,
) *ClearEnrollmentHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &ClearEnrollmentHandler{students: students, enrollments: enrollments, publisher: publisher}
}

// Handle executes the clear command.
func (h *ClearEnrollmentHandler) Handle(ctx context.Context, cmd ClearEnrollmentCommand) (*ClearEnrollmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.students.ByID(ctx, cmd.StudentID); err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("enrollment", "Clear", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("clear_enrollment: resolve student: %w", err)
	}

	existed, err := h.enrollments.DeleteByStudent(ctx, cmd.StudentID)
	if err != nil {
		return nil, shared.WrapError("enrollment", "Clear", shared.ErrInternal, "delete enrollment", err)
	}

	if existed {
		_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventEnrollmentCleared, cmd.StudentID, nil))
	}

	return &ClearEnrollmentResult{Existed: existed}, nil
}
