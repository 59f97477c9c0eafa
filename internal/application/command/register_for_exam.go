package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER FOR EXAM COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// RegisterForExamCommand registers a student for an exam instance.
type RegisterForExamCommand struct {
	StudentID string
	ExamID    string
}

// Validate validates the command.
func (c RegisterForExamCommand) Validate() error {
	if c.StudentID == "" {
		return shared.NewDomainError("exam", "Register", shared.ErrValidation, "student_id is required")
	}
	if c.ExamID == "" {
		return shared.NewDomainError("exam", "Register", shared.ErrValidation, "exam_id is required")
	}
	return nil
}

// RegisterForExamResult contains the created registration.
type RegisterForExamResult struct {
	Registration *exam.Registration
}

// RegisterForExamHandler handles the RegisterForExamCommand.
type RegisterForExamHandler struct {
	students  identity.StudentRepository
	exams     exam.Repository
	publisher shared.EventPublisher

	// now is swappable for deadline tests.
	now func() time.Time
}

// NewRegisterForExamHandler creates a new RegisterForExamHandler.
func NewRegisterForExamHandler(
	students identity.StudentRepository,
	exams exam.Repository,
	publisher shared.EventPublisher,
) *RegisterForExamHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &RegisterForExamHandler{
		students:  students,
		exams:     exams,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Handle executes the registration command.
func (h *RegisterForExamHandler) Handle(ctx context.Context, cmd RegisterForExamCommand) (*RegisterForExamResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.students.ByID(ctx, cmd.StudentID); err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("exam", "Register", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("register_for_exam: resolve student: %w", err)
	}

	ex, err := h.exams.ExamByID(ctx, cmd.ExamID)
	if err != nil {
		if errors.Is(err, exam.ErrExamNotFound) {
			return nil, shared.WrapError("exam", "Register", shared.ErrNotFound, "exam not found", err)
		}
		return nil, fmt.Errorf("register_for_exam: resolve exam: %w", err)
	}

	if !ex.AcceptsRegistrations(h.now()) {
		return nil, shared.WrapError("exam", "Register", shared.ErrValidation,
			"exam does not accept registrations", exam.ErrRegistrationClosed)
	}

	// Best effort: the count and the insert are not atomic, so a concurrent
	// burst can overshoot the capacity by a few seats.
	if ex.Capacity > 0 {
		registered, err := h.exams.CountRegistrations(ctx, cmd.ExamID)
		if err != nil {
			return nil, fmt.Errorf("register_for_exam: count registrations: %w", err)
		}
		if !ex.HasCapacity(registered) {
			return nil, shared.WrapError("exam", "Register", shared.ErrConflict,
				"exam is at capacity", exam.ErrExamFull)
		}
	}

	reg, err := exam.NewRegistration(uuid.New().String(), cmd.StudentID, cmd.ExamID)
	if err != nil {
		return nil, shared.WrapError("exam", "Register", shared.ErrValidation, "invalid registration", err)
	}

	// The unique (student, exam) constraint decides concurrent duplicates.
	if err := h.exams.CreateRegistration(ctx, reg); err != nil {
		if errors.Is(err, exam.ErrAlreadyRegistered) {
			return nil, shared.WrapError("exam", "Register", shared.ErrConflict,
				"student already registered for this exam", err)
		}
		return nil, shared.WrapError("exam", "Register", shared.ErrInternal, "persist registration", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventExamRegistrationMade, reg.ID, map[string]interface{}{
		"student_id": reg.StudentID,
		"exam_id":    reg.ExamID,
	}))

	return &RegisterForExamResult{Registration: reg}, nil
}
