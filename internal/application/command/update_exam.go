package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE EXAM COMMAND
// Replaces the mutable fields of a scheduled exam: time, classroom, capacity,
// deadline and lifecycle status. A cancelled exam is terminal and cannot be
// rescheduled; cancellation itself goes through CancelExamCommand.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateExamCommand carries the new exam schedule.
type UpdateExamCommand struct {
	ExamID               string
	ExamTime             time.Time
	Classroom            string
	Capacity             int
	RegistrationDeadline time.Time

	// Status optionally moves the exam to another lifecycle state
	// (for example COMPLETED once results are in). Empty keeps the
	// current status.
	Status string
}

// Validate validates the command.
func (c UpdateExamCommand) Validate() error {
	if c.ExamID == "" {
		return shared.NewDomainError("exam", "Update", shared.ErrValidation, "exam_id is required")
	}
	if c.ExamTime.IsZero() {
		return shared.NewDomainError("exam", "Update", shared.ErrValidation, "exam time is required")
	}
	if c.Capacity < 0 {
		return shared.NewDomainError("exam", "Update", shared.ErrValidation, "capacity cannot be negative")
	}
	if c.Status != "" && !exam.Status(c.Status).IsValid() {
		return shared.NewDomainError("exam", "Update", shared.ErrValidation, "unknown exam status")
	}
	if exam.Status(c.Status) == exam.StatusCancelled {
		return shared.NewDomainError("exam", "Update", shared.ErrValidation, "use the cancel operation to cancel an exam")
	}
	return nil
}

// UpdateExamHandler handles the UpdateExamCommand.
type UpdateExamHandler struct {
	exams     exam.Repository
	publisher shared.EventPublisher
}

// NewUpdateExamHandler creates a new UpdateExamHandler.
func NewUpdateExamHandler(exams exam.Repository, publisher shared.EventPublisher) *UpdateExamHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &UpdateExamHandler{exams: exams, publisher: publisher}
}

// Handle executes the update-exam command.
func (h *UpdateExamHandler) Handle(ctx context.Context, cmd UpdateExamCommand) (*exam.Exam, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ex, err := h.exams.ExamByID(ctx, cmd.ExamID)
	if err != nil {
		if errors.Is(err, exam.ErrExamNotFound) {
			return nil, shared.WrapError("exam", "Update", shared.ErrNotFound, "exam not found", err)
		}
		return nil, fmt.Errorf("update_exam: resolve exam: %w", err)
	}
	if ex.Status == exam.StatusCancelled {
		return nil, shared.WrapError("exam", "Update", shared.ErrValidation,
			"cancelled exam cannot be updated", exam.ErrExamNotUpdatable)
	}

	ex.ExamTime = cmd.ExamTime
	ex.Classroom = cmd.Classroom
	ex.Capacity = cmd.Capacity
	ex.RegistrationDeadline = cmd.RegistrationDeadline
	if cmd.Status != "" {
		ex.Status = exam.Status(cmd.Status)
	}

	if err := h.exams.UpdateExam(ctx, ex); err != nil {
		if errors.Is(err, exam.ErrExamNotFound) {
			return nil, shared.WrapError("exam", "Update", shared.ErrNotFound, "exam not found", err)
		}
		return nil, shared.WrapError("exam", "Update", shared.ErrInternal, "persist exam", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventExamUpdated, ex.ID, map[string]interface{}{
		"subject":   ex.SubjectName,
		"exam_time": ex.ExamTime,
		"status":    string(ex.Status),
	}))

	return ex, nil
}
