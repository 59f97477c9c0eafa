package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// CancelExamCommand cancels a scheduled exam. Existing registrations stay on
// record; the CANCELLED status stops new ones from being made.
type CancelExamCommand struct {
	ExamID string
}

// Validate validates the command.
func (c CancelExamCommand) Validate() error {
	if c.ExamID == "" {
		return shared.NewDomainError("exam", "Cancel", shared.ErrValidation, "exam_id is required")
	}
	return nil
}

// CancelExamHandler handles the CancelExamCommand.
type CancelExamHandler struct {
	exams     exam.Repository
	publisher shared.EventPublisher
}

// NewCancelExamHandler creates a new CancelExamHandler.
func NewCancelExamHandler(exams exam.Repository, publisher shared.EventPublisher) *CancelExamHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &CancelExamHandler{exams: exams, publisher: publisher}
}

// Handle executes the cancel-exam command. Cancelling an already cancelled
// exam succeeds without publishing another event.
func (h *CancelExamHandler) Handle(ctx context.Context, cmd CancelExamCommand) (*exam.Exam, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	ex, err := h.exams.ExamByID(ctx, cmd.ExamID)
	if err != nil {
		if errors.Is(err, exam.ErrExamNotFound) {
			return nil, shared.WrapError("exam", "Cancel", shared.ErrNotFound, "exam not found", err)
		}
		return nil, fmt.Errorf("cancel_exam: resolve exam: %w", err)
	}
	if ex.Status == exam.StatusCancelled {
		return ex, nil
	}

	if err := ex.Cancel(); err != nil {
		return nil, shared.WrapError("exam", "Cancel", shared.ErrValidation, "exam cannot be cancelled", err)
	}

	if err := h.exams.UpdateExam(ctx, ex); err != nil {
		return nil, shared.WrapError("exam", "Cancel", shared.ErrInternal, "persist exam", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventExamCancelled, ex.ID, map[string]interface{}{
		"subject":      ex.SubjectName,
		"professor_id": ex.ProfessorID,
	}))

	return ex, nil
}
