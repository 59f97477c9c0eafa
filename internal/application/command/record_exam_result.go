package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/grading"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD EXAM RESULT COMMAND
// Converts raw points into grade/status/description through the grading
// policy and returns all of them together, so callers can render results
// without recomputation and the stored state can never show a different
// grade for the same points.
// ══════════════════════════════════════════════════════════════════════════════

// RecordExamResultCommand contains the grading input.
type RecordExamResultCommand struct {
	RegistrationID string
	Points         int
}

// Validate validates the command.
func (c RecordExamResultCommand) Validate() error {
	if c.RegistrationID == "" {
		return shared.NewDomainError("exam", "RecordResult", shared.ErrValidation, "registration_id is required")
	}
	if !grading.ValidPoints(c.Points) {
		return shared.NewDomainError("exam", "RecordResult", shared.ErrValidation,
			"points must be between 0 and 100")
	}
	return nil
}

// RecordExamResultResult carries points, derived grade, status and
// description together.
type RecordExamResultResult struct {
	Registration *exam.Registration
	Points       int
	Grade        int
	Status       exam.RegistrationStatus
	Description  string
	Completed    bool
}

// RecordExamResultHandler handles the RecordExamResultCommand.
type RecordExamResultHandler struct {
	exams     exam.Repository
	publisher shared.EventPublisher
}

// NewRecordExamResultHandler creates a new RecordExamResultHandler.
func NewRecordExamResultHandler(exams exam.Repository, publisher shared.EventPublisher) *RecordExamResultHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &RecordExamResultHandler{exams: exams, publisher: publisher}
}

// Handle executes the record-result command.
func (h *RecordExamResultHandler) Handle(ctx context.Context, cmd RecordExamResultCommand) (*RecordExamResultResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	reg, err := h.exams.RegistrationByID(ctx, cmd.RegistrationID)
	if err != nil {
		if errors.Is(err, exam.ErrRegistrationNotFound) {
			return nil, shared.WrapError("exam", "RecordResult", shared.ErrNotFound, "registration not found", err)
		}
		return nil, fmt.Errorf("record_result: resolve registration: %w", err)
	}

	if err := reg.RecordResult(cmd.Points); err != nil {
		return nil, shared.WrapError("exam", "RecordResult", shared.ErrValidation, "record result", err)
	}

	if err := h.exams.UpdateRegistration(ctx, reg); err != nil {
		return nil, shared.WrapError("exam", "RecordResult", shared.ErrInternal, "persist result", err)
	}

	grade := reg.Grade()
	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventExamResultRecorded, reg.ID, map[string]interface{}{
		"student_id": reg.StudentID,
		"exam_id":    reg.ExamID,
		"points":     cmd.Points,
		"grade":      grade,
		"status":     string(reg.Status),
	}))

	return &RecordExamResultResult{
		Registration: reg,
		Points:       cmd.Points,
		Grade:        grade,
		Status:       reg.Status,
		Description:  reg.Description(),
		Completed:    grading.IsPassing(grade),
	}, nil
}
