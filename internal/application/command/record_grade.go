package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
	"github.com/faculty-hub/faculty-hub/internal/domain/grading"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD GRADE COMMAND
// Upserts the coursework grade for a (student, subject) pair. A second
// submission for the same pair updates the stored points instead of adding a
// historical row.
// ══════════════════════════════════════════════════════════════════════════════

// RecordGradeCommand contains the grading input.
type RecordGradeCommand struct {
	StudentID   string
	SubjectID   string
	ProfessorID string
	Points      int
}

// Validate validates the command.
func (c RecordGradeCommand) Validate() error {
	if c.StudentID == "" || c.SubjectID == "" || c.ProfessorID == "" {
		return shared.NewDomainError("gradebook", "Record", shared.ErrValidation,
			"student_id, subject_id and professor_id are required")
	}
	if !grading.ValidPoints(c.Points) {
		return shared.NewDomainError("gradebook", "Record", shared.ErrValidation,
			"points must be between 0 and 100")
	}
	return nil
}

// RecordGradeResult contains the stored grade with its derived views.
type RecordGradeResult struct {
	Grade       *gradebook.Grade
	Value       int
	Passed      bool
	Description string

	// Updated is true when an earlier grade for the pair was overwritten.
	Updated bool
}

// RecordGradeHandler handles the RecordGradeCommand.
type RecordGradeHandler struct {
	students   identity.StudentRepository
	professors identity.ProfessorRepository
	catalog    catalog.Repository
	grades     gradebook.Repository
	publisher  shared.EventPublisher
}

// NewRecordGradeHandler creates a new RecordGradeHandler.
func NewRecordGradeHandler(
	students identity.StudentRepository,
	professors identity.ProfessorRepository,
	cat catalog.Repository,
	grades gradebook.Repository,
	publisher shared.EventPublisher,
) *RecordGradeHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &RecordGradeHandler{
		students:   students,
		professors: professors,
		catalog:    cat,
		grades:     grades,
		publisher:  publisher,
	}
}

// Handle executes the record-grade command.
func (h *RecordGradeHandler) Handle(ctx context.Context, cmd RecordGradeCommand) (*RecordGradeResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.students.ByID(ctx, cmd.StudentID); err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("gradebook", "Record", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("record_grade: resolve student: %w", err)
	}
	if _, err := h.professors.ByID(ctx, cmd.ProfessorID); err != nil {
		if errors.Is(err, identity.ErrProfessorNotFound) {
			return nil, shared.WrapError("gradebook", "Record", shared.ErrNotFound, "professor not found", err)
		}
		return nil, fmt.Errorf("record_grade: resolve professor: %w", err)
	}
	if _, err := h.catalog.SubjectByID(ctx, cmd.SubjectID); err != nil {
		if errors.Is(err, catalog.ErrSubjectNotFound) {
			return nil, shared.WrapError("gradebook", "Record", shared.ErrNotFound, "subject not found", err)
		}
		return nil, fmt.Errorf("record_grade: resolve subject: %w", err)
	}

	grade, err := gradebook.New(uuid.New().String(), cmd.StudentID, cmd.SubjectID, cmd.ProfessorID, cmd.Points)
	if err != nil {
		return nil, shared.WrapError("gradebook", "Record", shared.ErrValidation, "invalid grade", err)
	}

	updated := true
	if _, err := h.grades.ByStudentAndSubject(ctx, cmd.StudentID, cmd.SubjectID); err != nil {
		if !errors.Is(err, gradebook.ErrGradeNotFound) {
			return nil, fmt.Errorf("record_grade: load existing grade: %w", err)
		}
		updated = false
	}

	if err := h.grades.Upsert(ctx, grade); err != nil {
		return nil, shared.WrapError("gradebook", "Record", shared.ErrInternal, "persist grade", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventGradeRecorded, grade.ID, map[string]interface{}{
		"student_id": grade.StudentID,
		"subject_id": grade.SubjectID,
		"points":     grade.Points,
		"grade":      grade.Value(),
	}))

	return &RecordGradeResult{
		Grade:       grade,
		Value:       grade.Value(),
		Passed:      grade.Passed(),
		Description: grade.Description(),
		Updated:     updated,
	}, nil
}
