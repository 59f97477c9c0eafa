package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// CreateExamCommand schedules a new exam instance for a subject.
type CreateExamCommand struct {
	SubjectName          string
	ProfessorID          string
	ExamTime             time.Time
	Classroom            string
	Capacity             int
	RegistrationDeadline time.Time
}

// Validate validates the command.
func (c CreateExamCommand) Validate() error {
	if c.SubjectName == "" {
		return shared.NewDomainError("exam", "Create", shared.ErrValidation, "subject name is required")
	}
	if c.ProfessorID == "" {
		return shared.NewDomainError("exam", "Create", shared.ErrValidation, "professor_id is required")
	}
	if c.ExamTime.IsZero() {
		return shared.NewDomainError("exam", "Create", shared.ErrValidation, "exam time is required")
	}
	if c.Capacity < 0 {
		return shared.NewDomainError("exam", "Create", shared.ErrValidation, "capacity cannot be negative")
	}
	return nil
}

// CreateExamHandler handles the CreateExamCommand.
type CreateExamHandler struct {
	professors identity.ProfessorRepository
	catalog    catalog.Repository
	exams      exam.Repository
	publisher  shared.EventPublisher
}

// NewCreateExamHandler creates a new CreateExamHandler.
func NewCreateExamHandler(
	professors identity.ProfessorRepository,
	cat catalog.Repository,
	exams exam.Repository,
	publisher shared.EventPublisher,
) *CreateExamHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &CreateExamHandler{professors: professors, catalog: cat, exams: exams, publisher: publisher}
}

// Handle executes the create-exam command.
func (h *CreateExamHandler) Handle(ctx context.Context, cmd CreateExamCommand) (*exam.Exam, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.professors.ByID(ctx, cmd.ProfessorID); err != nil {
		if errors.Is(err, identity.ErrProfessorNotFound) {
			return nil, shared.WrapError("exam", "Create", shared.ErrNotFound, "professor not found", err)
		}
		return nil, fmt.Errorf("create_exam: resolve professor: %w", err)
	}

	// Exams reference their subject by name; the name must exist in the
	// catalog so listings never point at a phantom subject.
	if _, err := h.catalog.SubjectByName(ctx, cmd.SubjectName); err != nil {
		if errors.Is(err, catalog.ErrSubjectNotFound) {
			return nil, shared.WrapError("exam", "Create", shared.ErrNotFound, "subject not found", err)
		}
		return nil, fmt.Errorf("create_exam: resolve subject: %w", err)
	}

	ex, err := exam.NewExam(uuid.New().String(), cmd.SubjectName, cmd.ProfessorID, cmd.ExamTime, cmd.Classroom)
	if err != nil {
		return nil, shared.WrapError("exam", "Create", shared.ErrValidation, "invalid exam", err)
	}
	ex.Capacity = cmd.Capacity
	ex.RegistrationDeadline = cmd.RegistrationDeadline

	if err := h.exams.CreateExam(ctx, ex); err != nil {
		return nil, shared.WrapError("exam", "Create", shared.ErrInternal, "persist exam", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventExamScheduled, ex.ID, map[string]interface{}{
		"subject":      ex.SubjectName,
		"professor_id": ex.ProfessorID,
		"exam_time":    ex.ExamTime,
	}))

	return ex, nil
}
