// Package command contains write operations (CQRS - Commands).
//
// Every handler receives its repositories through the constructor, validates
// the command, performs the centralized existence and conflict checks, and
// publishes domain events on success. Callers never re-implement these
// checks.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL STUDENT COMMAND
// Creates the student's single enrollment: major + academic year + validated
// elective subject set. Required subjects are never copied onto the
// enrollment - they are derived from the major on read.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollStudentCommand contains the data to enroll a student.
type EnrollStudentCommand struct {
	// StudentID is the internal ID of the student.
	StudentID string

	// MajorID is the major to enroll into.
	MajorID string

	// AcademicYear is the free-form enrollment period label.
	AcademicYear string

	// ElectiveSubjectIDs is the chosen elective subject set.
	ElectiveSubjectIDs []string
}

// Validate validates the command.
func (c EnrollStudentCommand) Validate() error {
	if c.StudentID == "" {
		return shared.NewDomainError("enrollment", "Enroll", shared.ErrValidation, "student_id is required")
	}
	if c.MajorID == "" {
		return shared.NewDomainError("enrollment", "Enroll", shared.ErrValidation, "major_id is required")
	}
	if c.AcademicYear == "" {
		return shared.NewDomainError("enrollment", "Enroll", shared.ErrValidation, "academic_year is required")
	}
	return nil
}

// EnrollStudentResult contains the created enrollment.
type EnrollStudentResult struct {
	Enrollment *enrollment.Enrollment
	MajorName  string
}

// EnrollStudentHandler handles the EnrollStudentCommand.
type EnrollStudentHandler struct {
	students    identity.StudentRepository
	catalog     catalog.Repository
	enrollments enrollment.Repository
	publisher   shared.EventPublisher
}

// NewEnrollStudentHandler creates a new EnrollStudentHandler.
func NewEnrollStudentHandler(
	students identity.StudentRepository,
	cat catalog.Repository,
	enrollments enrollment.Repository,
	publisher shared.EventPublisher,
) *EnrollStudentHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &EnrollStudentHandler{
		students:    students,
		catalog:     cat,
		enrollments: enrollments,
		publisher:   publisher,
	}
}

// Handle executes the enroll command.
func (h *EnrollStudentHandler) Handle(ctx context.Context, cmd EnrollStudentCommand) (*EnrollStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.students.ByID(ctx, cmd.StudentID); err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("enrollment", "Enroll", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("enroll: resolve student: %w", err)
	}

	major, err := h.catalog.MajorByID(ctx, cmd.MajorID)
	if err != nil {
		if errors.Is(err, catalog.ErrMajorNotFound) {
			return nil, shared.WrapError("enrollment", "Enroll", shared.ErrNotFound, "major not found", err)
		}
		return nil, fmt.Errorf("enroll: resolve major: %w", err)
	}

	electives, err := h.validateElectives(ctx, major.ID, cmd.ElectiveSubjectIDs)
	if err != nil {
		return nil, err
	}

	enr, err := enrollment.New(uuid.New().String(), cmd.StudentID, major.ID, cmd.AcademicYear, electives)
	if err != nil {
		return nil, shared.WrapError("enrollment", "Enroll", shared.ErrValidation, "invalid enrollment", err)
	}

	// The store's uniqueness constraint on the student decides the race
	// between concurrent enrolls: exactly one commits.
	if err := h.enrollments.Create(ctx, enr); err != nil {
		if errors.Is(err, enrollment.ErrAlreadyEnrolled) {
			return nil, shared.WrapError("enrollment", "Enroll", shared.ErrConflict, "student is already enrolled", err)
		}
		return nil, shared.WrapError("enrollment", "Enroll", shared.ErrInternal, "persist enrollment", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventEnrollmentCreated, enr.ID, map[string]interface{}{
		"student_id":    enr.StudentID,
		"major_id":      enr.MajorID,
		"academic_year": enr.AcademicYear,
		"electives":     len(enr.ElectiveSubjectIDs),
	}))

	return &EnrollStudentResult{Enrollment: enr, MajorName: major.Name}, nil
}

// validateElectives resolves every elective ID and checks it belongs to the
// major. The whole set is validated before any write happens.
func (h *EnrollStudentHandler) validateElectives(ctx context.Context, majorID string, ids []string) ([]string, error) {
	validated := make([]string, 0, len(ids))
	for _, id := range ids {
		subject, err := h.catalog.SubjectByID(ctx, id)
		if err != nil {
			if errors.Is(err, catalog.ErrSubjectNotFound) {
				return nil, shared.WrapError("enrollment", "Enroll", shared.ErrNotFound,
					fmt.Sprintf("elective subject %s not found", id), err)
			}
			return nil, fmt.Errorf("enroll: resolve subject %s: %w", id, err)
		}
		if subject.MajorID != majorID {
			return nil, shared.NewDomainError("enrollment", "Enroll", shared.ErrValidation,
				fmt.Sprintf("subject %s does not belong to the enrolled major", subject.Name))
		}
		validated = append(validated, subject.ID)
	}
	return validated, nil
}
