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
// REPLACE ENROLLMENT COMMAND
// Atomically swaps the student's enrollment for a new one. Either the student
// ends with the new set fully persisted, or with the original set intact -
// a failure partway (e.g. one invalid subject id) aborts the whole
// replacement.
// ══════════════════════════════════════════════════════════════════════════════

// ReplaceEnrollmentCommand contains the data for the replacement.
type ReplaceEnrollmentCommand struct {
	// StudentID is the internal ID of the student.
	StudentID string

	// MajorName is the major, looked up by its unique name.
	MajorName string

	// AcademicYear is the enrollment period label.
	AcademicYear string

	// SubjectIDs is the new elective subject set.
	SubjectIDs []string
}

// Validate validates the command.
func (c ReplaceEnrollmentCommand) Validate() error {
	if c.StudentID == "" {
		return shared.NewDomainError("enrollment", "Replace", shared.ErrValidation, "student_id is required")
	}
	if c.MajorName == "" {
		return shared.NewDomainError("enrollment", "Replace", shared.ErrValidation, "major name is required")
	}
	if c.AcademicYear == "" {
		return shared.NewDomainError("enrollment", "Replace", shared.ErrValidation, "academic_year is required")
	}
	return nil
}

// ReplaceEnrollmentResult summarizes the replacement.
type ReplaceEnrollmentResult struct {
	Enrollment *enrollment.Enrollment
	MajorName  string
	Replaced   bool // whether a previous enrollment existed
}

// ReplaceEnrollmentHandler handles the ReplaceEnrollmentCommand.
type ReplaceEnrollmentHandler struct {
	students    identity.StudentRepository
	catalog     catalog.Repository
	enrollments enrollment.Repository
	publisher   shared.EventPublisher
}

// NewReplaceEnrollmentHandler creates a new ReplaceEnrollmentHandler.
func NewReplaceEnrollmentHandler(
	students identity.StudentRepository,
	cat catalog.Repository,
	enrollments enrollment.Repository,
	publisher shared.EventPublisher,
) *ReplaceEnrollmentHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &ReplaceEnrollmentHandler{
		students:    students,
		catalog:     cat,
		enrollments: enrollments,
		publisher:   publisher,
	}
}

// Handle executes the replace command.
func (h *ReplaceEnrollmentHandler) Handle(ctx context.Context, cmd ReplaceEnrollmentCommand) (*ReplaceEnrollmentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.students.ByID(ctx, cmd.StudentID); err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("enrollment", "Replace", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("replace_enrollment: resolve student: %w", err)
	}

	major, err := h.catalog.MajorByName(ctx, cmd.MajorName)
	if err != nil {
		if errors.Is(err, catalog.ErrMajorNotFound) {
			return nil, shared.WrapError("enrollment", "Replace", shared.ErrNotFound,
				fmt.Sprintf("major %q not found", cmd.MajorName), err)
		}
		return nil, fmt.Errorf("replace_enrollment: resolve major: %w", err)
	}

	// Validate the complete subject set before touching storage so an
	// invalid id can never leave the student half-replaced.
	subjects, err := h.catalog.SubjectsByIDs(ctx, cmd.SubjectIDs)
	if err != nil {
		return nil, fmt.Errorf("replace_enrollment: resolve subjects: %w", err)
	}
	if len(subjects) != len(dedupe(cmd.SubjectIDs)) {
		return nil, shared.NewDomainError("enrollment", "Replace", shared.ErrNotFound,
			"one or more subject ids do not exist")
	}
	for _, s := range subjects {
		if s.MajorID != major.ID {
			return nil, shared.NewDomainError("enrollment", "Replace", shared.ErrValidation,
				fmt.Sprintf("subject %s does not belong to major %s", s.Name, major.Name))
		}
	}

	previous, err := h.enrollments.ByStudent(ctx, cmd.StudentID)
	if err != nil && !errors.Is(err, enrollment.ErrNotEnrolled) {
		return nil, fmt.Errorf("replace_enrollment: read current enrollment: %w", err)
	}

	enr, err := enrollment.New(uuid.New().String(), cmd.StudentID, major.ID, cmd.AcademicYear, cmd.SubjectIDs)
	if err != nil {
		return nil, shared.WrapError("enrollment", "Replace", shared.ErrValidation, "invalid enrollment", err)
	}

	// Delete-all + insert-all runs as one transaction in the repository.
	if err := h.enrollments.Replace(ctx, enr); err != nil {
		return nil, shared.WrapError("enrollment", "Replace", shared.ErrInternal, "replace enrollment", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventEnrollmentReplaced, enr.ID, map[string]interface{}{
		"student_id": enr.StudentID,
		"major_id":   enr.MajorID,
		"replaced":   previous != nil,
	}))

	return &ReplaceEnrollmentResult{
		Enrollment: enr,
		MajorName:  major.Name,
		Replaced:   previous != nil,
	}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
