package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// GetCurrentEnrollmentQuery requests the current enrollment of a student.
type GetCurrentEnrollmentQuery struct {
	StudentID string
}

// Validate validates the query.
func (q GetCurrentEnrollmentQuery) Validate() error {
	if q.StudentID == "" {
		return shared.NewDomainError("enrollment", "Get", shared.ErrValidation, "student_id is required")
	}
	return nil
}

// CurrentEnrollmentView is the enrollment enriched with catalog details.
// Required subjects are resolved from the major at read time.
type CurrentEnrollmentView struct {
	Enrollment       *enrollment.Enrollment `json:"enrollment"`
	MajorName        string                 `json:"major_name"`
	RequiredSubjects []catalog.Subject      `json:"required_subjects"`
	ElectiveSubjects []catalog.Subject      `json:"elective_subjects"`
}

// GetCurrentEnrollmentHandler handles the GetCurrentEnrollmentQuery.
type GetCurrentEnrollmentHandler struct {
	students    identity.StudentRepository
	catalog     catalog.Repository
	enrollments enrollment.Repository
}

// NewGetCurrentEnrollmentHandler creates a new GetCurrentEnrollmentHandler.
func NewGetCurrentEnrollmentHandler(
	students identity.StudentRepository,
	cat catalog.Repository,
	enrollments enrollment.Repository,
) *GetCurrentEnrollmentHandler {
	return &GetCurrentEnrollmentHandler{students: students, catalog: cat, enrollments: enrollments}
}

// Handle resolves the student's enrollment and its subject details.
func (h *GetCurrentEnrollmentHandler) Handle(ctx context.Context, q GetCurrentEnrollmentQuery) (*CurrentEnrollmentView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.students.ByID(ctx, q.StudentID); err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("enrollment", "Get", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("get_enrollment: resolve student: %w", err)
	}

	enr, err := h.enrollments.ByStudent(ctx, q.StudentID)
	if err != nil {
		if errors.Is(err, enrollment.ErrNotEnrolled) {
			return nil, shared.WrapError("enrollment", "Get", shared.ErrNotFound, "student has no enrollment", err)
		}
		return nil, fmt.Errorf("get_enrollment: resolve enrollment: %w", err)
	}

	major, err := h.catalog.MajorByID(ctx, enr.MajorID)
	if err != nil {
		return nil, fmt.Errorf("get_enrollment: resolve major: %w", err)
	}

	ofMajor, err := h.catalog.SubjectsOfMajor(ctx, enr.MajorID, nil)
	if err != nil {
		return nil, fmt.Errorf("get_enrollment: load major subjects: %w", err)
	}

	electives, err := h.catalog.SubjectsByIDs(ctx, enr.ElectiveSubjectIDs)
	if err != nil {
		return nil, fmt.Errorf("get_enrollment: load electives: %w", err)
	}

	view := &CurrentEnrollmentView{
		Enrollment:       enr,
		MajorName:        major.Name,
		RequiredSubjects: catalog.RequiredSubjects(ofMajor),
		ElectiveSubjects: electives,
	}
	return view, nil
}
