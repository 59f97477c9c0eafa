package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

func TestGetCurrentEnrollment_Success(t *testing.T) {
	f := newProgressFixture(t)
	f.enroll(t, f.elective.ID)

	h := NewGetCurrentEnrollmentHandler(f.students, f.catalog, f.enrollments)
	view, err := h.Handle(context.Background(), GetCurrentEnrollmentQuery{StudentID: "student-1"})
	require.NoError(t, err)

	assert.Equal(t, f.major.Name, view.MajorName)
	assert.Equal(t, "2024/2025", view.Enrollment.AcademicYear)

	// Required subjects come from the catalog, electives from the enrollment.
	assert.Len(t, view.RequiredSubjects, 2)
	require.Len(t, view.ElectiveSubjects, 1)
	assert.Equal(t, f.elective.ID, view.ElectiveSubjects[0].ID)
}

func TestGetCurrentEnrollment_NotEnrolled(t *testing.T) {
	f := newProgressFixture(t)

	h := NewGetCurrentEnrollmentHandler(f.students, f.catalog, f.enrollments)
	_, err := h.Handle(context.Background(), GetCurrentEnrollmentQuery{StudentID: "student-1"})
	assert.True(t, shared.IsNotFound(err))
}

func TestGetCurrentEnrollment_StudentNotFound(t *testing.T) {
	f := newProgressFixture(t)

	h := NewGetCurrentEnrollmentHandler(f.students, f.catalog, f.enrollments)
	_, err := h.Handle(context.Background(), GetCurrentEnrollmentQuery{StudentID: "ghost"})
	assert.True(t, shared.IsNotFound(err))
}
