package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

type progressFixture struct {
	persons     *fakePersonRepo
	students    *fakeStudentRepo
	catalog     *fakeCatalogRepo
	enrollments *fakeEnrollmentRepo
	grades      *fakeGradebookRepo

	major    *catalog.Major
	required [2]*catalog.Subject
	elective *catalog.Subject
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	ctx := context.Background()
	f := &progressFixture{
		persons:     newFakePersonRepo(),
		students:    newFakeStudentRepo(),
		catalog:     newFakeCatalogRepo(),
		enrollments: newFakeEnrollmentRepo(),
		grades:      newFakeGradebookRepo(),
	}

	var err error
	f.major, err = catalog.NewMajor("major-1", "Računarstvo i informatika")
	require.NoError(t, err)
	require.NoError(t, f.catalog.CreateMajor(ctx, f.major))

	f.required[0], err = catalog.NewSubject("sub-mat", "Matematika 1", 7, true, 1, f.major.ID)
	require.NoError(t, err)
	f.required[1], err = catalog.NewSubject("sub-prog", "Programiranje", 5, true, 1, f.major.ID)
	require.NoError(t, err)
	f.elective, err = catalog.NewSubject("sub-web", "Web programiranje", 3, false, 2, f.major.ID)
	require.NoError(t, err)
	for _, s := range []*catalog.Subject{f.required[0], f.required[1], f.elective} {
		require.NoError(t, f.catalog.CreateSubject(ctx, s))
	}

	person, err := identity.NewPerson(identity.NewPersonParams{
		ID:           "person-1",
		FirstName:    "Amar",
		LastName:     "Hodžić",
		Email:        "amar@example.com",
		PasswordHash: "hash",
		Role:         identity.RoleStudent,
	})
	require.NoError(t, err)
	f.persons.add(person)

	student, err := identity.NewStudent("student-1", person.ID, "")
	require.NoError(t, err)
	f.students.add(student)

	return f
}

func (f *progressFixture) enroll(t *testing.T, electives ...string) {
	t.Helper()
	enr, err := enrollment.New("enr-1", "student-1", f.major.ID, "2024/2025", electives)
	require.NoError(t, err)
	require.NoError(t, f.enrollments.Create(context.Background(), enr))
}

func (f *progressFixture) grade(t *testing.T, subjectID string, points int) {
	t.Helper()
	g, err := gradebook.New("grade-"+subjectID, "student-1", subjectID, "prof-1", points)
	require.NoError(t, err)
	require.NoError(t, f.grades.Upsert(context.Background(), g))
}

func (f *progressFixture) handler(cache ReportCache) *GetProgressHandler {
	return NewGetProgressHandler(f.persons, f.students, f.catalog, f.enrollments, f.grades, cache)
}

// Required 7 ECTS passed, required 5 ECTS failed, elective 3 ECTS ungraded:
// 7 of 15 credits earned, 46.67%.
func TestGetProgress_CreditTotals(t *testing.T) {
	f := newProgressFixture(t)
	f.enroll(t, f.elective.ID)
	f.grade(t, f.required[0].ID, 60) // grade 6, passed
	f.grade(t, f.required[1].ID, 40) // grade 5, failed

	report, err := f.handler(nil).Handle(context.Background(), GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)

	assert.True(t, report.Enrolled)
	assert.Equal(t, "Amar Hodžić", report.StudentName)
	assert.Equal(t, f.major.Name, report.MajorName)
	assert.Len(t, report.Subjects, 3)

	assert.Equal(t, 15, report.TotalECTS)
	assert.Equal(t, 7, report.EarnedECTS)
	assert.InDelta(t, 46.67, report.ProgressPercent, 0.001)

	rows := make(map[string]SubjectProgress, len(report.Subjects))
	for _, row := range report.Subjects {
		rows[row.SubjectID] = row
	}

	passed := rows[f.required[0].ID]
	assert.True(t, passed.Graded)
	assert.Equal(t, 6, passed.Grade)
	assert.True(t, passed.Passed)
	assert.Equal(t, "Dovoljan", passed.Description)

	failed := rows[f.required[1].ID]
	assert.True(t, failed.Graded)
	assert.Equal(t, 5, failed.Grade)
	assert.False(t, failed.Passed)

	ungraded := rows[f.elective.ID]
	assert.False(t, ungraded.Graded)
	assert.Equal(t, 0, ungraded.Grade)
	assert.Empty(t, ungraded.Description)
}

func TestGetProgress_NotEnrolled(t *testing.T) {
	f := newProgressFixture(t)

	report, err := f.handler(nil).Handle(context.Background(), GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)

	assert.False(t, report.Enrolled)
	assert.Empty(t, report.Subjects)
	assert.Equal(t, 0, report.TotalECTS)
	assert.Equal(t, 0, report.EarnedECTS)
	assert.Equal(t, 0.0, report.ProgressPercent)
	assert.Equal(t, "Amar Hodžić", report.StudentName)
}

// A required subject that also appears in the elective set is counted once.
func TestGetProgress_DeduplicatesSubjects(t *testing.T) {
	f := newProgressFixture(t)
	f.enroll(t, f.required[0].ID, f.elective.ID)
	f.grade(t, f.required[0].ID, 91)

	report, err := f.handler(nil).Handle(context.Background(), GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)

	assert.Len(t, report.Subjects, 3)
	assert.Equal(t, 15, report.TotalECTS)
	assert.Equal(t, 7, report.EarnedECTS)
}

func TestGetProgress_StudentNotFound(t *testing.T) {
	f := newProgressFixture(t)
	_, err := f.handler(nil).Handle(context.Background(), GetProgressQuery{StudentID: "ghost"})
	assert.True(t, shared.IsNotFound(err))
}

func TestGetProgress_ServedFromCache(t *testing.T) {
	f := newProgressFixture(t)
	f.enroll(t)
	cache := newMemoryReportCache()
	h := f.handler(cache)
	ctx := context.Background()

	first, err := h.Handle(ctx, GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	// The second call returns the cached report without recomputing.
	second, err := h.Handle(ctx, GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, cache.sets)
}

func TestGetProgress_CacheInvalidation(t *testing.T) {
	f := newProgressFixture(t)
	f.enroll(t)
	cache := newMemoryReportCache()
	h := f.handler(cache)
	ctx := context.Background()

	_, err := h.Handle(ctx, GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)

	f.grade(t, f.required[0].ID, 95)
	require.NoError(t, cache.Invalidate(ctx, "student-1"))

	report, err := h.Handle(ctx, GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)
	assert.Equal(t, 7, report.EarnedECTS)
	assert.Equal(t, 2, cache.sets)
}

// No subjects means no division: percent stays 0.
func TestGetProgress_NoCreditsGuardedDivision(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	empty, err := catalog.NewMajor("major-empty", "Prazan smjer")
	require.NoError(t, err)
	require.NoError(t, f.catalog.CreateMajor(ctx, empty))

	enr, err := enrollment.New("enr-1", "student-1", empty.ID, "2024/2025", nil)
	require.NoError(t, err)
	require.NoError(t, f.enrollments.Create(ctx, enr))

	report, err := f.handler(nil).Handle(ctx, GetProgressQuery{StudentID: "student-1"})
	require.NoError(t, err)
	assert.True(t, report.Enrolled)
	assert.Equal(t, 0, report.TotalECTS)
	assert.Equal(t, 0.0, report.ProgressPercent)
}
