package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

func TestListSubjectGrades_DerivesGradeFields(t *testing.T) {
	cat := newFakeCatalogRepo()
	grades := newFakeGradebookRepo()
	ctx := context.Background()

	subject, err := catalog.NewSubject("sub-1", "Matematika 1", 7, true, 1, "major-1")
	require.NoError(t, err)
	require.NoError(t, cat.CreateSubject(ctx, subject))

	passing, err := gradebook.New("grade-1", "student-1", "sub-1", "prof-1", 85)
	require.NoError(t, err)
	require.NoError(t, grades.Upsert(ctx, passing))

	failing, err := gradebook.New("grade-2", "student-2", "sub-1", "prof-1", 40)
	require.NoError(t, err)
	require.NoError(t, grades.Upsert(ctx, failing))

	unrelated, err := gradebook.New("grade-3", "student-1", "sub-other", "prof-1", 90)
	require.NoError(t, err)
	require.NoError(t, grades.Upsert(ctx, unrelated))

	h := NewListSubjectGradesHandler(cat, grades)
	view, err := h.Handle(ctx, ListSubjectGradesQuery{SubjectID: "sub-1"})
	require.NoError(t, err)

	assert.Equal(t, "Matematika 1", view.SubjectName)
	require.Len(t, view.Grades, 2)

	byStudent := make(map[string]SubjectGradeView, len(view.Grades))
	for _, g := range view.Grades {
		byStudent[g.StudentID] = g
	}

	assert.Equal(t, 9, byStudent["student-1"].Grade)
	assert.True(t, byStudent["student-1"].Passed)
	assert.Equal(t, "Odličan", byStudent["student-1"].Description)

	assert.Equal(t, 5, byStudent["student-2"].Grade)
	assert.False(t, byStudent["student-2"].Passed)
	assert.Equal(t, "Nedovoljan", byStudent["student-2"].Description)
}

func TestListSubjectGrades_SubjectNotFound(t *testing.T) {
	h := NewListSubjectGradesHandler(newFakeCatalogRepo(), newFakeGradebookRepo())
	_, err := h.Handle(context.Background(), ListSubjectGradesQuery{SubjectID: "ghost"})
	assert.True(t, shared.IsNotFound(err))
}
