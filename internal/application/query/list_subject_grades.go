package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// SubjectGradeView is one student's stored grade in a subject, with the
// derived grade fields computed from the raw points.
type SubjectGradeView struct {
	StudentID   string `json:"student_id"`
	Points      int    `json:"points"`
	Grade       int    `json:"grade"`
	Passed      bool   `json:"passed"`
	Description string `json:"description"`
}

// SubjectGradesView is the gradebook slice of a single subject.
type SubjectGradesView struct {
	SubjectID   string             `json:"subject_id"`
	SubjectName string             `json:"subject_name"`
	Grades      []SubjectGradeView `json:"grades"`
}

// ListSubjectGradesQuery requests all grades recorded for a subject.
type ListSubjectGradesQuery struct {
	SubjectID string
}

// Validate validates the query.
func (q ListSubjectGradesQuery) Validate() error {
	if q.SubjectID == "" {
		return shared.NewDomainError("gradebook", "ListSubjectGrades", shared.ErrValidation, "subject_id is required")
	}
	return nil
}

// ListSubjectGradesHandler handles the ListSubjectGradesQuery.
type ListSubjectGradesHandler struct {
	catalog catalog.Repository
	grades  gradebook.Repository
}

// NewListSubjectGradesHandler creates a new ListSubjectGradesHandler.
func NewListSubjectGradesHandler(cat catalog.Repository, grades gradebook.Repository) *ListSubjectGradesHandler {
	return &ListSubjectGradesHandler{catalog: cat, grades: grades}
}

// Handle returns the grades recorded for the subject.
func (h *ListSubjectGradesHandler) Handle(ctx context.Context, q ListSubjectGradesQuery) (*SubjectGradesView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	subject, err := h.catalog.SubjectByID(ctx, q.SubjectID)
	if err != nil {
		if errors.Is(err, catalog.ErrSubjectNotFound) {
			return nil, shared.WrapError("gradebook", "ListSubjectGrades", shared.ErrNotFound, "subject not found", err)
		}
		return nil, fmt.Errorf("list_subject_grades: resolve subject: %w", err)
	}

	grades, err := h.grades.BySubject(ctx, q.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("list_subject_grades: load grades: %w", err)
	}

	views := make([]SubjectGradeView, 0, len(grades))
	for i := range grades {
		g := &grades[i]
		views = append(views, SubjectGradeView{
			StudentID:   g.StudentID,
			Points:      g.Points,
			Grade:       g.Value(),
			Passed:      g.Passed(),
			Description: g.Description(),
		})
	}

	return &SubjectGradesView{
		SubjectID:   subject.ID,
		SubjectName: subject.Name,
		Grades:      views,
	}, nil
}
