// Package gradebook contains coursework grades: the raw points a professor
// awarded a student for a subject. Only points are stored; the numeric grade,
// pass/fail status and description are derived views over the grading policy
// and can never drift from it.
package gradebook

import (
	"errors"
	"time"

	"github.com/faculty-hub/faculty-hub/internal/domain/grading"
)

// Grade records the raw points for one (student, subject) pair. At most one
// current grade exists per pair; re-submitting is an update, not a new
// historical row.
type Grade struct {
	// ID - unique identifier.
	ID string

	// StudentID - the owning student.
	StudentID string

	// SubjectID - the referenced subject.
	SubjectID string

	// ProfessorID - the professor who entered the grade.
	ProfessorID string

	// Points - raw points in [0, 100]. The single source of truth.
	Points int

	// RecordedAt - when the grade was last written.
	RecordedAt time.Time
}

var (
	// ErrGradeNotFound - no grade recorded for the pair.
	ErrGradeNotFound = errors.New("grade not found")

	// ErrInvalidPoints - points outside [0, 100].
	ErrInvalidPoints = errors.New("points must be between 0 and 100")

	// ErrInvalidGrade - required grade fields are missing.
	ErrInvalidGrade = errors.New("invalid grade: student, subject and professor are required")
)

// New creates a grade with validated fields.
func New(id, studentID, subjectID, professorID string, points int) (*Grade, error) {
	if id == "" || studentID == "" || subjectID == "" || professorID == "" {
		return nil, ErrInvalidGrade
	}
	if !grading.ValidPoints(points) {
		return nil, ErrInvalidPoints
	}
	return &Grade{
		ID:          id,
		StudentID:   studentID,
		SubjectID:   subjectID,
		ProfessorID: professorID,
		Points:      points,
		RecordedAt:  time.Now().UTC(),
	}, nil
}

// Value returns the numeric grade derived from the stored points.
func (g *Grade) Value() int {
	return grading.GradeFromPoints(g.Points)
}

// Passed reports whether the derived grade completes the subject.
func (g *Grade) Passed() bool {
	return grading.IsPassing(g.Value())
}

// Description returns the fixed label for the derived grade.
func (g *Grade) Description() string {
	return grading.Description(g.Points)
}
