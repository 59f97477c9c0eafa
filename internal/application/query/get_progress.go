// Package query contains the read side of the application layer. Query
// handlers assemble views across domain repositories and never mutate state.
package query

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS REPORT QUERY
// Aggregates the student's profile, enrollment and grades into one report.
// The subject set is the major's required subjects plus the chosen electives,
// deduplicated by subject ID so a required subject chosen as an elective is
// counted once.
// ══════════════════════════════════════════════════════════════════════════════

// SubjectProgress is one row of the report: a subject the student is taking
// and the grade state derived from the stored points, if any.
type SubjectProgress struct {
	SubjectID   string `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	ECTS        int    `json:"ects"`
	Required    bool   `json:"required"`

	// Graded is false when no points are recorded; the derived fields below
	// are then zero values.
	Graded      bool   `json:"graded"`
	Points      int    `json:"points,omitempty"`
	Grade       int    `json:"grade,omitempty"`
	Passed      bool   `json:"passed"`
	Description string `json:"description,omitempty"`
}

// ProgressReport is the aggregated study-progress view for one student.
type ProgressReport struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name"`
	Email       string `json:"email"`

	// Enrolled is false when the student has no enrollment; the report is
	// then empty with zero totals.
	Enrolled     bool   `json:"enrolled"`
	MajorID      string `json:"major_id,omitempty"`
	MajorName    string `json:"major_name,omitempty"`
	AcademicYear string `json:"academic_year,omitempty"`

	Subjects []SubjectProgress `json:"subjects"`

	TotalECTS int `json:"total_ects"`
	EarnedECTS int `json:"earned_ects"`

	// ProgressPercent is EarnedECTS over TotalECTS as a percentage, 0 when
	// the subject set carries no credits.
	ProgressPercent float64 `json:"progress_percent"`

	GeneratedAt time.Time `json:"generated_at"`
}

// ReportCache caches rendered progress reports keyed by student ID.
// A miss is (nil, nil), not an error.
type ReportCache interface {
	Get(ctx context.Context, studentID string) (*ProgressReport, error)
	Set(ctx context.Context, studentID string, report *ProgressReport) error
	Invalidate(ctx context.Context, studentID string) error
}

// GetProgressQuery requests the progress report for a student.
type GetProgressQuery struct {
	StudentID string
}

// Validate validates the query.
func (q GetProgressQuery) Validate() error {
	if q.StudentID == "" {
		return shared.NewDomainError("progress", "Get", shared.ErrValidation, "student_id is required")
	}
	return nil
}

// GetProgressHandler handles the GetProgressQuery.
type GetProgressHandler struct {
	persons     identity.PersonRepository
	students    identity.StudentRepository
	catalog     catalog.Repository
	enrollments enrollment.Repository
	grades      gradebook.Repository
	cache       ReportCache
}

// NewGetProgressHandler creates a new GetProgressHandler. The cache is
// optional; pass nil to always compute the report.
func NewGetProgressHandler(
	persons identity.PersonRepository,
	students identity.StudentRepository,
	cat catalog.Repository,
	enrollments enrollment.Repository,
	grades gradebook.Repository,
	cache ReportCache,
) *GetProgressHandler {
	return &GetProgressHandler{
		persons:     persons,
		students:    students,
		catalog:     cat,
		enrollments: enrollments,
		grades:      grades,
		cache:       cache,
	}
}

// Handle computes (or serves from cache) the progress report.
func (h *GetProgressHandler) Handle(ctx context.Context, q GetProgressQuery) (*ProgressReport, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if h.cache != nil {
		// Cache failures degrade to a recompute, never to a request failure.
		if cached, err := h.cache.Get(ctx, q.StudentID); err == nil && cached != nil {
			return cached, nil
		}
	}

	student, err := h.students.ByID(ctx, q.StudentID)
	if err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("progress", "Get", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("get_progress: resolve student: %w", err)
	}

	person, err := h.persons.ByID(ctx, student.PersonID)
	if err != nil {
		return nil, fmt.Errorf("get_progress: resolve person: %w", err)
	}

	report := &ProgressReport{
		StudentID:   student.ID,
		StudentName: person.FullName(),
		Email:       person.Email,
		Subjects:    []SubjectProgress{},
		GeneratedAt: time.Now().UTC(),
	}

	enr, err := h.enrollments.ByStudent(ctx, student.ID)
	if err != nil {
		if errors.Is(err, enrollment.ErrNotEnrolled) {
			// Un-enrolled students get an empty report, not an error.
			return report, nil
		}
		return nil, fmt.Errorf("get_progress: resolve enrollment: %w", err)
	}

	major, err := h.catalog.MajorByID(ctx, enr.MajorID)
	if err != nil {
		return nil, fmt.Errorf("get_progress: resolve major: %w", err)
	}

	report.Enrolled = true
	report.MajorID = major.ID
	report.MajorName = major.Name
	report.AcademicYear = enr.AcademicYear

	subjects, err := h.collectSubjects(ctx, enr)
	if err != nil {
		return nil, err
	}

	grades, err := h.grades.ByStudent(ctx, student.ID)
	if err != nil {
		return nil, fmt.Errorf("get_progress: load grades: %w", err)
	}
	bySubject := make(map[string]gradebook.Grade, len(grades))
	for _, g := range grades {
		bySubject[g.SubjectID] = g
	}

	for _, s := range subjects {
		row := SubjectProgress{
			SubjectID:   s.ID,
			SubjectName: s.Name,
			ECTS:        s.ECTS,
			Required:    s.Required,
		}
		if g, ok := bySubject[s.ID]; ok {
			row.Graded = true
			row.Points = g.Points
			row.Grade = g.Value()
			row.Passed = g.Passed()
			row.Description = g.Description()
		}
		report.Subjects = append(report.Subjects, row)

		report.TotalECTS += s.ECTS
		if row.Passed {
			report.EarnedECTS += s.ECTS
		}
	}

	if report.TotalECTS > 0 {
		percent := float64(report.EarnedECTS) / float64(report.TotalECTS) * 100
		report.ProgressPercent = math.Round(percent*100) / 100
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, q.StudentID, report)
	}

	return report, nil
}

// collectSubjects merges the major's required subjects with the enrollment's
// electives, keeping the first occurrence of each subject ID.
func (h *GetProgressHandler) collectSubjects(ctx context.Context, enr *enrollment.Enrollment) ([]catalog.Subject, error) {
	ofMajor, err := h.catalog.SubjectsOfMajor(ctx, enr.MajorID, nil)
	if err != nil {
		return nil, fmt.Errorf("get_progress: load major subjects: %w", err)
	}

	seen := make(map[string]bool)
	subjects := make([]catalog.Subject, 0, len(ofMajor))
	for _, s := range ofMajor {
		if s.Required && !seen[s.ID] {
			seen[s.ID] = true
			subjects = append(subjects, s)
		}
	}

	electives, err := h.catalog.SubjectsByIDs(ctx, enr.ElectiveSubjectIDs)
	if err != nil {
		return nil, fmt.Errorf("get_progress: load electives: %w", err)
	}
	for _, s := range electives {
		if !seen[s.ID] {
			seen[s.ID] = true
			subjects = append(subjects, s)
		}
	}

	return subjects, nil
}
