// Package enrollment contains the enrollment aggregate: the single record
// binding a student to a major, an academic year and a chosen set of elective
// subjects.
//
// A student has at most one enrollment at any time. Required subjects are
// never stored on the enrollment - they are derived from the major's catalog
// on read, so the two can never drift apart.
package enrollment

import (
	"errors"
	"strings"
	"time"
)

// Enrollment binds a student to a major and their chosen electives for an
// academic year.
type Enrollment struct {
	// ID - unique identifier.
	ID string

	// StudentID - the owning student. Unique across enrollments.
	StudentID string

	// MajorID - the referenced major.
	MajorID string

	// AcademicYear - free-form label identifying the enrollment period,
	// e.g. "2024/2025". Not a parsed date range.
	AcademicYear string

	// ElectiveSubjectIDs - the validated elective subject set chosen at
	// enrollment time.
	ElectiveSubjectIDs []string

	// CreatedAt - when the enrollment was persisted.
	CreatedAt time.Time
}

var (
	// ErrNotEnrolled - the student has no current enrollment.
	ErrNotEnrolled = errors.New("student has no enrollment")

	// ErrAlreadyEnrolled - the student already has an enrollment. Replacing
	// is an explicit clear-then-enroll, never an implicit overwrite.
	ErrAlreadyEnrolled = errors.New("student is already enrolled")

	// ErrInvalidEnrollment - required enrollment fields are missing.
	ErrInvalidEnrollment = errors.New("invalid enrollment: student, major and academic year are required")
)

// New creates an enrollment with validated fields. Duplicate elective IDs
// are collapsed so the persisted association set is already unique.
func New(id, studentID, majorID, academicYear string, electiveSubjectIDs []string) (*Enrollment, error) {
	academicYear = strings.TrimSpace(academicYear)
	if id == "" || studentID == "" || majorID == "" || academicYear == "" {
		return nil, ErrInvalidEnrollment
	}

	seen := make(map[string]bool, len(electiveSubjectIDs))
	electives := make([]string, 0, len(electiveSubjectIDs))
	for _, subjectID := range electiveSubjectIDs {
		if subjectID == "" || seen[subjectID] {
			continue
		}
		seen[subjectID] = true
		electives = append(electives, subjectID)
	}

	return &Enrollment{
		ID:                 id,
		StudentID:          studentID,
		MajorID:            majorID,
		AcademicYear:       academicYear,
		ElectiveSubjectIDs: electives,
		CreatedAt:          time.Now().UTC(),
	}, nil
}

// HasElective reports whether the subject is part of the chosen electives.
func (e *Enrollment) HasElective(subjectID string) bool {
	for _, id := range e.ElectiveSubjectIDs {
		if id == subjectID {
			return true
		}
	}
	return false
}
