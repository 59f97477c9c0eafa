// Package catalog holds the shared reference data of the faculty: majors and
// the subjects that belong to them. Catalog data is owned here and referenced
// (never owned) by enrollments, grades and exams.
package catalog

import (
	"errors"
	"strings"
)

// Major represents a course of study. Its name is unique across the faculty.
type Major struct {
	// ID - unique identifier (UUID in string form).
	ID string

	// Name - unique human-readable name, e.g. "Računarstvo i informatika".
	Name string
}

// Subject represents a single teachable subject inside a major.
type Subject struct {
	// ID - unique identifier.
	ID string

	// Name - subject name.
	Name string

	// ECTS - credit value, non-negative.
	ECTS int

	// Required - required subjects are implicitly part of every enrollment
	// in the major; elective subjects are chosen explicitly per enrollment.
	Required bool

	// StudyYear - the year of study the subject is taught in.
	StudyYear int

	// MajorID - the owning major.
	MajorID string
}

var (
	// ErrMajorNotFound - major does not exist.
	ErrMajorNotFound = errors.New("major not found")

	// ErrSubjectNotFound - subject does not exist.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrInvalidMajorName - major name is empty.
	ErrInvalidMajorName = errors.New("invalid major name: must not be empty")

	// ErrInvalidSubject - subject fields fail validation.
	ErrInvalidSubject = errors.New("invalid subject: name required, ects must be non-negative")
)

// NewMajor creates a major with a validated name.
func NewMajor(id, name string) (*Major, error) {
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return nil, ErrInvalidMajorName
	}
	return &Major{ID: id, Name: name}, nil
}

// NewSubject creates a subject with validated fields.
func NewSubject(id, name string, ects int, required bool, studyYear int, majorID string) (*Subject, error) {
	name = strings.TrimSpace(name)
	if id == "" || name == "" || ects < 0 || majorID == "" {
		return nil, ErrInvalidSubject
	}
	return &Subject{
		ID:        id,
		Name:      name,
		ECTS:      ects,
		Required:  required,
		StudyYear: studyYear,
		MajorID:   majorID,
	}, nil
}

// RequiredSubjects filters the required subjects out of a major's subject set.
// Required subjects are derived on read and never copied onto enrollments.
func RequiredSubjects(subjects []Subject) []Subject {
	var required []Subject
	for _, s := range subjects {
		if s.Required {
			required = append(required, s)
		}
	}
	return required
}

// ElectiveSubjects filters the non-required subjects out of a subject set.
func ElectiveSubjects(subjects []Subject) []Subject {
	var electives []Subject
	for _, s := range subjects {
		if !s.Required {
			electives = append(electives, s)
		}
	}
	return electives
}
