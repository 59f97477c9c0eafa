// Package exam contains exam instances scheduled by professors and the
// registrations binding students to them.
package exam

import (
	"errors"
	"time"

	"github.com/faculty-hub/faculty-hub/internal/domain/grading"
)

// Status is the lifecycle state of an exam instance.
type Status string

const (
	StatusScheduled  Status = "SCHEDULED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks that the status is one of the known lifecycle states.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Exam is a single scheduled exam instance for a subject.
type Exam struct {
	// ID - unique identifier.
	ID string

	// SubjectName - the subject being examined, referenced by name.
	SubjectName string

	// ProfessorID - the professor holding the exam.
	ProfessorID string

	// ExamTime - scheduled start time.
	ExamTime time.Time

	// Classroom - location label.
	Classroom string

	// Capacity - maximum registrations; 0 means unlimited.
	Capacity int

	// RegistrationDeadline - last moment to register; zero means no deadline.
	RegistrationDeadline time.Time

	// Status - lifecycle state.
	Status Status
}

// AcceptsRegistrations reports whether new registrations are allowed at the
// given moment: the exam must still be scheduled and the deadline (if any)
// must not have passed.
func (e *Exam) AcceptsRegistrations(at time.Time) bool {
	if e.Status != StatusScheduled {
		return false
	}
	if !e.RegistrationDeadline.IsZero() && at.After(e.RegistrationDeadline) {
		return false
	}
	return true
}

// HasCapacity reports whether the exam still has room for another
// registration given the current non-withdrawn count.
func (e *Exam) HasCapacity(registered int) bool {
	return e.Capacity == 0 || registered < e.Capacity
}

// Cancel moves the exam to CANCELLED. Cancelling an already cancelled exam
// is a no-op; a completed exam cannot be cancelled.
func (e *Exam) Cancel() error {
	if e.Status == StatusCompleted {
		return ErrExamNotCancellable
	}
	e.Status = StatusCancelled
	return nil
}

// RegistrationStatus is the state of a student's exam registration.
type RegistrationStatus string

const (
	RegistrationRegistered RegistrationStatus = "REGISTERED"
	RegistrationPassed     RegistrationStatus = "PASSED"
	RegistrationFailed     RegistrationStatus = "FAILED"
	RegistrationCompleted  RegistrationStatus = "COMPLETED"
	RegistrationWithdrawn  RegistrationStatus = "WITHDRAWN"
)

// Registration binds exactly one (student, exam) pair. A student may register
// for a given exam at most once.
type Registration struct {
	// ID - unique identifier.
	ID string

	// StudentID - the owning student.
	StudentID string

	// ExamID - the referenced exam.
	ExamID string

	// RegisteredAt - when the registration was made.
	RegisteredAt time.Time

	// Points - raw points awarded, nil until a result is recorded.
	Points *int

	// Status - registration state.
	Status RegistrationStatus
}

var (
	// ErrExamNotFound - exam does not exist.
	ErrExamNotFound = errors.New("exam not found")

	// ErrRegistrationNotFound - registration does not exist.
	ErrRegistrationNotFound = errors.New("registration not found")

	// ErrAlreadyRegistered - the (student, exam) pair already has a
	// registration.
	ErrAlreadyRegistered = errors.New("student already registered for this exam")

	// ErrRegistrationClosed - the exam no longer accepts registrations.
	ErrRegistrationClosed = errors.New("exam does not accept registrations")

	// ErrExamFull - the exam has reached its registration capacity.
	ErrExamFull = errors.New("exam is at capacity")

	// ErrExamNotCancellable - a completed exam cannot be cancelled.
	ErrExamNotCancellable = errors.New("completed exam cannot be cancelled")

	// ErrExamNotUpdatable - a cancelled exam cannot be rescheduled.
	ErrExamNotUpdatable = errors.New("cancelled exam cannot be updated")

	// ErrNotWithdrawable - only REGISTERED registrations can be withdrawn.
	ErrNotWithdrawable = errors.New("registration cannot be withdrawn")

	// ErrResultAlreadyFinal - result recording on a withdrawn registration.
	ErrResultAlreadyFinal = errors.New("cannot record result for withdrawn registration")

	// ErrInvalidExam - required exam fields are missing.
	ErrInvalidExam = errors.New("invalid exam: subject, professor and time are required")
)

// NewExam creates a scheduled exam with validated fields.
func NewExam(id, subjectName, professorID string, examTime time.Time, classroom string) (*Exam, error) {
	if id == "" || subjectName == "" || professorID == "" || examTime.IsZero() {
		return nil, ErrInvalidExam
	}
	return &Exam{
		ID:          id,
		SubjectName: subjectName,
		ProfessorID: professorID,
		ExamTime:    examTime,
		Classroom:   classroom,
		Status:      StatusScheduled,
	}, nil
}

// NewRegistration creates a REGISTERED registration with the current
// timestamp.
func NewRegistration(id, studentID, examID string) (*Registration, error) {
	if id == "" || studentID == "" || examID == "" {
		return nil, errors.New("invalid registration: student and exam are required")
	}
	return &Registration{
		ID:           id,
		StudentID:    studentID,
		ExamID:       examID,
		RegisteredAt: time.Now().UTC(),
		Status:       RegistrationRegistered,
	}, nil
}

// RecordResult stores the raw points and derives the PASSED/FAILED status
// through the grading policy.
func (r *Registration) RecordResult(points int) error {
	if r.Status == RegistrationWithdrawn {
		return ErrResultAlreadyFinal
	}
	if !grading.ValidPoints(points) {
		return errors.New("points must be between 0 and 100")
	}

	p := points
	r.Points = &p
	if grading.IsPassing(grading.GradeFromPoints(points)) {
		r.Status = RegistrationPassed
	} else {
		r.Status = RegistrationFailed
	}
	return nil
}

// Withdraw cancels a registration before its result is recorded.
func (r *Registration) Withdraw() error {
	if r.Status != RegistrationRegistered {
		return ErrNotWithdrawable
	}
	r.Status = RegistrationWithdrawn
	return nil
}

// Grade returns the derived numeric grade, or 0 when no result is recorded.
func (r *Registration) Grade() int {
	if r.Points == nil {
		return 0
	}
	return grading.GradeFromPoints(*r.Points)
}

// Description returns the derived grade label, or "" when no result is
// recorded.
func (r *Registration) Description() string {
	if r.Points == nil {
		return ""
	}
	return grading.Description(*r.Points)
}
