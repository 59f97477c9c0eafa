package exam

import "context"

// Repository defines persistence operations for exams and registrations.
//
// The at-most-one-registration-per-(student, exam) invariant is enforced by
// a uniqueness constraint in the store, so concurrent duplicate registrations
// resolve to exactly one success and ErrAlreadyRegistered for the rest.
type Repository interface {
	// CreateExam persists a new exam.
	CreateExam(ctx context.Context, e *Exam) error

	// ExamByID returns an exam by ID.
	// Returns ErrExamNotFound if absent.
	ExamByID(ctx context.Context, id string) (*Exam, error)

	// ExamsByProfessor returns the exams held by a professor.
	ExamsByProfessor(ctx context.Context, professorID string) ([]Exam, error)

	// ListExams returns all exams.
	ListExams(ctx context.Context) ([]Exam, error)

	// UpdateExam updates the mutable exam fields (time, classroom, status,
	// capacity, deadline).
	UpdateExam(ctx context.Context, e *Exam) error

	// CreateRegistration persists a new registration.
	// Returns ErrAlreadyRegistered on a duplicate (student, exam) pair.
	CreateRegistration(ctx context.Context, r *Registration) error

	// RegistrationByID returns a registration by ID.
	// Returns ErrRegistrationNotFound if absent.
	RegistrationByID(ctx context.Context, id string) (*Registration, error)

	// UpdateRegistration persists the points and status of a registration.
	UpdateRegistration(ctx context.Context, r *Registration) error

	// RegistrationsByStudent returns the registrations of a student.
	RegistrationsByStudent(ctx context.Context, studentID string) ([]Registration, error)

	// RegistrationsByExam returns the registrations for an exam.
	RegistrationsByExam(ctx context.Context, examID string) ([]Registration, error)

	// CountRegistrations returns the number of non-withdrawn registrations
	// for an exam. Used for capacity checks and seat counts in listings.
	CountRegistrations(ctx context.Context, examID string) (int, error)
}
