package gradebook

import "context"

// Repository defines persistence operations for coursework grades.
type Repository interface {
	// Upsert writes the grade for its (student, subject) pair, replacing any
	// existing row in one atomic statement. Concurrent submissions for the
	// same pair serialize in the store so the final grade is exactly one of
	// the submitted values.
	Upsert(ctx context.Context, g *Grade) error

	// ByStudent returns all current grades of a student.
	ByStudent(ctx context.Context, studentID string) ([]Grade, error)

	// BySubject returns all current grades for a subject.
	BySubject(ctx context.Context, subjectID string) ([]Grade, error)

	// ByStudentAndSubject returns the current grade for the pair.
	// Returns ErrGradeNotFound if absent.
	ByStudentAndSubject(ctx context.Context, studentID, subjectID string) (*Grade, error)
}
