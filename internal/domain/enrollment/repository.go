package enrollment

import "context"

// Repository defines persistence operations for enrollments.
//
// The at-most-one-enrollment-per-student invariant is enforced by the store
// (a uniqueness constraint on the student), not by check-then-insert in
// application code: under concurrent Create calls for the same student
// exactly one commits and the others fail with ErrAlreadyEnrolled.
type Repository interface {
	// Create persists one new enrollment together with its elective-subject
	// associations, atomically - a partial enrollment (major set but no
	// electives persisted) must never be observable.
	// Returns ErrAlreadyEnrolled when the student already has an enrollment.
	Create(ctx context.Context, e *Enrollment) error

	// ByStudent returns the student's current enrollment.
	// Returns ErrNotEnrolled if absent.
	ByStudent(ctx context.Context, studentID string) (*Enrollment, error)

	// Replace atomically deletes the student's existing enrollment (if any)
	// and persists the new one in the same transaction. On any failure the
	// original enrollment stays intact - the student never ends up with zero
	// enrollments because of a partial replace.
	Replace(ctx context.Context, e *Enrollment) error

	// DeleteByStudent deletes the student's current enrollment if present
	// and reports whether one existed. Idempotent.
	DeleteByStudent(ctx context.Context, studentID string) (bool, error)
}
