package catalog

import "context"

// Repository defines lookup and reference-data operations for the catalog.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// MajorByID returns a major by ID.
	// Returns ErrMajorNotFound if it does not exist.
	MajorByID(ctx context.Context, id string) (*Major, error)

	// MajorByName returns a major by its unique name.
	// Returns ErrMajorNotFound if it does not exist.
	MajorByName(ctx context.Context, name string) (*Major, error)

	// SubjectByID returns a subject by ID.
	// Returns ErrSubjectNotFound if it does not exist.
	SubjectByID(ctx context.Context, id string) (*Subject, error)

	// SubjectByName returns a subject by name.
	// Returns ErrSubjectNotFound if it does not exist.
	SubjectByName(ctx context.Context, name string) (*Subject, error)

	// SubjectsByIDs returns the subjects for the given IDs, in no particular
	// order. IDs that do not exist are simply absent from the result; callers
	// that need all-or-nothing semantics compare lengths.
	SubjectsByIDs(ctx context.Context, ids []string) ([]Subject, error)

	// SubjectsOfMajor returns the subjects of a major, optionally filtered by
	// study year (nil = all years).
	SubjectsOfMajor(ctx context.Context, majorID string, year *int) ([]Subject, error)

	// CreateMajor persists a new major.
	CreateMajor(ctx context.Context, m *Major) error

	// CreateSubject persists a new subject.
	CreateSubject(ctx context.Context, s *Subject) error
}
