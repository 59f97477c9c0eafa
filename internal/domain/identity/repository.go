package identity

import "context"

// PersonRepository defines persistence operations for persons.
type PersonRepository interface {
	// Create persists a new person.
	// Returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, p *Person) error

	// ByID returns a person by ID.
	// Returns ErrPersonNotFound if absent.
	ByID(ctx context.Context, id string) (*Person, error)

	// ByEmail returns a person by email.
	// Returns ErrPersonNotFound if absent.
	ByEmail(ctx context.Context, email string) (*Person, error)

	// ExistsByEmail checks whether the email is already registered.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// StudentRepository defines persistence operations for student records.
// Deleting a student cascades to their enrollment, grades and exam
// registrations in the store.
type StudentRepository interface {
	// Create persists a new student record.
	Create(ctx context.Context, s *Student) error

	// ByID returns a student by ID.
	// Returns ErrStudentNotFound if absent.
	ByID(ctx context.Context, id string) (*Student, error)

	// ByPerson returns the student record owned by a person.
	// Returns ErrStudentNotFound if absent.
	ByPerson(ctx context.Context, personID string) (*Student, error)

	// Update updates the mutable student fields (major name, study year,
	// index number).
	Update(ctx context.Context, s *Student) error

	// Delete removes the student record and all state owned by it.
	Delete(ctx context.Context, id string) error
}

// ProfessorRepository defines persistence operations for professor records.
type ProfessorRepository interface {
	// Create persists a new professor record.
	Create(ctx context.Context, p *Professor) error

	// ByID returns a professor by ID.
	// Returns ErrProfessorNotFound if absent.
	ByID(ctx context.Context, id string) (*Professor, error)

	// ByPerson returns the professor record owned by a person.
	// Returns ErrProfessorNotFound if absent.
	ByPerson(ctx context.Context, personID string) (*Professor, error)

	// Update updates title, office, subjects and the setup flag.
	Update(ctx context.Context, p *Professor) error
}
