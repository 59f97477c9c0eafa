package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PersonRepository implements identity.PersonRepository for PostgreSQL.
type PersonRepository struct {
	conn *Connection
}

// NewPersonRepository creates a new PersonRepository.
func NewPersonRepository(conn *Connection) *PersonRepository {
	return &PersonRepository{conn: conn}
}

// Create creates a new person. The unique email constraint maps to
// ErrEmailTaken.
func (r *PersonRepository) Create(ctx context.Context, p *identity.Person) error {
	query := `
		INSERT INTO persons (id, first_name, last_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.Exec(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Email, p.PasswordHash, string(p.Role),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return identity.ErrEmailTaken
		}
		return fmt.Errorf("failed to create person: %w", err)
	}
	return nil
}

// ByID returns a person by internal ID.
func (r *PersonRepository) ByID(ctx context.Context, id string) (*identity.Person, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, role
		FROM persons
		WHERE id = $1
	`
	return r.scanPerson(r.conn.QueryRow(ctx, query, id))
}

// ByEmail returns a person by email.
func (r *PersonRepository) ByEmail(ctx context.Context, email string) (*identity.Person, error) {
	query := `
		SELECT id, first_name, last_name, email, password_hash, role
		FROM persons
		WHERE email = $1
	`
	return r.scanPerson(r.conn.QueryRow(ctx, query, email))
}

// ExistsByEmail checks whether the email is already registered.
func (r *PersonRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM persons WHERE email = $1)", email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check person existence by email: %w", err)
	}
	return exists, nil
}

func (r *PersonRepository) scanPerson(row pgx.Row) (*identity.Person, error) {
	var p identity.Person
	var role string

	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.PasswordHash, &role)
	if IsNoRows(err) {
		return nil, identity.ErrPersonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan person: %w", err)
	}

	p.Role = identity.Role(role)
	return &p, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements identity.StudentRepository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

// Create creates a new student record.
func (r *StudentRepository) Create(ctx context.Context, s *identity.Student) error {
	query := `
		INSERT INTO students (id, person_id, major_name, study_year, index_number)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query, s.ID, s.PersonID, s.MajorName, s.StudyYear, s.IndexNumber)
	if err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// ByID returns a student by internal ID.
func (r *StudentRepository) ByID(ctx context.Context, id string) (*identity.Student, error) {
	query := `
		SELECT id, person_id, major_name, study_year, index_number
		FROM students
		WHERE id = $1
	`
	return r.scanStudent(r.conn.QueryRow(ctx, query, id))
}

// ByPerson returns the student record owned by a person.
func (r *StudentRepository) ByPerson(ctx context.Context, personID string) (*identity.Student, error) {
	query := `
		SELECT id, person_id, major_name, study_year, index_number
		FROM students
		WHERE person_id = $1
	`
	return r.scanStudent(r.conn.QueryRow(ctx, query, personID))
}

// Update updates the mutable student fields.
func (r *StudentRepository) Update(ctx context.Context, s *identity.Student) error {
	query := `
		UPDATE students
		SET major_name = $1, study_year = $2, index_number = $3
		WHERE id = $4
	`

	result, err := r.conn.Exec(ctx, query, s.MajorName, s.StudyYear, s.IndexNumber, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return identity.ErrStudentNotFound
	}
	return nil
}

// Delete removes the student record. Enrollment, grades and registrations go
// with it through ON DELETE CASCADE.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if result.RowsAffected() == 0 {
		return identity.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) scanStudent(row pgx.Row) (*identity.Student, error) {
	var s identity.Student
	err := row.Scan(&s.ID, &s.PersonID, &s.MajorName, &s.StudyYear, &s.IndexNumber)
	if IsNoRows(err) {
		return nil, identity.ErrStudentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan student: %w", err)
	}
	return &s, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PROFESSOR REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProfessorRepository implements identity.ProfessorRepository for PostgreSQL.
type ProfessorRepository struct {
	conn *Connection
}

// NewProfessorRepository creates a new ProfessorRepository.
func NewProfessorRepository(conn *Connection) *ProfessorRepository {
	return &ProfessorRepository{conn: conn}
}

// Create creates a new professor record.
func (r *ProfessorRepository) Create(ctx context.Context, p *identity.Professor) error {
	query := `
		INSERT INTO professors (id, person_id, title, office, subjects, setup_completed)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.Exec(ctx, query,
		p.ID, p.PersonID, p.Title, p.Office, p.Subjects, p.SetupCompleted,
	)
	if err != nil {
		return fmt.Errorf("failed to create professor: %w", err)
	}
	return nil
}

// ByID returns a professor by internal ID.
func (r *ProfessorRepository) ByID(ctx context.Context, id string) (*identity.Professor, error) {
	query := `
		SELECT id, person_id, title, office, subjects, setup_completed
		FROM professors
		WHERE id = $1
	`
	return r.scanProfessor(r.conn.QueryRow(ctx, query, id))
}

// ByPerson returns the professor record owned by a person.
func (r *ProfessorRepository) ByPerson(ctx context.Context, personID string) (*identity.Professor, error) {
	query := `
		SELECT id, person_id, title, office, subjects, setup_completed
		FROM professors
		WHERE person_id = $1
	`
	return r.scanProfessor(r.conn.QueryRow(ctx, query, personID))
}

// Update updates title, office, subjects and the setup flag.
func (r *ProfessorRepository) Update(ctx context.Context, p *identity.Professor) error {
	query := `
		UPDATE professors
		SET title = $1, office = $2, subjects = $3, setup_completed = $4
		WHERE id = $5
	`

	result, err := r.conn.Exec(ctx, query, p.Title, p.Office, p.Subjects, p.SetupCompleted, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update professor: %w", err)
	}
	if result.RowsAffected() == 0 {
		return identity.ErrProfessorNotFound
	}
	return nil
}

func (r *ProfessorRepository) scanProfessor(row pgx.Row) (*identity.Professor, error) {
	var p identity.Professor
	err := row.Scan(&p.ID, &p.PersonID, &p.Title, &p.Office, &p.Subjects, &p.SetupCompleted)
	if IsNoRows(err) {
		return nil, identity.ErrProfessorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan professor: %w", err)
	}
	return &p, nil
}
