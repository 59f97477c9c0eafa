// Package identity contains the people of the faculty: persons with a role,
// the student records owned by STUDENT persons and the professor records
// owned by PROFESSOR persons.
package identity

import (
	"errors"
	"strings"
)

// Role determines what a person can do in the faculty.
type Role string

const (
	// RoleStudent - enrolled (or enrollable) student.
	RoleStudent Role = "STUDENT"

	// RoleProfessor - teaching staff.
	RoleProfessor Role = "PROFESSOR"
)

// IsValid checks that the role is one of the known roles.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleProfessor
}

// Person is the registration-time identity. The role is immutable after
// creation.
type Person struct {
	// ID - unique identifier (UUID in string form).
	ID string

	// FirstName and LastName - legal name.
	FirstName string
	LastName  string

	// Email - unique login identifier.
	Email string

	// PasswordHash - bcrypt hash of the credential. Never the plaintext.
	PasswordHash string

	// Role - STUDENT or PROFESSOR, fixed at registration.
	Role Role
}

// FullName returns "First Last" for display.
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Student is owned 1:1 by a Person with role STUDENT.
type Student struct {
	// ID - unique identifier.
	ID string

	// PersonID - the owning person.
	PersonID string

	// MajorName - denormalized major label shown on the profile.
	MajorName string

	// StudyYear - free-form study-year label.
	StudyYear string

	// IndexNumber - student index; defaults to the student's own ID if unset.
	IndexNumber string
}

// Professor is owned 1:1 by a Person with role PROFESSOR. The record is
// created lazily on first profile lookup if missing.
type Professor struct {
	// ID - unique identifier.
	ID string

	// PersonID - the owning person.
	PersonID string

	// Title - academic title, e.g. "Professor", "Docent".
	Title string

	// Office - office/cabinet label.
	Office string

	// Subjects - names of subjects taught. Free-form strings, not foreign
	// keys into the catalog.
	Subjects []string

	// SetupCompleted - whether the professor finished the subject setup.
	SetupCompleted bool
}

var (
	// ErrPersonNotFound - person does not exist.
	ErrPersonNotFound = errors.New("person not found")

	// ErrStudentNotFound - student record does not exist.
	ErrStudentNotFound = errors.New("student not found")

	// ErrProfessorNotFound - professor record does not exist.
	ErrProfessorNotFound = errors.New("professor not found")

	// ErrEmailTaken - the email is already registered.
	ErrEmailTaken = errors.New("email already in use")

	// ErrInvalidPerson - required person fields are missing.
	ErrInvalidPerson = errors.New("invalid person: first name, last name, email and role are required")

	// ErrInvalidRole - unknown role value.
	ErrInvalidRole = errors.New("invalid role: must be STUDENT or PROFESSOR")
)

// NewPersonParams contains the fields for creating a person.
type NewPersonParams struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         Role
}

// NewPerson creates a person with validated fields.
func NewPerson(params NewPersonParams) (*Person, error) {
	firstName := strings.TrimSpace(params.FirstName)
	lastName := strings.TrimSpace(params.LastName)
	email := strings.TrimSpace(strings.ToLower(params.Email))

	if params.ID == "" || firstName == "" || lastName == "" || email == "" || params.PasswordHash == "" {
		return nil, ErrInvalidPerson
	}
	if !params.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &Person{
		ID:           params.ID,
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
	}, nil
}

// NewStudent creates the student record owned by a STUDENT person.
// IndexNumber falls back to the student's own ID when empty.
func NewStudent(id, personID, indexNumber string) (*Student, error) {
	if id == "" || personID == "" {
		return nil, ErrInvalidPerson
	}
	if indexNumber == "" {
		indexNumber = id
	}
	return &Student{
		ID:          id,
		PersonID:    personID,
		IndexNumber: indexNumber,
	}, nil
}

// DefaultProfessor creates the professor record used when none exists yet.
func DefaultProfessor(id, personID string) *Professor {
	return &Professor{
		ID:       id,
		PersonID: personID,
		Title:    "Professor",
		Office:   "TBD",
	}
}

// CompleteSetup records the subjects taught and marks setup as done.
func (p *Professor) CompleteSetup(subjects []string) {
	p.Subjects = subjects
	p.SetupCompleted = true
}
