package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER PERSON COMMAND
// Creates a Person at registration. STUDENT persons also get their 1:1
// student record, with the index number defaulted to the student's own id.
// The credential is stored as a bcrypt hash, never plaintext.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterPersonCommand contains the registration data.
type RegisterPersonCommand struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      identity.Role

	// Student profile fields, used only for STUDENT role.
	MajorName string
	StudyYear string
}

// Validate validates the command.
func (c RegisterPersonCommand) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return shared.NewDomainError("identity", "Register", shared.ErrValidation, "first name is required")
	}
	if strings.TrimSpace(c.LastName) == "" {
		return shared.NewDomainError("identity", "Register", shared.ErrValidation, "last name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return shared.NewDomainError("identity", "Register", shared.ErrValidation, "email is required")
	}
	if c.Password == "" {
		return shared.NewDomainError("identity", "Register", shared.ErrValidation, "password is required")
	}
	if !c.Role.IsValid() {
		return shared.NewDomainError("identity", "Register", shared.ErrValidation, "role must be STUDENT or PROFESSOR")
	}
	return nil
}

// RegisterPersonResult contains the created identity records.
type RegisterPersonResult struct {
	Person  *identity.Person
	Student *identity.Student // nil unless Role == STUDENT
}

// RegisterPersonHandler handles the RegisterPersonCommand.
type RegisterPersonHandler struct {
	persons   identity.PersonRepository
	students  identity.StudentRepository
	publisher shared.EventPublisher
}

// NewRegisterPersonHandler creates a new RegisterPersonHandler.
func NewRegisterPersonHandler(
	persons identity.PersonRepository,
	students identity.StudentRepository,
	publisher shared.EventPublisher,
) *RegisterPersonHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &RegisterPersonHandler{persons: persons, students: students, publisher: publisher}
}

// Handle executes the registration command.
func (h *RegisterPersonHandler) Handle(ctx context.Context, cmd RegisterPersonCommand) (*RegisterPersonResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	taken, err := h.persons.ExistsByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		return nil, fmt.Errorf("register_person: check email: %w", err)
	}
	if taken {
		return nil, shared.NewDomainError("identity", "Register", shared.ErrConflict, "email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.WrapError("identity", "Register", shared.ErrInternal, "hash credential", err)
	}

	person, err := identity.NewPerson(identity.NewPersonParams{
		ID:           uuid.New().String(),
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Email:        cmd.Email,
		PasswordHash: string(hash),
		Role:         cmd.Role,
	})
	if err != nil {
		return nil, shared.WrapError("identity", "Register", shared.ErrValidation, "invalid person", err)
	}

	// The unique email constraint backs up the ExistsByEmail check under
	// concurrent registrations.
	if err := h.persons.Create(ctx, person); err != nil {
		if shared.IsConflict(err) || errors.Is(err, identity.ErrEmailTaken) {
			return nil, shared.WrapError("identity", "Register", shared.ErrConflict, "email already in use", err)
		}
		return nil, shared.WrapError("identity", "Register", shared.ErrInternal, "persist person", err)
	}

	result := &RegisterPersonResult{Person: person}

	if person.Role == identity.RoleStudent {
		student, err := identity.NewStudent(uuid.New().String(), person.ID, "")
		if err != nil {
			return nil, shared.WrapError("identity", "Register", shared.ErrInternal, "create student record", err)
		}
		student.MajorName = strings.TrimSpace(cmd.MajorName)
		student.StudyYear = strings.TrimSpace(cmd.StudyYear)

		if err := h.students.Create(ctx, student); err != nil {
			return nil, shared.WrapError("identity", "Register", shared.ErrInternal, "persist student record", err)
		}
		result.Student = student
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventPersonRegistered, person.ID, map[string]interface{}{
		"email": person.Email,
		"role":  string(person.Role),
	}))

	return result, nil
}
