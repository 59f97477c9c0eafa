package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// SetupProfessorCommand records the subjects a professor teaches and marks
// their setup as completed. The professor record is created on the fly when
// the person exists with the right role but the record does not.
type SetupProfessorCommand struct {
	PersonID string
	Subjects []string
}

// Validate validates the command.
func (c SetupProfessorCommand) Validate() error {
	if c.PersonID == "" {
		return shared.NewDomainError("identity", "SetupProfessor", shared.ErrValidation, "person_id is required")
	}
	if c.Subjects == nil {
		return shared.NewDomainError("identity", "SetupProfessor", shared.ErrValidation, "subjects list is required")
	}
	return nil
}

// SetupProfessorHandler handles the SetupProfessorCommand.
type SetupProfessorHandler struct {
	persons    identity.PersonRepository
	professors identity.ProfessorRepository
	publisher  shared.EventPublisher
}

// NewSetupProfessorHandler creates a new SetupProfessorHandler.
func NewSetupProfessorHandler(
	persons identity.PersonRepository,
	professors identity.ProfessorRepository,
	publisher shared.EventPublisher,
) *SetupProfessorHandler {
	if publisher == nil {
		publisher = shared.NopPublisher{}
	}
	return &SetupProfessorHandler{persons: persons, professors: professors, publisher: publisher}
}

// Handle executes the setup command.
func (h *SetupProfessorHandler) Handle(ctx context.Context, cmd SetupProfessorCommand) (*identity.Professor, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	person, err := h.persons.ByID(ctx, cmd.PersonID)
	if err != nil {
		if errors.Is(err, identity.ErrPersonNotFound) {
			return nil, shared.WrapError("identity", "SetupProfessor", shared.ErrNotFound, "person not found", err)
		}
		return nil, fmt.Errorf("setup_professor: resolve person: %w", err)
	}
	if person.Role != identity.RoleProfessor {
		return nil, shared.NewDomainError("identity", "SetupProfessor", shared.ErrForbidden, "person is not a professor")
	}

	prof, err := h.professors.ByPerson(ctx, person.ID)
	if err != nil {
		if !errors.Is(err, identity.ErrProfessorNotFound) {
			return nil, fmt.Errorf("setup_professor: resolve professor: %w", err)
		}
		prof = identity.DefaultProfessor(uuid.New().String(), person.ID)
		if err := h.professors.Create(ctx, prof); err != nil {
			return nil, shared.WrapError("identity", "SetupProfessor", shared.ErrInternal, "create professor record", err)
		}
	}

	prof.CompleteSetup(cmd.Subjects)
	if err := h.professors.Update(ctx, prof); err != nil {
		return nil, shared.WrapError("identity", "SetupProfessor", shared.ErrInternal, "persist professor", err)
	}

	_ = h.publisher.Publish(ctx, shared.NewBaseEvent(shared.EventProfessorSetupCompleted, prof.ID, map[string]interface{}{
		"subjects": len(prof.Subjects),
	}))

	return prof, nil
}
