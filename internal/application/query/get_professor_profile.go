package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// GetProfessorProfileQuery requests the professor profile of a person, looked
// up either by person id or by email.
type GetProfessorProfileQuery struct {
	PersonID string
	Email    string
}

// Validate validates the query.
func (q GetProfessorProfileQuery) Validate() error {
	if q.PersonID == "" && strings.TrimSpace(q.Email) == "" {
		return shared.NewDomainError("identity", "GetProfessorProfile", shared.ErrValidation, "person_id or email is required")
	}
	return nil
}

// ProfessorProfileView joins the person with their professor record and the
// exams they hold.
type ProfessorProfileView struct {
	PersonID       string     `json:"person_id"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	ProfessorID    string     `json:"professor_id"`
	Title          string     `json:"title"`
	Office         string     `json:"office"`
	Subjects       []string   `json:"subjects"`
	SetupCompleted bool       `json:"setup_completed"`
	Exams          []ExamView `json:"exams"`
}

// GetProfessorProfileHandler handles the GetProfessorProfileQuery.
//
// A PROFESSOR person without a professor record gets one created with the
// default title and office on first lookup, so the profile page never 404s
// for a legitimately registered professor.
type GetProfessorProfileHandler struct {
	persons    identity.PersonRepository
	professors identity.ProfessorRepository
	exams      exam.Repository
}

// NewGetProfessorProfileHandler creates a new GetProfessorProfileHandler.
func NewGetProfessorProfileHandler(
	persons identity.PersonRepository,
	professors identity.ProfessorRepository,
	exams exam.Repository,
) *GetProfessorProfileHandler {
	return &GetProfessorProfileHandler{persons: persons, professors: professors, exams: exams}
}

// Handle resolves (and lazily creates) the professor profile.
func (h *GetProfessorProfileHandler) Handle(ctx context.Context, q GetProfessorProfileQuery) (*ProfessorProfileView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	person, err := h.resolvePerson(ctx, q)
	if err != nil {
		return nil, err
	}
	if person.Role != identity.RoleProfessor {
		return nil, shared.NewDomainError("identity", "GetProfessorProfile", shared.ErrForbidden, "person is not a professor")
	}

	prof, err := h.professors.ByPerson(ctx, person.ID)
	if err != nil {
		if !errors.Is(err, identity.ErrProfessorNotFound) {
			return nil, fmt.Errorf("get_professor_profile: resolve professor: %w", err)
		}
		prof = identity.DefaultProfessor(uuid.New().String(), person.ID)
		if err := h.professors.Create(ctx, prof); err != nil {
			return nil, shared.WrapError("identity", "GetProfessorProfile", shared.ErrInternal, "create professor record", err)
		}
	}

	subjects := prof.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	held, err := h.exams.ExamsByProfessor(ctx, prof.ID)
	if err != nil {
		return nil, fmt.Errorf("get_professor_profile: load exams: %w", err)
	}
	examViews := make([]ExamView, 0, len(held))
	for i := range held {
		registered, err := h.exams.CountRegistrations(ctx, held[i].ID)
		if err != nil {
			return nil, fmt.Errorf("get_professor_profile: count registrations for %s: %w", held[i].ID, err)
		}
		examViews = append(examViews, buildExamView(&held[i], registered))
	}

	return &ProfessorProfileView{
		PersonID:       person.ID,
		FullName:       person.FullName(),
		Email:          person.Email,
		ProfessorID:    prof.ID,
		Title:          prof.Title,
		Office:         prof.Office,
		Subjects:       subjects,
		SetupCompleted: prof.SetupCompleted,
		Exams:          examViews,
	}, nil
}

// resolvePerson prefers the id; the email path serves clients that only know
// the login identity. Emails are stored lowercased.
func (h *GetProfessorProfileHandler) resolvePerson(ctx context.Context, q GetProfessorProfileQuery) (*identity.Person, error) {
	var (
		person *identity.Person
		err    error
	)
	if q.PersonID != "" {
		person, err = h.persons.ByID(ctx, q.PersonID)
	} else {
		person, err = h.persons.ByEmail(ctx, strings.ToLower(strings.TrimSpace(q.Email)))
	}
	if err != nil {
		if errors.Is(err, identity.ErrPersonNotFound) {
			return nil, shared.WrapError("identity", "GetProfessorProfile", shared.ErrNotFound, "person not found", err)
		}
		return nil, fmt.Errorf("get_professor_profile: resolve person: %w", err)
	}
	return person, nil
}
