package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// RegistrationView is a registration with its exam context and the grade
// fields derived from the stored points.
type RegistrationView struct {
	RegistrationID string                  `json:"registration_id"`
	StudentID      string                  `json:"student_id"`
	ExamID         string                  `json:"exam_id"`
	SubjectName    string                  `json:"subject_name"`
	ExamTime       time.Time               `json:"exam_time"`
	Classroom      string                  `json:"classroom"`
	RegisteredAt   time.Time               `json:"registered_at"`
	Status         exam.RegistrationStatus `json:"status"`

	Points      *int   `json:"points,omitempty"`
	Grade       int    `json:"grade,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListStudentRegistrationsQuery requests all registrations of a student.
type ListStudentRegistrationsQuery struct {
	StudentID string
}

// Validate validates the query.
func (q ListStudentRegistrationsQuery) Validate() error {
	if q.StudentID == "" {
		return shared.NewDomainError("exam", "ListRegistrations", shared.ErrValidation, "student_id is required")
	}
	return nil
}

// ListExamRegistrationsQuery requests all registrations for an exam.
type ListExamRegistrationsQuery struct {
	ExamID string
}

// Validate validates the query.
func (q ListExamRegistrationsQuery) Validate() error {
	if q.ExamID == "" {
		return shared.NewDomainError("exam", "ListRegistrations", shared.ErrValidation, "exam_id is required")
	}
	return nil
}

// ListRegistrationsHandler serves both registration listings.
type ListRegistrationsHandler struct {
	students identity.StudentRepository
	exams    exam.Repository
}

// NewListRegistrationsHandler creates a new ListRegistrationsHandler.
func NewListRegistrationsHandler(students identity.StudentRepository, exams exam.Repository) *ListRegistrationsHandler {
	return &ListRegistrationsHandler{students: students, exams: exams}
}

// ByStudent returns the registrations of a student, each joined with its exam.
func (h *ListRegistrationsHandler) ByStudent(ctx context.Context, q ListStudentRegistrationsQuery) ([]RegistrationView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	if _, err := h.students.ByID(ctx, q.StudentID); err != nil {
		if errors.Is(err, identity.ErrStudentNotFound) {
			return nil, shared.WrapError("exam", "ListRegistrations", shared.ErrNotFound, "student not found", err)
		}
		return nil, fmt.Errorf("list_registrations: resolve student: %w", err)
	}

	regs, err := h.exams.RegistrationsByStudent(ctx, q.StudentID)
	if err != nil {
		return nil, fmt.Errorf("list_registrations: load registrations: %w", err)
	}

	views := make([]RegistrationView, 0, len(regs))
	for i := range regs {
		ex, err := h.exams.ExamByID(ctx, regs[i].ExamID)
		if err != nil {
			return nil, fmt.Errorf("list_registrations: resolve exam %s: %w", regs[i].ExamID, err)
		}
		views = append(views, buildRegistrationView(&regs[i], ex))
	}
	return views, nil
}

// ByExam returns the registrations for an exam.
func (h *ListRegistrationsHandler) ByExam(ctx context.Context, q ListExamRegistrationsQuery) ([]RegistrationView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	ex, err := h.exams.ExamByID(ctx, q.ExamID)
	if err != nil {
		if errors.Is(err, exam.ErrExamNotFound) {
			return nil, shared.WrapError("exam", "ListRegistrations", shared.ErrNotFound, "exam not found", err)
		}
		return nil, fmt.Errorf("list_registrations: resolve exam: %w", err)
	}

	regs, err := h.exams.RegistrationsByExam(ctx, q.ExamID)
	if err != nil {
		return nil, fmt.Errorf("list_registrations: load registrations: %w", err)
	}

	views := make([]RegistrationView, 0, len(regs))
	for i := range regs {
		views = append(views, buildRegistrationView(&regs[i], ex))
	}
	return views, nil
}

func buildRegistrationView(r *exam.Registration, ex *exam.Exam) RegistrationView {
	view := RegistrationView{
		RegistrationID: r.ID,
		StudentID:      r.StudentID,
		ExamID:         r.ExamID,
		SubjectName:    ex.SubjectName,
		ExamTime:       ex.ExamTime,
		Classroom:      ex.Classroom,
		RegisteredAt:   r.RegisteredAt,
		Status:         r.Status,
		Points:         r.Points,
	}
	if r.Points != nil {
		view.Grade = r.Grade()
		view.Description = r.Description()
	}
	return view
}
