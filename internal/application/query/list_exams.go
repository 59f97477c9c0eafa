package query

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
)

// ExamView is an exam with its current non-withdrawn registration count, so
// clients can show remaining seats next to each entry.
type ExamView struct {
	ExamID               string      `json:"exam_id"`
	SubjectName          string      `json:"subject_name"`
	ProfessorID          string      `json:"professor_id"`
	ExamTime             time.Time   `json:"exam_time"`
	Classroom            string      `json:"classroom"`
	Capacity             int         `json:"capacity"`
	Registered           int         `json:"registered"`
	RegistrationDeadline *time.Time  `json:"registration_deadline,omitempty"`
	Status               exam.Status `json:"status"`
}

// ListExamsQuery requests all exams.
type ListExamsQuery struct{}

// ListExamsHandler handles the ListExamsQuery.
type ListExamsHandler struct {
	exams exam.Repository
}

// NewListExamsHandler creates a new ListExamsHandler.
func NewListExamsHandler(exams exam.Repository) *ListExamsHandler {
	return &ListExamsHandler{exams: exams}
}

// Handle returns every exam, earliest first.
func (h *ListExamsHandler) Handle(ctx context.Context, _ ListExamsQuery) ([]ExamView, error) {
	exams, err := h.exams.ListExams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_exams: load exams: %w", err)
	}

	views := make([]ExamView, 0, len(exams))
	for i := range exams {
		registered, err := h.exams.CountRegistrations(ctx, exams[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list_exams: count registrations for %s: %w", exams[i].ID, err)
		}
		views = append(views, buildExamView(&exams[i], registered))
	}

	sort.Slice(views, func(i, j int) bool { return views[i].ExamTime.Before(views[j].ExamTime) })
	return views, nil
}

func buildExamView(ex *exam.Exam, registered int) ExamView {
	view := ExamView{
		ExamID:      ex.ID,
		SubjectName: ex.SubjectName,
		ProfessorID: ex.ProfessorID,
		ExamTime:    ex.ExamTime,
		Classroom:   ex.Classroom,
		Capacity:    ex.Capacity,
		Registered:  registered,
		Status:      ex.Status,
	}
	if !ex.RegistrationDeadline.IsZero() {
		deadline := ex.RegistrationDeadline
		view.RegistrationDeadline = &deadline
	}
	return view
}
