package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAM REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ExamRepository implements exam.Repository for PostgreSQL.
//
// The UNIQUE (student_id, exam_id) constraint on exam_registrations carries
// the one-registration-per-pair invariant.
type ExamRepository struct {
	conn *Connection
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(conn *Connection) *ExamRepository {
	return &ExamRepository{conn: conn}
}

// CreateExam persists a new exam. A zero registration deadline is stored as
// NULL.
func (r *ExamRepository) CreateExam(ctx context.Context, e *exam.Exam) error {
	query := `
		INSERT INTO exams (id, subject_name, professor_id, exam_time, classroom,
			capacity, registration_deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	var deadline *time.Time
	if !e.RegistrationDeadline.IsZero() {
		deadline = &e.RegistrationDeadline
	}

	_, err := r.conn.Exec(ctx, query,
		e.ID, e.SubjectName, e.ProfessorID, e.ExamTime, e.Classroom,
		e.Capacity, deadline, string(e.Status),
	)
	if err != nil {
		return fmt.Errorf("failed to create exam: %w", err)
	}
	return nil
}

// ExamByID returns an exam by ID.
func (r *ExamRepository) ExamByID(ctx context.Context, id string) (*exam.Exam, error) {
	query := examSelect + " WHERE id = $1"
	return r.scanExam(r.conn.QueryRow(ctx, query, id))
}

// ExamsByProfessor returns the exams held by a professor.
func (r *ExamRepository) ExamsByProfessor(ctx context.Context, professorID string) ([]exam.Exam, error) {
	query := examSelect + " WHERE professor_id = $1 ORDER BY exam_time"

	rows, err := r.conn.Query(ctx, query, professorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exams by professor: %w", err)
	}
	defer rows.Close()

	return r.scanExams(rows)
}

// ListExams returns all exams ordered by time.
func (r *ExamRepository) ListExams(ctx context.Context) ([]exam.Exam, error) {
	rows, err := r.conn.Query(ctx, examSelect+" ORDER BY exam_time")
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}
	defer rows.Close()

	return r.scanExams(rows)
}

// UpdateExam updates the mutable exam fields.
func (r *ExamRepository) UpdateExam(ctx context.Context, e *exam.Exam) error {
	query := `
		UPDATE exams
		SET exam_time = $1, classroom = $2, capacity = $3,
			registration_deadline = $4, status = $5
		WHERE id = $6
	`

	var deadline *time.Time
	if !e.RegistrationDeadline.IsZero() {
		deadline = &e.RegistrationDeadline
	}

	result, err := r.conn.Exec(ctx, query,
		e.ExamTime, e.Classroom, e.Capacity, deadline, string(e.Status), e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update exam: %w", err)
	}
	if result.RowsAffected() == 0 {
		return exam.ErrExamNotFound
	}
	return nil
}

// CreateRegistration persists a new registration. The unique (student, exam)
// constraint maps to ErrAlreadyRegistered.
func (r *ExamRepository) CreateRegistration(ctx context.Context, reg *exam.Registration) error {
	query := `
		INSERT INTO exam_registrations (id, student_id, exam_id, registered_at, points, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.Exec(ctx, query,
		reg.ID, reg.StudentID, reg.ExamID, reg.RegisteredAt, reg.Points, string(reg.Status),
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return exam.ErrAlreadyRegistered
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

// RegistrationByID returns a registration by ID.
func (r *ExamRepository) RegistrationByID(ctx context.Context, id string) (*exam.Registration, error) {
	query := registrationSelect + " WHERE id = $1"
	return r.scanRegistration(r.conn.QueryRow(ctx, query, id))
}

// UpdateRegistration persists the points and status of a registration.
func (r *ExamRepository) UpdateRegistration(ctx context.Context, reg *exam.Registration) error {
	query := `
		UPDATE exam_registrations
		SET points = $1, status = $2
		WHERE id = $3
	`

	result, err := r.conn.Exec(ctx, query, reg.Points, string(reg.Status), reg.ID)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}
	if result.RowsAffected() == 0 {
		return exam.ErrRegistrationNotFound
	}
	return nil
}

// RegistrationsByStudent returns the registrations of a student.
func (r *ExamRepository) RegistrationsByStudent(ctx context.Context, studentID string) ([]exam.Registration, error) {
	query := registrationSelect + " WHERE student_id = $1 ORDER BY registered_at"

	rows, err := r.conn.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations by student: %w", err)
	}
	defer rows.Close()

	return r.scanRegistrations(rows)
}

// RegistrationsByExam returns the registrations for an exam.
func (r *ExamRepository) RegistrationsByExam(ctx context.Context, examID string) ([]exam.Registration, error) {
	query := registrationSelect + " WHERE exam_id = $1 ORDER BY registered_at"

	rows, err := r.conn.Query(ctx, query, examID)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations by exam: %w", err)
	}
	defer rows.Close()

	return r.scanRegistrations(rows)
}

// CountRegistrations returns the number of non-withdrawn registrations.
func (r *ExamRepository) CountRegistrations(ctx context.Context, examID string) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM exam_registrations
		WHERE exam_id = $1 AND status <> 'WITHDRAWN'
	`, examID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count registrations: %w", err)
	}
	return count, nil
}

const examSelect = `
	SELECT id, subject_name, professor_id, exam_time, classroom,
		   capacity, registration_deadline, status
	FROM exams`

const registrationSelect = `
	SELECT id, student_id, exam_id, registered_at, points, status
	FROM exam_registrations`

func (r *ExamRepository) scanExam(row pgx.Row) (*exam.Exam, error) {
	var e exam.Exam
	var deadline *time.Time
	var status string

	err := row.Scan(&e.ID, &e.SubjectName, &e.ProfessorID, &e.ExamTime,
		&e.Classroom, &e.Capacity, &deadline, &status)
	if IsNoRows(err) {
		return nil, exam.ErrExamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan exam: %w", err)
	}

	if deadline != nil {
		e.RegistrationDeadline = *deadline
	}
	e.Status = exam.Status(status)
	return &e, nil
}

func (r *ExamRepository) scanExams(rows pgx.Rows) ([]exam.Exam, error) {
	var exams []exam.Exam
	for rows.Next() {
		var e exam.Exam
		var deadline *time.Time
		var status string

		err := rows.Scan(&e.ID, &e.SubjectName, &e.ProfessorID, &e.ExamTime,
			&e.Classroom, &e.Capacity, &deadline, &status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exam: %w", err)
		}

		if deadline != nil {
			e.RegistrationDeadline = *deadline
		}
		e.Status = exam.Status(status)
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

func (r *ExamRepository) scanRegistration(row pgx.Row) (*exam.Registration, error) {
	var reg exam.Registration
	var status string

	err := row.Scan(&reg.ID, &reg.StudentID, &reg.ExamID, &reg.RegisteredAt, &reg.Points, &status)
	if IsNoRows(err) {
		return nil, exam.ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan registration: %w", err)
	}

	reg.Status = exam.RegistrationStatus(status)
	return &reg, nil
}

func (r *ExamRepository) scanRegistrations(rows pgx.Rows) ([]exam.Registration, error) {
	var regs []exam.Registration
	for rows.Next() {
		var reg exam.Registration
		var status string

		err := rows.Scan(&reg.ID, &reg.StudentID, &reg.ExamID, &reg.RegisteredAt, &reg.Points, &status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}

		reg.Status = exam.RegistrationStatus(status)
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
