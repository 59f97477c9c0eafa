package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRADEBOOK REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// GradebookRepository implements gradebook.Repository for PostgreSQL.
type GradebookRepository struct {
	conn *Connection
}

// NewGradebookRepository creates a new GradebookRepository.
func NewGradebookRepository(conn *Connection) *GradebookRepository {
	return &GradebookRepository{conn: conn}
}

// Upsert writes the grade for its (student, subject) pair in one atomic
// statement. ON CONFLICT serializes concurrent submissions in the store.
func (r *GradebookRepository) Upsert(ctx context.Context, g *gradebook.Grade) error {
	query := `
		INSERT INTO grades (id, student_id, subject_id, professor_id, points, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, subject_id) DO UPDATE SET
			professor_id = EXCLUDED.professor_id,
			points = EXCLUDED.points,
			recorded_at = EXCLUDED.recorded_at
	`

	_, err := r.conn.Exec(ctx, query,
		g.ID, g.StudentID, g.SubjectID, g.ProfessorID, g.Points, g.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert grade: %w", err)
	}
	return nil
}

// ByStudent returns all current grades of a student.
func (r *GradebookRepository) ByStudent(ctx context.Context, studentID string) ([]gradebook.Grade, error) {
	query := `
		SELECT id, student_id, subject_id, professor_id, points, recorded_at
		FROM grades
		WHERE student_id = $1
		ORDER BY recorded_at
	`

	rows, err := r.conn.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grades by student: %w", err)
	}
	defer rows.Close()

	return r.scanGrades(rows)
}

// BySubject returns all current grades for a subject.
func (r *GradebookRepository) BySubject(ctx context.Context, subjectID string) ([]gradebook.Grade, error) {
	query := `
		SELECT id, student_id, subject_id, professor_id, points, recorded_at
		FROM grades
		WHERE subject_id = $1
		ORDER BY recorded_at
	`

	rows, err := r.conn.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query grades by subject: %w", err)
	}
	defer rows.Close()

	return r.scanGrades(rows)
}

// ByStudentAndSubject returns the current grade for the pair.
func (r *GradebookRepository) ByStudentAndSubject(ctx context.Context, studentID, subjectID string) (*gradebook.Grade, error) {
	query := `
		SELECT id, student_id, subject_id, professor_id, points, recorded_at
		FROM grades
		WHERE student_id = $1 AND subject_id = $2
	`

	var g gradebook.Grade
	err := r.conn.QueryRow(ctx, query, studentID, subjectID).Scan(
		&g.ID, &g.StudentID, &g.SubjectID, &g.ProfessorID, &g.Points, &g.RecordedAt,
	)
	if IsNoRows(err) {
		return nil, gradebook.ErrGradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan grade: %w", err)
	}
	return &g, nil
}

func (r *GradebookRepository) scanGrades(rows pgx.Rows) ([]gradebook.Grade, error) {
	var grades []gradebook.Grade
	for rows.Next() {
		var g gradebook.Grade
		err := rows.Scan(&g.ID, &g.StudentID, &g.SubjectID, &g.ProfessorID, &g.Points, &g.RecordedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, g)
	}
	return grades, rows.Err()
}
