package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// EnrollmentRepository implements enrollment.Repository for PostgreSQL.
//
// The UNIQUE constraint on enrollments.student_id carries the one-enrollment-
// per-student invariant; elective rows live in a child table and are written
// in the same transaction as the enrollment itself.
type EnrollmentRepository struct {
	conn *Connection
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(conn *Connection) *EnrollmentRepository {
	return &EnrollmentRepository{conn: conn}
}

// Create persists a new enrollment with its electives atomically.
func (r *EnrollmentRepository) Create(ctx context.Context, e *enrollment.Enrollment) error {
	err := r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		return insertEnrollment(ctx, tx, e)
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return enrollment.ErrAlreadyEnrolled
		}
		return fmt.Errorf("failed to create enrollment: %w", err)
	}
	return nil
}

// ByStudent returns the student's current enrollment with its electives.
func (r *EnrollmentRepository) ByStudent(ctx context.Context, studentID string) (*enrollment.Enrollment, error) {
	query := `
		SELECT id, student_id, major_id, academic_year, created_at
		FROM enrollments
		WHERE student_id = $1
	`

	var e enrollment.Enrollment
	err := r.conn.QueryRow(ctx, query, studentID).Scan(
		&e.ID, &e.StudentID, &e.MajorID, &e.AcademicYear, &e.CreatedAt,
	)
	if IsNoRows(err) {
		return nil, enrollment.ErrNotEnrolled
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan enrollment: %w", err)
	}

	rows, err := r.conn.Query(ctx,
		"SELECT subject_id FROM enrollment_elective_subjects WHERE enrollment_id = $1",
		e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query electives: %w", err)
	}
	defer rows.Close()

	e.ElectiveSubjectIDs = []string{}
	for rows.Next() {
		var subjectID string
		if err := rows.Scan(&subjectID); err != nil {
			return nil, fmt.Errorf("failed to scan elective: %w", err)
		}
		e.ElectiveSubjectIDs = append(e.ElectiveSubjectIDs, subjectID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &e, nil
}

// Replace deletes the student's existing enrollment (if any) and inserts the
// new one in a single transaction. A failure rolls the whole swap back, so
// the original rows stay in place.
func (r *EnrollmentRepository) Replace(ctx context.Context, e *enrollment.Enrollment) error {
	err := r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM enrollments WHERE student_id = $1", e.StudentID); err != nil {
			return fmt.Errorf("delete previous enrollment: %w", err)
		}
		return insertEnrollment(ctx, tx, e)
	})
	if err != nil {
		return fmt.Errorf("failed to replace enrollment: %w", err)
	}
	return nil
}

// DeleteByStudent deletes the student's enrollment if present. Electives
// cascade with the parent row.
func (r *EnrollmentRepository) DeleteByStudent(ctx context.Context, studentID string) (bool, error) {
	result, err := r.conn.Exec(ctx, "DELETE FROM enrollments WHERE student_id = $1", studentID)
	if err != nil {
		return false, fmt.Errorf("failed to delete enrollment: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func insertEnrollment(ctx context.Context, tx pgx.Tx, e *enrollment.Enrollment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO enrollments (id, student_id, major_id, academic_year, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.StudentID, e.MajorID, e.AcademicYear, e.CreatedAt)
	if err != nil {
		return err
	}

	for _, subjectID := range e.ElectiveSubjectIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO enrollment_elective_subjects (enrollment_id, subject_id)
			VALUES ($1, $2)
		`, e.ID, subjectID)
		if err != nil {
			return err
		}
	}
	return nil
}
