package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CatalogRepository implements catalog.Repository for PostgreSQL.
type CatalogRepository struct {
	conn *Connection
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

// MajorByID returns a major by ID.
func (r *CatalogRepository) MajorByID(ctx context.Context, id string) (*catalog.Major, error) {
	return r.scanMajor(r.conn.QueryRow(ctx, "SELECT id, name FROM majors WHERE id = $1", id))
}

// MajorByName returns a major by its unique name.
func (r *CatalogRepository) MajorByName(ctx context.Context, name string) (*catalog.Major, error) {
	return r.scanMajor(r.conn.QueryRow(ctx, "SELECT id, name FROM majors WHERE name = $1", name))
}

// SubjectByID returns a subject by ID.
func (r *CatalogRepository) SubjectByID(ctx context.Context, id string) (*catalog.Subject, error) {
	query := `
		SELECT id, name, ects, required, study_year, major_id
		FROM subjects
		WHERE id = $1
	`
	return r.scanSubject(r.conn.QueryRow(ctx, query, id))
}

// SubjectByName returns a subject by name.
func (r *CatalogRepository) SubjectByName(ctx context.Context, name string) (*catalog.Subject, error) {
	query := `
		SELECT id, name, ects, required, study_year, major_id
		FROM subjects
		WHERE name = $1
	`
	return r.scanSubject(r.conn.QueryRow(ctx, query, name))
}

// SubjectsByIDs returns the subjects for the given IDs. Missing IDs are
// simply absent from the result.
func (r *CatalogRepository) SubjectsByIDs(ctx context.Context, ids []string) ([]catalog.Subject, error) {
	if len(ids) == 0 {
		return []catalog.Subject{}, nil
	}

	query := `
		SELECT id, name, ects, required, study_year, major_id
		FROM subjects
		WHERE id = ANY($1)
	`

	rows, err := r.conn.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects by ids: %w", err)
	}
	defer rows.Close()

	return r.scanSubjects(rows)
}

// SubjectsOfMajor returns the subjects of a major, optionally filtered by
// study year.
func (r *CatalogRepository) SubjectsOfMajor(ctx context.Context, majorID string, year *int) ([]catalog.Subject, error) {
	query := `
		SELECT id, name, ects, required, study_year, major_id
		FROM subjects
		WHERE major_id = $1
	`
	args := []interface{}{majorID}

	if year != nil {
		query += " AND study_year = $2"
		args = append(args, *year)
	}
	query += " ORDER BY study_year, name"

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query subjects of major: %w", err)
	}
	defer rows.Close()

	return r.scanSubjects(rows)
}

// CreateMajor persists a new major.
func (r *CatalogRepository) CreateMajor(ctx context.Context, m *catalog.Major) error {
	_, err := r.conn.Exec(ctx, "INSERT INTO majors (id, name) VALUES ($1, $2)", m.ID, m.Name)
	if err != nil {
		return fmt.Errorf("failed to create major: %w", err)
	}
	return nil
}

// CreateSubject persists a new subject.
func (r *CatalogRepository) CreateSubject(ctx context.Context, s *catalog.Subject) error {
	query := `
		INSERT INTO subjects (id, name, ects, required, study_year, major_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.conn.Exec(ctx, query, s.ID, s.Name, s.ECTS, s.Required, s.StudyYear, s.MajorID)
	if err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

func (r *CatalogRepository) scanMajor(row pgx.Row) (*catalog.Major, error) {
	var m catalog.Major
	err := row.Scan(&m.ID, &m.Name)
	if IsNoRows(err) {
		return nil, catalog.ErrMajorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan major: %w", err)
	}
	return &m, nil
}

func (r *CatalogRepository) scanSubject(row pgx.Row) (*catalog.Subject, error) {
	var s catalog.Subject
	err := row.Scan(&s.ID, &s.Name, &s.ECTS, &s.Required, &s.StudyYear, &s.MajorID)
	if IsNoRows(err) {
		return nil, catalog.ErrSubjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan subject: %w", err)
	}
	return &s, nil
}

func (r *CatalogRepository) scanSubjects(rows pgx.Rows) ([]catalog.Subject, error) {
	var subjects []catalog.Subject
	for rows.Next() {
		var s catalog.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.ECTS, &s.Required, &s.StudyYear, &s.MajorID); err != nil {
			return nil, fmt.Errorf("failed to scan subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}
