package postgres

// GetMigrations returns all embedded migrations in order.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_identity",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_catalog",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_academic_records",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
	}
}

// Persons, students and professors. A person owns at most one student record
// and at most one professor record.
const migration001Up = `
CREATE TABLE IF NOT EXISTS persons (
	id            TEXT PRIMARY KEY,
	first_name    TEXT NOT NULL,
	last_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('STUDENT', 'PROFESSOR')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS students (
	id           TEXT PRIMARY KEY,
	person_id    TEXT NOT NULL UNIQUE REFERENCES persons(id) ON DELETE CASCADE,
	major_name   TEXT NOT NULL DEFAULT '',
	study_year   TEXT NOT NULL DEFAULT '',
	index_number TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS professors (
	id              TEXT PRIMARY KEY,
	person_id       TEXT NOT NULL UNIQUE REFERENCES persons(id) ON DELETE CASCADE,
	title           TEXT NOT NULL DEFAULT 'Professor',
	office          TEXT NOT NULL DEFAULT 'TBD',
	subjects        TEXT[] NOT NULL DEFAULT '{}',
	setup_completed BOOLEAN NOT NULL DEFAULT FALSE
);
`

const migration001Down = `
DROP TABLE IF EXISTS professors;
DROP TABLE IF EXISTS students;
DROP TABLE IF EXISTS persons;
`

// Majors and subjects. Major names are unique across the faculty.
const migration002Up = `
CREATE TABLE IF NOT EXISTS majors (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS subjects (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	ects       INTEGER NOT NULL CHECK (ects >= 0),
	required   BOOLEAN NOT NULL DEFAULT FALSE,
	study_year INTEGER NOT NULL DEFAULT 1,
	major_id   TEXT NOT NULL REFERENCES majors(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_subjects_major ON subjects(major_id);
`

const migration002Down = `
DROP TABLE IF EXISTS subjects;
DROP TABLE IF EXISTS majors;
`

// Enrollments, grades, exams and registrations. The UNIQUE constraints here
// are load-bearing: they resolve concurrent duplicate writes to exactly one
// winner.
const migration003Up = `
CREATE TABLE IF NOT EXISTS enrollments (
	id            TEXT PRIMARY KEY,
	student_id    TEXT NOT NULL UNIQUE REFERENCES students(id) ON DELETE CASCADE,
	major_id      TEXT NOT NULL REFERENCES majors(id),
	academic_year TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS enrollment_elective_subjects (
	enrollment_id TEXT NOT NULL REFERENCES enrollments(id) ON DELETE CASCADE,
	subject_id    TEXT NOT NULL REFERENCES subjects(id),
	PRIMARY KEY (enrollment_id, subject_id)
);

CREATE TABLE IF NOT EXISTS grades (
	id           TEXT PRIMARY KEY,
	student_id   TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	subject_id   TEXT NOT NULL REFERENCES subjects(id),
	professor_id TEXT NOT NULL REFERENCES professors(id),
	points       INTEGER NOT NULL CHECK (points BETWEEN 0 AND 100),
	recorded_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (student_id, subject_id)
);

CREATE TABLE IF NOT EXISTS exams (
	id                    TEXT PRIMARY KEY,
	subject_name          TEXT NOT NULL,
	professor_id          TEXT NOT NULL REFERENCES professors(id),
	exam_time             TIMESTAMPTZ NOT NULL,
	classroom             TEXT NOT NULL DEFAULT '',
	capacity              INTEGER NOT NULL DEFAULT 0,
	registration_deadline TIMESTAMPTZ,
	status                TEXT NOT NULL DEFAULT 'SCHEDULED'
		CHECK (status IN ('SCHEDULED', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED'))
);

CREATE TABLE IF NOT EXISTS exam_registrations (
	id            TEXT PRIMARY KEY,
	student_id    TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
	exam_id       TEXT NOT NULL REFERENCES exams(id) ON DELETE CASCADE,
	registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	points        INTEGER CHECK (points BETWEEN 0 AND 100),
	status        TEXT NOT NULL DEFAULT 'REGISTERED'
		CHECK (status IN ('REGISTERED', 'PASSED', 'FAILED', 'COMPLETED', 'WITHDRAWN')),
	UNIQUE (student_id, exam_id)
);

CREATE INDEX IF NOT EXISTS idx_grades_student ON grades(student_id);
CREATE INDEX IF NOT EXISTS idx_exam_registrations_student ON exam_registrations(student_id);
CREATE INDEX IF NOT EXISTS idx_exam_registrations_exam ON exam_registrations(exam_id);
`

const migration003Down = `
DROP TABLE IF EXISTS exam_registrations;
DROP TABLE IF EXISTS exams;
DROP TABLE IF EXISTS grades;
DROP TABLE IF EXISTS enrollment_elective_subjects;
DROP TABLE IF EXISTS enrollments;
`
