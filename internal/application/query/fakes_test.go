package query

import (
	"context"
	"sync"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
)

// Lean in-memory repositories for query tests. They only need lookups, so
// unlike the command-side fakes they skip the store-level conflict rules.

type fakePersonRepo struct {
	mu      sync.Mutex
	persons map[string]*identity.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{persons: make(map[string]*identity.Person)}
}

func (r *fakePersonRepo) add(p *identity.Person) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.persons[p.ID] = p
}

func (r *fakePersonRepo) Create(_ context.Context, p *identity.Person) error {
	r.add(p)
	return nil
}

func (r *fakePersonRepo) ByID(_ context.Context, id string) (*identity.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.persons[id]
	if !ok {
		return nil, identity.ErrPersonNotFound
	}
	return p, nil
}

func (r *fakePersonRepo) ByEmail(_ context.Context, email string) (*identity.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.persons {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, identity.ErrPersonNotFound
}

func (r *fakePersonRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, err := r.ByEmail(context.Background(), email)
	return err == nil, nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[string]*identity.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*identity.Student)}
}

func (r *fakeStudentRepo) add(s *identity.Student) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.students[s.ID] = s
}

func (r *fakeStudentRepo) Create(_ context.Context, s *identity.Student) error {
	r.add(s)
	return nil
}

func (r *fakeStudentRepo) ByID(_ context.Context, id string) (*identity.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, identity.ErrStudentNotFound
	}
	return s, nil
}

func (r *fakeStudentRepo) ByPerson(_ context.Context, personID string) (*identity.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.PersonID == personID {
			return s, nil
		}
	}
	return nil, identity.ErrStudentNotFound
}

func (r *fakeStudentRepo) Update(_ context.Context, s *identity.Student) error {
	r.add(s)
	return nil
}

func (r *fakeStudentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.students, id)
	return nil
}

type fakeProfessorRepo struct {
	mu         sync.Mutex
	professors map[string]*identity.Professor
}

func newFakeProfessorRepo() *fakeProfessorRepo {
	return &fakeProfessorRepo{professors: make(map[string]*identity.Professor)}
}

func (r *fakeProfessorRepo) Create(_ context.Context, p *identity.Professor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.professors[p.ID] = p
	return nil
}

func (r *fakeProfessorRepo) ByID(_ context.Context, id string) (*identity.Professor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professors[id]
	if !ok {
		return nil, identity.ErrProfessorNotFound
	}
	return p, nil
}

func (r *fakeProfessorRepo) ByPerson(_ context.Context, personID string) (*identity.Professor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.professors {
		if p.PersonID == personID {
			return p, nil
		}
	}
	return nil, identity.ErrProfessorNotFound
}

func (r *fakeProfessorRepo) Update(_ context.Context, p *identity.Professor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.professors[p.ID] = p
	return nil
}

type fakeCatalogRepo struct {
	mu       sync.Mutex
	majors   map[string]*catalog.Major
	subjects map[string]*catalog.Subject
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		majors:   make(map[string]*catalog.Major),
		subjects: make(map[string]*catalog.Subject),
	}
}

func (r *fakeCatalogRepo) MajorByID(_ context.Context, id string) (*catalog.Major, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.majors[id]
	if !ok {
		return nil, catalog.ErrMajorNotFound
	}
	return m, nil
}

func (r *fakeCatalogRepo) MajorByName(_ context.Context, name string) (*catalog.Major, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.majors {
		if m.Name == name {
			return m, nil
		}
	}
	return nil, catalog.ErrMajorNotFound
}

func (r *fakeCatalogRepo) SubjectByID(_ context.Context, id string) (*catalog.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.subjects[id]
	if !ok {
		return nil, catalog.ErrSubjectNotFound
	}
	return s, nil
}

func (r *fakeCatalogRepo) SubjectByName(_ context.Context, name string) (*catalog.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subjects {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, catalog.ErrSubjectNotFound
}

func (r *fakeCatalogRepo) SubjectsByIDs(_ context.Context, ids []string) ([]catalog.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool, len(ids))
	var out []catalog.Subject
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if s, ok := r.subjects[id]; ok {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) SubjectsOfMajor(_ context.Context, majorID string, year *int) ([]catalog.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []catalog.Subject
	for _, s := range r.subjects {
		if s.MajorID != majorID {
			continue
		}
		if year != nil && s.StudyYear != *year {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeCatalogRepo) CreateMajor(_ context.Context, m *catalog.Major) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.majors[m.ID] = m
	return nil
}

func (r *fakeCatalogRepo) CreateSubject(_ context.Context, s *catalog.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subjects[s.ID] = s
	return nil
}

type fakeEnrollmentRepo struct {
	mu        sync.Mutex
	byStudent map[string]*enrollment.Enrollment
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{byStudent: make(map[string]*enrollment.Enrollment)}
}

func (r *fakeEnrollmentRepo) Create(_ context.Context, e *enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byStudent[e.StudentID]; ok {
		return enrollment.ErrAlreadyEnrolled
	}
	r.byStudent[e.StudentID] = e
	return nil
}

func (r *fakeEnrollmentRepo) ByStudent(_ context.Context, studentID string) (*enrollment.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byStudent[studentID]
	if !ok {
		return nil, enrollment.ErrNotEnrolled
	}
	return e, nil
}

func (r *fakeEnrollmentRepo) Replace(_ context.Context, e *enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byStudent[e.StudentID] = e
	return nil
}

func (r *fakeEnrollmentRepo) DeleteByStudent(_ context.Context, studentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byStudent[studentID]
	delete(r.byStudent, studentID)
	return ok, nil
}

type fakeGradebookRepo struct {
	mu     sync.Mutex
	grades []gradebook.Grade
}

func newFakeGradebookRepo() *fakeGradebookRepo {
	return &fakeGradebookRepo{}
}

func (r *fakeGradebookRepo) Upsert(_ context.Context, g *gradebook.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.grades {
		if r.grades[i].StudentID == g.StudentID && r.grades[i].SubjectID == g.SubjectID {
			r.grades[i] = *g
			return nil
		}
	}
	r.grades = append(r.grades, *g)
	return nil
}

func (r *fakeGradebookRepo) ByStudent(_ context.Context, studentID string) ([]gradebook.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []gradebook.Grade
	for _, g := range r.grades {
		if g.StudentID == studentID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGradebookRepo) BySubject(_ context.Context, subjectID string) ([]gradebook.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []gradebook.Grade
	for _, g := range r.grades {
		if g.SubjectID == subjectID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGradebookRepo) ByStudentAndSubject(_ context.Context, studentID, subjectID string) (*gradebook.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.grades {
		if r.grades[i].StudentID == studentID && r.grades[i].SubjectID == subjectID {
			return &r.grades[i], nil
		}
	}
	return nil, gradebook.ErrGradeNotFound
}

type fakeExamRepo struct {
	mu    sync.Mutex
	exams map[string]*exam.Exam
	regs  map[string]*exam.Registration
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{
		exams: make(map[string]*exam.Exam),
		regs:  make(map[string]*exam.Registration),
	}
}

func (r *fakeExamRepo) CreateExam(_ context.Context, e *exam.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exams[e.ID] = e
	return nil
}

func (r *fakeExamRepo) ExamByID(_ context.Context, id string) (*exam.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exams[id]
	if !ok {
		return nil, exam.ErrExamNotFound
	}
	return e, nil
}

func (r *fakeExamRepo) ExamsByProfessor(_ context.Context, professorID string) ([]exam.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []exam.Exam
	for _, e := range r.exams {
		if e.ProfessorID == professorID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeExamRepo) ListExams(_ context.Context) ([]exam.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []exam.Exam
	for _, e := range r.exams {
		out = append(out, *e)
	}
	return out, nil
}

func (r *fakeExamRepo) UpdateExam(_ context.Context, e *exam.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exams[e.ID] = e
	return nil
}

func (r *fakeExamRepo) CreateRegistration(_ context.Context, reg *exam.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.regs {
		if existing.StudentID == reg.StudentID && existing.ExamID == reg.ExamID {
			return exam.ErrAlreadyRegistered
		}
	}
	r.regs[reg.ID] = reg
	return nil
}

func (r *fakeExamRepo) RegistrationByID(_ context.Context, id string) (*exam.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[id]
	if !ok {
		return nil, exam.ErrRegistrationNotFound
	}
	return reg, nil
}

func (r *fakeExamRepo) UpdateRegistration(_ context.Context, reg *exam.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs[reg.ID] = reg
	return nil
}

func (r *fakeExamRepo) RegistrationsByStudent(_ context.Context, studentID string) ([]exam.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []exam.Registration
	for _, reg := range r.regs {
		if reg.StudentID == studentID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeExamRepo) RegistrationsByExam(_ context.Context, examID string) ([]exam.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []exam.Registration
	for _, reg := range r.regs {
		if reg.ExamID == examID {
			out = append(out, *reg)
		}
	}
	return out, nil
}

func (r *fakeExamRepo) CountRegistrations(_ context.Context, examID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, reg := range r.regs {
		if reg.ExamID == examID && reg.Status != exam.RegistrationWithdrawn {
			count++
		}
	}
	return count, nil
}

// memoryReportCache is an in-process ReportCache.
type memoryReportCache struct {
	mu      sync.Mutex
	reports map[string]*ProgressReport
	sets    int
}

func newMemoryReportCache() *memoryReportCache {
	return &memoryReportCache{reports: make(map[string]*ProgressReport)}
}

func (c *memoryReportCache) Get(_ context.Context, studentID string) (*ProgressReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reports[studentID], nil
}

func (c *memoryReportCache) Set(_ context.Context, studentID string, report *ProgressReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports[studentID] = report
	c.sets++
	return nil
}

func (c *memoryReportCache) Invalidate(_ context.Context, studentID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.reports, studentID)
	return nil
}
