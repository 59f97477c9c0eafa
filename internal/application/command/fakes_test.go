package command

import (
	"context"
	"sync"

	"github.com/faculty-hub/faculty-hub/internal/domain/catalog"
	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/gradebook"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
	"github.com/faculty-hub/faculty-hub/internal/domain/shared"
)

// In-memory repositories for handler tests. Each one guards its maps with a
// mutex and enforces the same uniqueness rules the SQL schema does, so the
// conflict paths behave like the real store.

type fakePersonRepo struct {
	mu      sync.Mutex
	persons map[string]*identity.Person
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{persons: make(map[string]*identity.Person)}
}

func (r *fakePersonRepo) Create(_ context.Context, p *identity.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.persons {
		if existing.Email == p.Email {
			return identity.ErrEmailTaken
		}
	}
	cp := *p
	r.persons[p.ID] = &cp
	return nil
}

func (r *fakePersonRepo) ByID(_ context.Context, id string) (*identity.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.persons[id]
	if !ok {
		return nil, identity.ErrPersonNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePersonRepo) ByEmail(_ context.Context, email string) (*identity.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.persons {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, identity.ErrPersonNotFound
}

func (r *fakePersonRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.persons {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeStudentRepo struct {
	mu       sync.Mutex
	students map[string]*identity.Student
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*identity.Student)}
}

func (r *fakeStudentRepo) Create(_ context.Context, s *identity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.students[s.ID] = &cp
	return nil
}

func (r *fakeStudentRepo) ByID(_ context.Context, id string) (*identity.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.students[id]
	if !ok {
		return nil, identity.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudentRepo) ByPerson(_ context.Context, personID string) (*identity.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.students {
		if s.PersonID == personID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, identity.ErrStudentNotFound
}

func (r *fakeStudentRepo) Update(_ context.Context, s *identity.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.students[s.ID]; !ok {
		return identity.ErrStudentNotFound
	}
	cp := *s
	r.students[s.ID] = &cp
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
	cp := *p
	r.professors[p.ID] = &cp
	return nil
}

func (r *fakeProfessorRepo) ByID(_ context.Context, id string) (*identity.Professor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.professors[id]
	if !ok {
		return nil, identity.ErrProfessorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfessorRepo) ByPerson(_ context.Context, personID string) (*identity.Professor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.professors {
		if p.PersonID == personID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, identity.ErrProfessorNotFound
}

func (r *fakeProfessorRepo) Update(_ context.Context, p *identity.Professor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.professors[p.ID]; !ok {
		return identity.ErrProfessorNotFound
	}
	cp := *p
	r.professors[p.ID] = &cp
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
	cp := *m
	return &cp, nil
}

func (r *fakeCatalogRepo) MajorByName(_ context.Context, name string) (*catalog.Major, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.majors {
		if m.Name == name {
			cp := *m
			return &cp, nil
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
	cp := *s
	return &cp, nil
}

func (r *fakeCatalogRepo) SubjectByName(_ context.Context, name string) (*catalog.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subjects {
		if s.Name == name {
			cp := *s
			return &cp, nil
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
	cp := *m
	r.majors[m.ID] = &cp
	return nil
}

func (r *fakeCatalogRepo) CreateSubject(_ context.Context, s *catalog.Subject) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.subjects[s.ID] = &cp
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
	cp := *e
	r.byStudent[e.StudentID] = &cp
	return nil
}

func (r *fakeEnrollmentRepo) ByStudent(_ context.Context, studentID string) (*enrollment.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byStudent[studentID]
	if !ok {
		return nil, enrollment.ErrNotEnrolled
	}
	cp := *e
	return &cp, nil
}

func (r *fakeEnrollmentRepo) Replace(_ context.Context, e *enrollment.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.byStudent[e.StudentID] = &cp
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
	grades map[string]*gradebook.Grade // keyed studentID + "/" + subjectID
}

func newFakeGradebookRepo() *fakeGradebookRepo {
	return &fakeGradebookRepo{grades: make(map[string]*gradebook.Grade)}
}

func gradeKey(studentID, subjectID string) string {
	return studentID + "/" + subjectID
}

func (r *fakeGradebookRepo) Upsert(_ context.Context, g *gradebook.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *g
	r.grades[gradeKey(g.StudentID, g.SubjectID)] = &cp
	return nil
}

func (r *fakeGradebookRepo) ByStudent(_ context.Context, studentID string) ([]gradebook.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []gradebook.Grade
	for _, g := range r.grades {
		if g.StudentID == studentID {
			out = append(out, *g)
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
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *fakeGradebookRepo) ByStudentAndSubject(_ context.Context, studentID, subjectID string) (*gradebook.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.grades[gradeKey(studentID, subjectID)]
	if !ok {
		return nil, gradebook.ErrGradeNotFound
	}
	cp := *g
	return &cp, nil
}

type fakeExamRepo struct {
	mu      sync.Mutex
	exams   map[string]*exam.Exam
	regs    map[string]*exam.Registration
	regKeys map[string]bool // studentID + "/" + examID
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{
		exams:   make(map[string]*exam.Exam),
		regs:    make(map[string]*exam.Registration),
		regKeys: make(map[string]bool),
	}
}

func (r *fakeExamRepo) CreateExam(_ context.Context, e *exam.Exam) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.exams[e.ID] = &cp
	return nil
}

func (r *fakeExamRepo) ExamByID(_ context.Context, id string) (*exam.Exam, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.exams[id]
	if !ok {
		return nil, exam.ErrExamNotFound
	}
	cp := *e
	return &cp, nil
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
	if _, ok := r.exams[e.ID]; !ok {
		return exam.ErrExamNotFound
	}
	cp := *e
	r.exams[e.ID] = &cp
	return nil
}

func (r *fakeExamRepo) CreateRegistration(_ context.Context, reg *exam.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := reg.StudentID + "/" + reg.ExamID
	if r.regKeys[key] {
		return exam.ErrAlreadyRegistered
	}
	r.regKeys[key] = true
	cp := *reg
	r.regs[reg.ID] = &cp
	return nil
}

func (r *fakeExamRepo) RegistrationByID(_ context.Context, id string) (*exam.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.regs[id]
	if !ok {
		return nil, exam.ErrRegistrationNotFound
	}
	cp := *reg
	return &cp, nil
}

func (r *fakeExamRepo) UpdateRegistration(_ context.Context, reg *exam.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.regs[reg.ID]; !ok {
		return exam.ErrRegistrationNotFound
	}
	cp := *reg
	r.regs[reg.ID] = &cp
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

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []shared.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]shared.EventType, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}
