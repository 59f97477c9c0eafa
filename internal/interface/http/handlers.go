package http

import (
	"net/http"
	"time"

	"github.com/faculty-hub/faculty-hub/internal/application/command"
	"github.com/faculty-hub/faculty-hub/internal/application/query"
	"github.com/faculty-hub/faculty-hub/internal/domain/enrollment"
	"github.com/faculty-hub/faculty-hub/internal/domain/exam"
	"github.com/faculty-hub/faculty-hub/internal/domain/identity"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROUTING
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Health endpoints
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /live", s.handleLive)

	// ─────────────────────────────────────────────────────────────────────────
	// Identity
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /api/v1/auth/register", s.handleRegisterPerson)
	s.router.HandleFunc("POST /api/v1/professors/{personId}/setup", s.handleSetupProfessor)
	s.router.HandleFunc("GET /api/v1/professors/{personId}/profile", s.handleGetProfessorProfile)
	s.router.HandleFunc("GET /api/v1/professors/profile", s.handleGetProfessorProfileByEmail)

	// ─────────────────────────────────────────────────────────────────────────
	// Enrollment
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /api/v1/students/{id}/enrollment", s.handleEnrollStudent)
	s.router.HandleFunc("PUT /api/v1/students/{id}/enrollment", s.handleReplaceEnrollment)
	s.router.HandleFunc("DELETE /api/v1/students/{id}/enrollment", s.handleClearEnrollment)
	s.router.HandleFunc("GET /api/v1/students/{id}/enrollment", s.handleGetCurrentEnrollment)

	// ─────────────────────────────────────────────────────────────────────────
	// Progress
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("GET /api/v1/students/{id}/progress", s.handleGetProgress)

	// ─────────────────────────────────────────────────────────────────────────
	// Exams and registrations
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /api/v1/exams", s.handleCreateExam)
	s.router.HandleFunc("GET /api/v1/exams", s.handleListExams)
	s.router.HandleFunc("PUT /api/v1/exams/{id}", s.handleUpdateExam)
	s.router.HandleFunc("DELETE /api/v1/exams/{id}", s.handleCancelExam)
	s.router.HandleFunc("POST /api/v1/exams/{id}/registrations", s.handleRegisterForExam)
	s.router.HandleFunc("GET /api/v1/exams/{id}/registrations", s.handleListExamRegistrations)
	s.router.HandleFunc("GET /api/v1/students/{id}/registrations", s.handleListStudentRegistrations)
	s.router.HandleFunc("POST /api/v1/registrations/{id}/result", s.handleRecordExamResult)
	s.router.HandleFunc("DELETE /api/v1/registrations/{id}", s.handleWithdrawRegistration)

	// ─────────────────────────────────────────────────────────────────────────
	// Grades
	// ─────────────────────────────────────────────────────────────────────────
	s.router.HandleFunc("POST /api/v1/grades", s.handleRecordGrade)
	s.router.HandleFunc("GET /api/v1/subjects/{id}/grades", s.handleListSubjectGrades)
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}

	if s.deps.HealthChecker != nil {
		if err := s.deps.HealthChecker.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		if err := s.deps.HealthChecker.Ping(r.Context()); err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "not_ready", "backing stores unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// IDENTITY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type registerPersonRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	MajorName string `json:"major_name,omitempty"`
	StudyYear string `json:"study_year,omitempty"`
}

type personView struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	StudentID string `json:"student_id,omitempty"`
}

func (s *Server) handleRegisterPerson(w http.ResponseWriter, r *http.Request) {
	var req registerPersonRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	result, err := s.deps.RegisterPerson.Handle(r.Context(), command.RegisterPersonCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      identity.Role(req.Role),
		MajorName: req.MajorName,
		StudyYear: req.StudyYear,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	view := personView{
		ID:        result.Person.ID,
		FirstName: result.Person.FirstName,
		LastName:  result.Person.LastName,
		Email:     result.Person.Email,
		Role:      string(result.Person.Role),
	}
	if result.Student != nil {
		view.StudentID = result.Student.ID
	}
	writeJSON(w, http.StatusCreated, view)
}

type setupProfessorRequest struct {
	Subjects []string `json:"subjects"`
}

func (s *Server) handleSetupProfessor(w http.ResponseWriter, r *http.Request) {
	var req setupProfessorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	prof, err := s.deps.SetupProfessor.Handle(r.Context(), command.SetupProfessorCommand{
		PersonID: r.PathValue("personId"),
		Subjects: req.Subjects,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"professor_id":    prof.ID,
		"title":           prof.Title,
		"office":          prof.Office,
		"subjects":        prof.Subjects,
		"setup_completed": prof.SetupCompleted,
	})
}

func (s *Server) handleGetProfessorProfile(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.GetProfessorProfile.Handle(r.Context(), query.GetProfessorProfileQuery{
		PersonID: r.PathValue("personId"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGetProfessorProfileByEmail(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.GetProfessorProfile.Handle(r.Context(), query.GetProfessorProfileQuery{
		Email: r.URL.Query().Get("email"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type enrollRequest struct {
	MajorID            string   `json:"major_id"`
	AcademicYear       string   `json:"academic_year"`
	ElectiveSubjectIDs []string `json:"elective_subject_ids"`
}

type enrollmentView struct {
	ID                 string    `json:"id"`
	StudentID          string    `json:"student_id"`
	MajorID            string    `json:"major_id"`
	MajorName          string    `json:"major_name"`
	AcademicYear       string    `json:"academic_year"`
	ElectiveSubjectIDs []string  `json:"elective_subject_ids"`
	CreatedAt          time.Time `json:"created_at"`
}

func newEnrollmentView(e *enrollment.Enrollment, majorName string) enrollmentView {
	return enrollmentView{
		ID:                 e.ID,
		StudentID:          e.StudentID,
		MajorID:            e.MajorID,
		MajorName:          majorName,
		AcademicYear:       e.AcademicYear,
		ElectiveSubjectIDs: e.ElectiveSubjectIDs,
		CreatedAt:          e.CreatedAt,
	}
}

func (s *Server) handleEnrollStudent(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	result, err := s.deps.EnrollStudent.Handle(r.Context(), command.EnrollStudentCommand{
		StudentID:          r.PathValue("id"),
		MajorID:            req.MajorID,
		AcademicYear:       req.AcademicYear,
		ElectiveSubjectIDs: req.ElectiveSubjectIDs,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newEnrollmentView(result.Enrollment, result.MajorName))
}

type replaceEnrollmentRequest struct {
	MajorName    string   `json:"major_name"`
	AcademicYear string   `json:"academic_year"`
	SubjectIDs   []string `json:"subject_ids"`
}

func (s *Server) handleReplaceEnrollment(w http.ResponseWriter, r *http.Request) {
	var req replaceEnrollmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	result, err := s.deps.ReplaceEnrollment.Handle(r.Context(), command.ReplaceEnrollmentCommand{
		StudentID:    r.PathValue("id"),
		MajorName:    req.MajorName,
		AcademicYear: req.AcademicYear,
		SubjectIDs:   req.SubjectIDs,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"enrollment": newEnrollmentView(result.Enrollment, result.MajorName),
		"replaced":   result.Replaced,
	})
}

func (s *Server) handleClearEnrollment(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ClearEnrollment.Handle(r.Context(), command.ClearEnrollmentCommand{
		StudentID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"existed": result.Existed})
}

func (s *Server) handleGetCurrentEnrollment(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.GetCurrentEnrollment.Handle(r.Context(), query.GetCurrentEnrollmentQuery{
		StudentID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ══════════════════════════════════════════════════════════════════════════════
// PROGRESS HANDLER
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.GetProgress.Handle(r.Context(), query.GetProgressQuery{
		StudentID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ══════════════════════════════════════════════════════════════════════════════
// EXAM HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type createExamRequest struct {
	SubjectName          string     `json:"subject_name"`
	ProfessorID          string     `json:"professor_id"`
	ExamTime             time.Time  `json:"exam_time"`
	Classroom            string     `json:"classroom"`
	Capacity             int        `json:"capacity"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
}

type examView struct {
	ID                   string     `json:"id"`
	SubjectName          string     `json:"subject_name"`
	ProfessorID          string     `json:"professor_id"`
	ExamTime             time.Time  `json:"exam_time"`
	Classroom            string     `json:"classroom"`
	Capacity             int        `json:"capacity"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	Status               string     `json:"status"`
}

func newExamView(ex *exam.Exam) examView {
	view := examView{
		ID:          ex.ID,
		SubjectName: ex.SubjectName,
		ProfessorID: ex.ProfessorID,
		ExamTime:    ex.ExamTime,
		Classroom:   ex.Classroom,
		Capacity:    ex.Capacity,
		Status:      string(ex.Status),
	}
	if !ex.RegistrationDeadline.IsZero() {
		deadline := ex.RegistrationDeadline
		view.RegistrationDeadline = &deadline
	}
	return view
}

func (s *Server) handleCreateExam(w http.ResponseWriter, r *http.Request) {
	var req createExamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	cmd := command.CreateExamCommand{
		SubjectName: req.SubjectName,
		ProfessorID: req.ProfessorID,
		ExamTime:    req.ExamTime,
		Classroom:   req.Classroom,
		Capacity:    req.Capacity,
	}
	if req.RegistrationDeadline != nil {
		cmd.RegistrationDeadline = *req.RegistrationDeadline
	}

	ex, err := s.deps.CreateExam.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newExamView(ex))
}

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	views, err := s.deps.ListExams.Handle(r.Context(), query.ListExamsQuery{})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

type updateExamRequest struct {
	ExamTime             time.Time  `json:"exam_time"`
	Classroom            string     `json:"classroom"`
	Capacity             int        `json:"capacity"`
	RegistrationDeadline *time.Time `json:"registration_deadline,omitempty"`
	Status               string     `json:"status,omitempty"`
}

func (s *Server) handleUpdateExam(w http.ResponseWriter, r *http.Request) {
	var req updateExamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	cmd := command.UpdateExamCommand{
		ExamID:    r.PathValue("id"),
		ExamTime:  req.ExamTime,
		Classroom: req.Classroom,
		Capacity:  req.Capacity,
		Status:    req.Status,
	}
	if req.RegistrationDeadline != nil {
		cmd.RegistrationDeadline = *req.RegistrationDeadline
	}

	ex, err := s.deps.UpdateExam.Handle(r.Context(), cmd)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newExamView(ex))
}

func (s *Server) handleCancelExam(w http.ResponseWriter, r *http.Request) {
	ex, err := s.deps.CancelExam.Handle(r.Context(), command.CancelExamCommand{
		ExamID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newExamView(ex))
}

type registerForExamRequest struct {
	StudentID string `json:"student_id"`
}

type registrationView struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	ExamID       string    `json:"exam_id"`
	RegisteredAt time.Time `json:"registered_at"`
	Status       string    `json:"status"`
	Points       *int      `json:"points,omitempty"`
}

func newRegistrationView(reg *exam.Registration) registrationView {
	return registrationView{
		ID:           reg.ID,
		StudentID:    reg.StudentID,
		ExamID:       reg.ExamID,
		RegisteredAt: reg.RegisteredAt,
		Status:       string(reg.Status),
		Points:       reg.Points,
	}
}

func (s *Server) handleRegisterForExam(w http.ResponseWriter, r *http.Request) {
	var req registerForExamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	result, err := s.deps.RegisterForExam.Handle(r.Context(), command.RegisterForExamCommand{
		StudentID: req.StudentID,
		ExamID:    r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, newRegistrationView(result.Registration))
}

func (s *Server) handleListExamRegistrations(w http.ResponseWriter, r *http.Request) {
	views, err := s.deps.ListRegistrations.ByExam(r.Context(), query.ListExamRegistrationsQuery{
		ExamID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleListStudentRegistrations(w http.ResponseWriter, r *http.Request) {
	views, err := s.deps.ListRegistrations.ByStudent(r.Context(), query.ListStudentRegistrationsQuery{
		StudentID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

type recordExamResultRequest struct {
	Points int `json:"points"`
}

func (s *Server) handleRecordExamResult(w http.ResponseWriter, r *http.Request) {
	var req recordExamResultRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	result, err := s.deps.RecordExamResult.Handle(r.Context(), command.RecordExamResultCommand{
		RegistrationID: r.PathValue("id"),
		Points:         req.Points,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"registration": newRegistrationView(result.Registration),
		"points":       result.Points,
		"grade":        result.Grade,
		"status":       string(result.Status),
		"description":  result.Description,
		"completed":    result.Completed,
	})
}

func (s *Server) handleWithdrawRegistration(w http.ResponseWriter, r *http.Request) {
	reg, err := s.deps.WithdrawRegistration.Handle(r.Context(), command.WithdrawRegistrationCommand{
		RegistrationID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newRegistrationView(reg))
}

// ══════════════════════════════════════════════════════════════════════════════
// GRADE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

type recordGradeRequest struct {
	StudentID   string `json:"student_id"`
	SubjectID   string `json:"subject_id"`
	ProfessorID string `json:"professor_id"`
	Points      int    `json:"points"`
}

func (s *Server) handleRecordGrade(w http.ResponseWriter, r *http.Request) {
	var req recordGradeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "malformed request body")
		return
	}

	result, err := s.deps.RecordGrade.Handle(r.Context(), command.RecordGradeCommand{
		StudentID:   req.StudentID,
		SubjectID:   req.SubjectID,
		ProfessorID: req.ProfessorID,
		Points:      req.Points,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"student_id":  result.Grade.StudentID,
		"subject_id":  result.Grade.SubjectID,
		"points":      result.Grade.Points,
		"grade":       result.Value,
		"passed":      result.Passed,
		"description": result.Description,
		"updated":     result.Updated,
	})
}

func (s *Server) handleListSubjectGrades(w http.ResponseWriter, r *http.Request) {
	view, err := s.deps.ListSubjectGrades.Handle(r.Context(), query.ListSubjectGradesQuery{
		SubjectID: r.PathValue("id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
