package httpx

import (
	"net/http"
	"strconv"

	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
)

func (s *Server) handleFacultyDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.api.FacultyDashboard(r.Context(), s.accessToken(r))
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleFacultyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.api.ListCourses(r.Context(), s.accessToken(r), backend.CourseFilter{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleFacultyAssignments(w http.ResponseWriter, r *http.Request) {
	filter := backend.AssignmentFilter{Status: r.URL.Query().Get("status")}
	if raw := r.URL.Query().Get("course_id"); raw != "" {
		courseID, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_course_id")
			return
		}
		filter.CourseID = courseID
	}

	assignments, err := s.api.ListAssignments(r.Context(), s.accessToken(r), filter)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var create backend.AssignmentCreate
	if err := decodeJSON(r, &create); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if create.CourseID == 0 || create.Title == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	assignment, err := s.api.CreateAssignment(r.Context(), s.accessToken(r), create)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, assignment)
}

func (s *Server) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_assignment_id")
		return
	}

	var update backend.AssignmentUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	assignment, err := s.api.UpdateAssignment(r.Context(), s.accessToken(r), id, update)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignment)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_assignment_id")
		return
	}

	if err := s.api.DeleteAssignment(r.Context(), s.accessToken(r), id); err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAssignmentSubmissions(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_assignment_id")
		return
	}

	submissions, err := s.api.AssignmentSubmissions(r.Context(), s.accessToken(r), id)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submissions)
}

func (s *Server) handleGradeSubmission(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := urlParamInt(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_assignment_id")
		return
	}
	submissionID, err := urlParamInt(r, "submissionID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_submission_id")
		return
	}

	var grade backend.GradeUpdate
	if err := decodeJSON(r, &grade); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	submission, err := s.api.GradeSubmission(r.Context(), s.accessToken(r), assignmentID, submissionID, grade)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, submission)
}

func courseIDQuery(r *http.Request) (int, bool) {
	courseID, err := strconv.Atoi(r.URL.Query().Get("course_id"))
	return courseID, err == nil
}

func (s *Server) handleCourseAttendance(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}

	records, err := s.api.CourseAttendance(r.Context(), s.accessToken(r), courseID, backend.AttendanceFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	})
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAttendanceByDate(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing_date")
		return
	}

	records, err := s.api.AttendanceByDate(r.Context(), s.accessToken(r), courseID, date)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing_date")
		return
	}

	var mark backend.AttendanceMark
	if err := decodeJSON(r, &mark); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if mark.StudentID == "" || mark.Status == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	record, err := s.api.MarkAttendance(r.Context(), s.accessToken(r), courseID, date, mark)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (s *Server) handleMarkAttendanceBulk(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing_date")
		return
	}

	var marks []backend.AttendanceMark
	if err := decodeJSON(r, &marks); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if len(marks) == 0 {
		writeError(w, http.StatusBadRequest, "missing_marks")
		return
	}

	if err := s.api.MarkAttendanceBulk(r.Context(), s.accessToken(r), courseID, date, marks); err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "marked"})
}

func (s *Server) handleAttendanceStatistics(w http.ResponseWriter, r *http.Request) {
	courseID, ok := courseIDQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}

	stats, err := s.api.AttendanceStatistics(r.Context(), s.accessToken(r), courseID)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
