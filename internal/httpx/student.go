package httpx

import (
	"net/http"
	"strconv"

	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/guard"
)

func (s *Server) handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.api.StudentDashboard(r.Context(), s.accessToken(r))
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleStudentCourses(w http.ResponseWriter, r *http.Request) {
	profile := guard.ProfileFromContext(r.Context())
	courses, err := s.api.UserCourses(r.Context(), s.accessToken(r), profile.ID)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleStudentAssignments(w http.ResponseWriter, r *http.Request) {
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

func (s *Server) handleStudentAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_assignment_id")
		return
	}

	token := s.accessToken(r)
	assignment, err := s.api.GetAssignment(r.Context(), token, id)
	if err != nil {
		writeApiError(w, err)
		return
	}
	submission, err := s.api.MySubmission(r.Context(), token, id)
	if err != nil {
		writeApiError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"assignment": assignment,
		"submission": submission,
	})
}

func (s *Server) handleSubmitAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "assignmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_assignment_id")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file")
		return
	}
	defer file.Close()
	comments := r.FormValue("comments")

	submission, err := s.api.SubmitAssignment(r.Context(), s.accessToken(r), id, header.Filename, file, comments)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, submission)
}

type gradeRow struct {
	Assignment backend.Assignment  `json:"assignment"`
	Submission *backend.Submission `json:"submission"`
}

// handleStudentGrades walks the student's assignments and pairs each with
// its submission, the same shape the grades screen renders.
func (s *Server) handleStudentGrades(w http.ResponseWriter, r *http.Request) {
	token := s.accessToken(r)
	assignments, err := s.api.ListAssignments(r.Context(), token, backend.AssignmentFilter{})
	if err != nil {
		writeApiError(w, err)
		return
	}

	rows := make([]gradeRow, 0, len(assignments))
	for _, assignment := range assignments {
		submission, err := s.api.MySubmission(r.Context(), token, assignment.ID)
		if err != nil {
			writeApiError(w, err)
			return
		}
		rows = append(rows, gradeRow{Assignment: assignment, Submission: submission})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleStudentAttendance(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.Atoi(r.URL.Query().Get("course_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}

	records, err := s.api.MyAttendance(r.Context(), s.accessToken(r), courseID)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records":    records,
		"percentage": backend.AttendancePercentage(records),
	})
}

func (s *Server) handleStudentTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.api.ListTickets(r.Context(), s.accessToken(r), backend.TicketFilter{
		Status: r.URL.Query().Get("status"),
	})
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var create backend.TicketCreate
	if err := decodeJSON(r, &create); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if create.Subject == "" || create.Body == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	ticket, err := s.api.CreateTicket(r.Context(), s.accessToken(r), create)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}
