package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
)

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.api.AdminStats(r.Context(), s.accessToken(r))
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.api.ListUsers(r.Context(), s.accessToken(r), backend.UserFilter{
		Role:       r.URL.Query().Get("role"),
		Department: r.URL.Query().Get("department"),
		Search:     r.URL.Query().Get("search"),
	})
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.api.GetUser(r.Context(), s.accessToken(r), chi.URLParam(r, "userID"))
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var update backend.UserUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	user, err := s.api.UpdateUser(r.Context(), s.accessToken(r), chi.URLParam(r, "userID"), update)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.api.DeleteUser(r.Context(), s.accessToken(r), chi.URLParam(r, "userID")); err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleUserCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.api.UserCourses(r.Context(), s.accessToken(r), chi.URLParam(r, "userID"))
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleAdminCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.api.ListCourses(r.Context(), s.accessToken(r), backend.CourseFilter{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var create backend.CourseCreate
	if err := decodeJSON(r, &create); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if create.Name == "" || create.Code == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	course, err := s.api.CreateCourse(r.Context(), s.accessToken(r), create)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "courseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}

	var update backend.CourseUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	course, err := s.api.UpdateCourse(r.Context(), s.accessToken(r), id, update)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "courseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}

	if err := s.api.DeleteCourse(r.Context(), s.accessToken(r), id); err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleEnrollStudent(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "courseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}

	var req struct {
		StudentID string `json:"student_id"`
	}
	if err := decodeJSON(r, &req); err != nil || req.StudentID == "" {
		writeError(w, http.StatusBadRequest, "missing_student_id")
		return
	}

	if err := s.api.EnrollStudent(r.Context(), s.accessToken(r), id, req.StudentID); err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "enrolled"})
}

func (s *Server) handleCourseEnrollments(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "courseID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_course_id")
		return
	}

	enrollments, err := s.api.CourseEnrollments(r.Context(), s.accessToken(r), id)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollments)
}

func (s *Server) handleCreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var create backend.AnnouncementCreate
	if err := decodeJSON(r, &create); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if create.Title == "" || create.Content == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	announcement, err := s.api.CreateAnnouncement(r.Context(), s.accessToken(r), create)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, announcement)
}

func (s *Server) handleDeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "announcementID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_announcement_id")
		return
	}

	if err := s.api.DeleteAnnouncement(r.Context(), s.accessToken(r), id); err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleAdminTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.api.ListTickets(r.Context(), s.accessToken(r), backend.TicketFilter{
		Status:     r.URL.Query().Get("status"),
		Department: r.URL.Query().Get("department"),
	})
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tickets)
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "ticketID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_ticket_id")
		return
	}

	ticket, err := s.api.GetTicket(r.Context(), s.accessToken(r), id)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

func (s *Server) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "ticketID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_ticket_id")
		return
	}

	var update backend.TicketUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	ticket, err := s.api.UpdateTicket(r.Context(), s.accessToken(r), id, update)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}
