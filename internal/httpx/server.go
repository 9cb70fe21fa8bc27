// Package httpx serves the portal over HTTP: the public landing and auth
// routes, the guarded role areas and the file upload passthrough. Handlers
// translate between the browser-facing routes and the provider/backend
// clients; all auth state lives in the per-session managers.
package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inqgamerz48/university-management-v2.0/internal/auth"
	"github.com/inqgamerz48/university-management-v2.0/internal/backend"
	"github.com/inqgamerz48/university-management-v2.0/internal/config"
	"github.com/inqgamerz48/university-management-v2.0/internal/guard"
	"github.com/inqgamerz48/university-management-v2.0/internal/provider"
	"github.com/inqgamerz48/university-management-v2.0/internal/role"
	"github.com/inqgamerz48/university-management-v2.0/internal/storage"
	"github.com/inqgamerz48/university-management-v2.0/internal/validate"
)

type Server struct {
	cfg      config.Config
	sessions *Registry
	api      *backend.Client
	files    *storage.Client
}

func NewServer(cfg config.Config, sessions *Registry, api *backend.Client, files *storage.Client) *Server {
	return &Server{cfg: cfg, sessions: sessions, api: api, files: files}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.withSession)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", s.handleLanding)
	r.Get("/unauthorized", s.handleUnauthorized)

	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/logout", s.handleLogout)
	r.Post("/auth/reset-password", s.handleResetPassword)
	r.Get("/auth/session", s.handleSessionState)
	r.Post("/auth/refresh", s.handleRefreshUser)

	r.With(s.requireAuthenticated).Post("/files/{bucket}", s.handleUpload)

	r.Route("/student", func(r chi.Router) {
		r.Use(guard.RequireRole(role.Student, s.snapshot))
		r.Get("/", s.handleStudentDashboard)
		r.Get("/nav", s.handleNav)
		r.Get("/courses", s.handleStudentCourses)
		r.Get("/assignments", s.handleStudentAssignments)
		r.Get("/assignments/{assignmentID}", s.handleStudentAssignment)
		r.Post("/assignments/{assignmentID}/submission", s.handleSubmitAssignment)
		r.Get("/grades", s.handleStudentGrades)
		r.Get("/attendance", s.handleStudentAttendance)
		r.Get("/announcements", s.handleAnnouncements)
		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{notificationID}/read", s.handleMarkNotificationRead)
		r.Get("/support", s.handleStudentTickets)
		r.Post("/support", s.handleCreateTicket)
	})

	r.Route("/faculty", func(r chi.Router) {
		r.Use(guard.RequireRole(role.Faculty, s.snapshot))
		r.Get("/", s.handleFacultyDashboard)
		r.Get("/nav", s.handleNav)
		r.Get("/courses", s.handleFacultyCourses)
		r.Get("/assignments", s.handleFacultyAssignments)
		r.Post("/assignments", s.handleCreateAssignment)
		r.Put("/assignments/{assignmentID}", s.handleUpdateAssignment)
		r.Delete("/assignments/{assignmentID}", s.handleDeleteAssignment)
		r.Get("/assignments/{assignmentID}/submissions", s.handleAssignmentSubmissions)
		r.Put("/assignments/{assignmentID}/submissions/{submissionID}/grade", s.handleGradeSubmission)
		r.Get("/attendance", s.handleCourseAttendance)
		r.Get("/attendance/by-date", s.handleAttendanceByDate)
		r.Post("/attendance/mark", s.handleMarkAttendance)
		r.Post("/attendance/mark-bulk", s.handleMarkAttendanceBulk)
		r.Get("/attendance/statistics", s.handleAttendanceStatistics)
		r.Get("/announcements", s.handleAnnouncements)
		r.Get("/notifications", s.handleNotifications)
		r.Post("/notifications/{notificationID}/read", s.handleMarkNotificationRead)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(guard.RequireRole(role.Admin, s.snapshot))
		r.Get("/", s.handleAdminStats)
		r.Get("/nav", s.handleNav)
		r.Get("/users", s.handleListUsers)
		r.Get("/users/{userID}", s.handleGetUser)
		r.Put("/users/{userID}", s.handleUpdateUser)
		r.Delete("/users/{userID}", s.handleDeleteUser)
		r.Get("/users/{userID}/courses", s.handleUserCourses)
		r.Get("/courses", s.handleAdminCourses)
		r.Post("/courses", s.handleCreateCourse)
		r.Put("/courses/{courseID}", s.handleUpdateCourse)
		r.Delete("/courses/{courseID}", s.handleDeleteCourse)
		r.Post("/courses/{courseID}/enroll", s.handleEnrollStudent)
		r.Get("/courses/{courseID}/enrollments", s.handleCourseEnrollments)
		r.Get("/announcements", s.handleAnnouncements)
		r.Post("/announcements", s.handleCreateAnnouncement)
		r.Delete("/announcements/{announcementID}", s.handleDeleteAnnouncement)
		r.Get("/support", s.handleAdminTickets)
		r.Get("/support/{ticketID}", s.handleGetTicket)
		r.Put("/support/{ticketID}", s.handleUpdateTicket)
	})

	return r
}

type sessionKey struct{}

type sessionState struct {
	id      string
	manager *auth.Manager
}

// withSession resolves the caller's manager from the session cookie, minting
// the cookie on first contact, and stashes both in the request context.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.sessions.SessionID(w, r)
		manager := s.sessions.Manager(r.Context(), id)
		ctx := context.WithValue(r.Context(), sessionKey{}, &sessionState{id: id, manager: manager})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFromContext(ctx context.Context) *sessionState {
	state, _ := ctx.Value(sessionKey{}).(*sessionState)
	return state
}

func (s *Server) snapshot(r *http.Request) auth.Snapshot {
	state := sessionFromContext(r.Context())
	if state == nil {
		return auth.Snapshot{}
	}
	return state.manager.Snapshot()
}

func (s *Server) accessToken(r *http.Request) string {
	snapshot := s.snapshot(r)
	if snapshot.Session == nil {
		return ""
	}
	return snapshot.Session.AccessToken
}

func (s *Server) requireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot := s.snapshot(r)
		if snapshot.Loading {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusOK, map[string]string{"status": "loading"})
			return
		}
		if snapshot.Profile == nil {
			http.Redirect(w, r, guard.LandingPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	snapshot := s.snapshot(r)
	if snapshot.Profile != nil {
		http.Redirect(w, r, snapshot.Profile.Role.Landing(), http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"page":          "landing",
		"authenticated": false,
		"loading":       snapshot.Loading,
	})
}

func (s *Server) handleUnauthorized(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"page":    "unauthorized",
		"message": "You do not have permission to view this page.",
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form validate.Login
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if fields := validate.Check(form); fields != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": fields})
		return
	}

	state := sessionFromContext(r.Context())
	landing, err := state.manager.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		// either the provider rejected the credentials or the profile
		// fetch failed; each maps through its own error shape
		var apiErr *backend.ApiError
		if errors.As(err, &apiErr) {
			writeApiError(w, err)
		} else {
			writeAuthError(w, err)
		}
		return
	}
	s.sessions.Persist(r.Context(), state.id, state.manager)

	snapshot := state.manager.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"redirect": landing,
		"user":     snapshot.Profile,
	})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var form validate.Signup
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if fields := validate.Check(form); fields != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{"errors": fields})
		return
	}

	state := sessionFromContext(r.Context())
	meta := provider.Metadata{Name: form.Name, Role: form.Role, Department: form.Department}
	if err := state.manager.Signup(r.Context(), form.Email, form.Password, meta); err != nil {
		writeAuthError(w, err)
		return
	}

	// the account exists but the caller is not signed in; login is a
	// separate step
	writeJSON(w, http.StatusCreated, map[string]string{
		"status":   "registered",
		"redirect": "/",
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	state := sessionFromContext(r.Context())
	redirect := state.manager.Logout(r.Context())
	s.sessions.Drop(r.Context(), state.id)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]string{"redirect": redirect})
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	state := sessionFromContext(r.Context())
	if err := state.manager.ResetPassword(r.Context(), req.Email); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request) {
	snapshot := s.snapshot(r)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": snapshot.IsAuthenticated,
		"loading":       snapshot.Loading,
		"user":          snapshot.Profile,
	})
}

func (s *Server) handleRefreshUser(w http.ResponseWriter, r *http.Request) {
	state := sessionFromContext(r.Context())
	if err := state.manager.RefreshUser(r.Context()); err != nil {
		writeApiError(w, err)
		return
	}
	s.sessions.Persist(r.Context(), state.id, state.manager)

	snapshot := state.manager.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": snapshot.IsAuthenticated,
		"loading":       snapshot.Loading,
		"user":          snapshot.Profile,
	})
}

// handleNav serves the static navigation set for the caller's role. The
// guard has already placed the profile in context.
func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	profile := guard.ProfileFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"role":  profile.Role,
		"links": role.NavLinks(profile.Role),
	})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	if bucket == "" {
		writeError(w, http.StatusBadRequest, "missing_bucket")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	objectPath := path.Join(uuid.NewString(), header.Filename)

	result, err := s.files.Upload(r.Context(), bucket, objectPath, contentType, file)
	if err != nil {
		writeError(w, http.StatusBadGateway, "upload_failed")
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	filter := backend.AnnouncementFilter{
		PinnedOnly: r.URL.Query().Get("pinned_only") == "true",
		Priority:   r.URL.Query().Get("priority"),
	}
	announcements, err := s.api.ListAnnouncements(r.Context(), s.accessToken(r), filter)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, announcements)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread_only") == "true"
	notifications, err := s.api.ListNotifications(r.Context(), s.accessToken(r), unreadOnly)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "notificationID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_notification_id")
		return
	}
	notification, err := s.api.MarkNotificationRead(r.Context(), s.accessToken(r), id)
	if err != nil {
		writeApiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notification)
}

func urlParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeAuthError maps a provider rejection to its status and message; a
// transport failure surfaces as 502.
func writeAuthError(w http.ResponseWriter, err error) {
	var authErr *provider.AuthError
	if errors.As(err, &authErr) {
		status := authErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": authErr.Message})
		return
	}
	writeError(w, http.StatusInternalServerError, "server_error")
}

// writeApiError forwards a backend failure with its status and detail.
func writeApiError(w http.ResponseWriter, err error) {
	var apiErr *backend.ApiError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": apiErr.Detail})
		return
	}
	writeError(w, http.StatusInternalServerError, "server_error")
}

// NewHTTPServer wraps the router in the listener the portal runs.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
