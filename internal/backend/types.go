package backend

import (
	"time"

	"github.com/inqgamerz48/university-management-v2.0/internal/role"
)

// Profile is the application-level user record served by GET /auth/me. It
// exists exactly as long as a valid session exists for the subject.
type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       role.Role `json:"role"`
	Department string    `json:"department,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Bio        string    `json:"bio,omitempty"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Course struct {
	ID           int        `json:"id"`
	Name         string     `json:"name"`
	Code         string     `json:"code"`
	Credits      int        `json:"credits"`
	Description  string     `json:"description,omitempty"`
	Semester     string     `json:"semester,omitempty"`
	Year         int        `json:"year,omitempty"`
	DepartmentID *int       `json:"department_id,omitempty"`
	FacultyID    *string    `json:"faculty_id,omitempty"`
	Faculty      *Profile   `json:"faculty,omitempty"`
	IsActive     bool       `json:"is_active"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type Enrollment struct {
	ID         int       `json:"id"`
	CourseID   int       `json:"course_id"`
	StudentID  string    `json:"student_id"`
	EnrolledAt time.Time `json:"enrolled_at"`
	Status     string    `json:"status"`
}

type Assignment struct {
	ID                  int        `json:"id"`
	CourseID            int        `json:"course_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Instructions        string     `json:"instructions,omitempty"`
	DueDate             *time.Time `json:"due_date,omitempty"`
	MaxPoints           int        `json:"max_points"`
	AllowLateSubmission bool       `json:"allow_late_submission"`
	LatePenaltyPercent  int        `json:"late_penalty_percent"`
	FileURL             string     `json:"file_url,omitempty"`
	CreatedBy           string     `json:"created_by,omitempty"`
	IsPublished         bool       `json:"is_published"`
	Course              *Course    `json:"course,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type Submission struct {
	ID           int        `json:"id"`
	AssignmentID int        `json:"assignment_id"`
	StudentID    string     `json:"student_id"`
	FileURL      string     `json:"file_url,omitempty"`
	FileName     string     `json:"file_name,omitempty"`
	FileSize     int64      `json:"file_size,omitempty"`
	Comments     string     `json:"comments,omitempty"`
	SubmittedAt  time.Time  `json:"submitted_at"`
	Status       string     `json:"status"`
	Grade        *int       `json:"grade,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
	GradedBy     string     `json:"graded_by,omitempty"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
	Student      *Profile   `json:"student,omitempty"`
}

type AttendanceRecord struct {
	ID        int       `json:"id"`
	CourseID  int       `json:"course_id"`
	StudentID string    `json:"student_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	MarkedBy  string    `json:"marked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceMark is one record in a mark or mark-bulk call.
type AttendanceMark struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
}

type AttendanceStatistics struct {
	TotalSessions int     `json:"total_sessions"`
	Present       int     `json:"present"`
	Absent        int     `json:"absent"`
	Late          int     `json:"late"`
	Excused       int     `json:"excused"`
	Percentage    float64 `json:"percentage"`
}

type Announcement struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	TargetRoles []string   `json:"target_roles,omitempty"`
	Priority    string     `json:"priority"`
	IsPinned    bool       `json:"is_pinned"`
	PostedBy    string     `json:"posted_by,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Notification struct {
	ID            int        `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Message       string     `json:"message"`
	Type          string     `json:"type"`
	ReferenceType string     `json:"reference_type,omitempty"`
	ReferenceID   int        `json:"reference_id,omitempty"`
	ActionURL     string     `json:"action_url,omitempty"`
	Read          bool       `json:"read"`
	ReadAt        *time.Time `json:"read_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type Ticket struct {
	ID         int       `json:"id"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	Priority   string    `json:"priority"`
	Department string    `json:"department,omitempty"`
	OpenedBy   string    `json:"opened_by"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type AdminStats struct {
	TotalStudents       int `json:"total_students"`
	TotalFaculty        int `json:"total_faculty"`
	TotalCourses        int `json:"total_courses"`
	ActiveAssignments   int `json:"active_assignments"`
	PendingSubmissions  int `json:"pending_submissions"`
	RecentAnnouncements int `json:"recent_announcements"`
}

type StudentDashboard struct {
	EnrolledCourses     []Course           `json:"enrolled_courses"`
	UpcomingAssignments []Assignment       `json:"upcoming_assignments"`
	RecentGrades        []Submission       `json:"recent_grades"`
	Attendance          []AttendanceRecord `json:"attendance"`
}

type FacultyDashboard struct {
	Courses            []Course     `json:"courses"`
	PendingSubmissions []Submission `json:"pending_submissions"`
	RecentAssignments  []Assignment `json:"recent_assignments"`
}
