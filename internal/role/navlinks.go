package role

// NavLink is one sidebar entry. Icon names match the frontend icon set; the
// portal only relays them.
type NavLink struct {
	Path  string `json:"path"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var studentNavLinks = []NavLink{
	{Path: "/student", Label: "Dashboard", Icon: "layout-dashboard"},
	{Path: "/student/assignments", Label: "Assignments", Icon: "file-text"},
	{Path: "/student/grades", Label: "Grades", Icon: "graduation-cap"},
	{Path: "/student/attendance", Label: "Attendance", Icon: "calendar-check"},
	{Path: "/student/support", Label: "Support", Icon: "life-buoy"},
	{Path: "/student/profile", Label: "Profile", Icon: "user"},
}

var facultyNavLinks = []NavLink{
	{Path: "/faculty", Label: "Dashboard", Icon: "layout-dashboard"},
	{Path: "/faculty/assignments", Label: "Assignments", Icon: "file-text"},
	{Path: "/faculty/attendance", Label: "Attendance", Icon: "calendar-check"},
	{Path: "/faculty/students", Label: "My Students", Icon: "users"},
	{Path: "/faculty/profile", Label: "Profile", Icon: "user"},
}

var adminNavLinks = []NavLink{
	{Path: "/admin", Label: "Dashboard", Icon: "layout-dashboard"},
	{Path: "/admin/support", Label: "Support Tickets", Icon: "ticket"},
	{Path: "/admin/users", Label: "Manage Users", Icon: "users"},
	{Path: "/admin/courses", Label: "Courses", Icon: "book-open"},
	{Path: "/admin/settings", Label: "System Settings", Icon: "settings"},
	{Path: "/admin/security", Label: "Security", Icon: "shield"},
}

// NavLinks returns the static link set for a role. The sets never mutate at
// runtime; super-admin shares the admin set.
func NavLinks(r Role) []NavLink {
	switch r {
	case Student:
		return studentNavLinks
	case Faculty:
		return facultyNavLinks
	case Admin, SuperAdmin:
		return adminNavLinks
	default:
		return nil
	}
}
