package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type CourseFilter struct {
	DepartmentID int
	Search       string
}

func (c *Client) ListCourses(ctx context.Context, token string, filter CourseFilter) ([]Course, error) {
	query := url.Values{}
	if filter.DepartmentID > 0 {
		query.Set("department_id", strconv.Itoa(filter.DepartmentID))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	var courses []Course
	err := c.get(ctx, token, "/courses/", query, &courses)
	return courses, err
}

func (c *Client) GetCourse(ctx context.Context, token string, id int) (Course, error) {
	var course Course
	err := c.get(ctx, token, fmt.Sprintf("/courses/%d", id), nil, &course)
	return course, err
}

type CourseCreate struct {
	Name         string  `json:"name"`
	Code         string  `json:"code"`
	Credits      int     `json:"credits"`
	Description  string  `json:"description,omitempty"`
	Semester     string  `json:"semester,omitempty"`
	Year         int     `json:"year,omitempty"`
	DepartmentID *int    `json:"department_id,omitempty"`
	FacultyID    *string `json:"faculty_id,omitempty"`
}

func (c *Client) CreateCourse(ctx context.Context, token string, create CourseCreate) (Course, error) {
	var course Course
	err := c.post(ctx, token, "/courses/", create, &course)
	return course, err
}

type CourseUpdate struct {
	Name        *string `json:"name,omitempty"`
	Credits     *int    `json:"credits,omitempty"`
	Description *string `json:"description,omitempty"`
	Semester    *string `json:"semester,omitempty"`
	Year        *int    `json:"year,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	FacultyID   *string `json:"faculty_id,omitempty"`
}

func (c *Client) UpdateCourse(ctx context.Context, token string, id int, update CourseUpdate) (Course, error) {
	var course Course
	err := c.put(ctx, token, fmt.Sprintf("/courses/%d", id), update, &course)
	return course, err
}

func (c *Client) DeleteCourse(ctx context.Context, token string, id int) error {
	return c.delete(ctx, token, fmt.Sprintf("/courses/%d", id))
}

func (c *Client) EnrollStudent(ctx context.Context, token string, courseID int, studentID string) error {
	path := fmt.Sprintf("/courses/%d/enroll?student_id=%s", courseID, url.QueryEscape(studentID))
	return c.post(ctx, token, path, struct{}{}, nil)
}

func (c *Client) CourseEnrollments(ctx context.Context, token string, courseID int) ([]Enrollment, error) {
	var enrollments []Enrollment
	err := c.get(ctx, token, fmt.Sprintf("/courses/%d/enrollments", courseID), nil, &enrollments)
	return enrollments, err
}
