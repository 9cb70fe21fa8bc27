package backend

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"
)

type AssignmentFilter struct {
	CourseID int
	Status   string
}

func (c *Client) ListAssignments(ctx context.Context, token string, filter AssignmentFilter) ([]Assignment, error) {
	query := url.Values{}
	if filter.CourseID > 0 {
		query.Set("course_id", strconv.Itoa(filter.CourseID))
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	var assignments []Assignment
	err := c.get(ctx, token, "/assignments/", query, &assignments)
	return assignments, err
}

func (c *Client) GetAssignment(ctx context.Context, token string, id int) (Assignment, error) {
	var assignment Assignment
	err := c.get(ctx, token, fmt.Sprintf("/assignments/%d", id), nil, &assignment)
	return assignment, err
}

type AssignmentCreate struct {
	CourseID            int        `json:"course_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	Instructions        string     `json:"instructions,omitempty"`
	DueDate             *time.Time `json:"due_date,omitempty"`
	MaxPoints           int        `json:"max_points"`
	AllowLateSubmission bool       `json:"allow_late_submission"`
	LatePenaltyPercent  int        `json:"late_penalty_percent"`
}

func (c *Client) CreateAssignment(ctx context.Context, token string, create AssignmentCreate) (Assignment, error) {
	var assignment Assignment
	err := c.post(ctx, token, "/assignments/", create, &assignment)
	return assignment, err
}

type AssignmentUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	MaxPoints   *int       `json:"max_points,omitempty"`
	IsPublished *bool      `json:"is_published,omitempty"`
}

func (c *Client) UpdateAssignment(ctx context.Context, token string, id int, update AssignmentUpdate) (Assignment, error) {
	var assignment Assignment
	err := c.put(ctx, token, fmt.Sprintf("/assignments/%d", id), update, &assignment)
	return assignment, err
}

func (c *Client) DeleteAssignment(ctx context.Context, token string, id int) error {
	return c.delete(ctx, token, fmt.Sprintf("/assignments/%d", id))
}

func (c *Client) AssignmentSubmissions(ctx context.Context, token string, id int) ([]Submission, error) {
	var submissions []Submission
	err := c.get(ctx, token, fmt.Sprintf("/assignments/%d/submissions", id), nil, &submissions)
	return submissions, err
}

// MySubmission returns the caller's submission, or nil when none exists yet
// (the backend serves null for an unsubmitted assignment).
func (c *Client) MySubmission(ctx context.Context, token string, id int) (*Submission, error) {
	var submission *Submission
	err := c.get(ctx, token, fmt.Sprintf("/assignments/%d/my-submission", id), nil, &submission)
	return submission, err
}

func (c *Client) SubmitAssignment(ctx context.Context, token string, id int, fileName string, file io.Reader, comments string) (Submission, error) {
	var submission Submission
	path := fmt.Sprintf("/assignments/%d/submit", id)
	fields := map[string]string{"comments": comments}
	err := c.postMultipart(ctx, token, path, "file", fileName, file, fields, &submission)
	return submission, err
}

type GradeUpdate struct {
	Grade    int    `json:"grade"`
	Feedback string `json:"feedback,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (c *Client) GradeSubmission(ctx context.Context, token string, assignmentID, submissionID int, grade GradeUpdate) (Submission, error) {
	var submission Submission
	path := fmt.Sprintf("/assignments/%d/submissions/%d/grade", assignmentID, submissionID)
	err := c.put(ctx, token, path, grade, &submission)
	return submission, err
}
