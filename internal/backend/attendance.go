package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type AttendanceFilter struct {
	StartDate string // YYYY-MM-DD
	EndDate   string
}

func (c *Client) CourseAttendance(ctx context.Context, token string, courseID int, filter AttendanceFilter) ([]AttendanceRecord, error) {
	query := url.Values{}
	if filter.StartDate != "" {
		query.Set("start_date", filter.StartDate)
	}
	if filter.EndDate != "" {
		query.Set("end_date", filter.EndDate)
	}
	var records []AttendanceRecord
	err := c.get(ctx, token, fmt.Sprintf("/attendance/course/%d", courseID), query, &records)
	return records, err
}

func (c *Client) AttendanceByDate(ctx context.Context, token string, courseID int, date string) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	err := c.get(ctx, token, fmt.Sprintf("/attendance/course/%d/date/%s", courseID, date), nil, &records)
	return records, err
}

func (c *Client) MarkAttendance(ctx context.Context, token string, courseID int, date string, mark AttendanceMark) (AttendanceRecord, error) {
	body := struct {
		AttendanceMark
		CourseID int    `json:"course_id"`
		Date     string `json:"date"`
	}{AttendanceMark: mark, CourseID: courseID, Date: date}
	var record AttendanceRecord
	err := c.post(ctx, token, fmt.Sprintf("/attendance/course/%d/mark", courseID), body, &record)
	return record, err
}

func (c *Client) MarkAttendanceBulk(ctx context.Context, token string, courseID int, date string, marks []AttendanceMark) error {
	body := struct {
		CourseID int              `json:"course_id"`
		Date     string           `json:"date"`
		Records  []AttendanceMark `json:"records"`
	}{CourseID: courseID, Date: date, Records: marks}
	return c.post(ctx, token, fmt.Sprintf("/attendance/course/%d/mark-bulk", courseID), body, nil)
}

func (c *Client) MyAttendance(ctx context.Context, token string, courseID int) ([]AttendanceRecord, error) {
	query := url.Values{}
	if courseID > 0 {
		query.Set("course_id", strconv.Itoa(courseID))
	}
	var records []AttendanceRecord
	err := c.get(ctx, token, "/attendance/my-attendance", query, &records)
	return records, err
}

func (c *Client) AttendanceStatistics(ctx context.Context, token string, courseID int) (AttendanceStatistics, error) {
	var stats AttendanceStatistics
	err := c.get(ctx, token, fmt.Sprintf("/attendance/course/%d/statistics", courseID), nil, &stats)
	return stats, err
}

// AttendancePercentage computes present sessions over all recorded sessions,
// the same formula the backend's statistics endpoint uses: late and excused
// count toward the base but not as attended.
func AttendancePercentage(records []AttendanceRecord) float64 {
	present := 0
	for _, record := range records {
		if record.Status == "present" {
			present++
		}
	}
	if len(records) == 0 {
		return 0
	}
	return float64(present) / float64(len(records)) * 100
}
