package backend

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type AnnouncementFilter struct {
	PinnedOnly bool
	Priority   string
}

func (c *Client) ListAnnouncements(ctx context.Context, token string, filter AnnouncementFilter) ([]Announcement, error) {
	query := url.Values{}
	if filter.PinnedOnly {
		query.Set("pinned_only", "true")
	}
	if filter.Priority != "" {
		query.Set("priority", filter.Priority)
	}
	var announcements []Announcement
	err := c.get(ctx, token, "/announcements/", query, &announcements)
	return announcements, err
}

func (c *Client) GetAnnouncement(ctx context.Context, token string, id int) (Announcement, error) {
	var announcement Announcement
	err := c.get(ctx, token, fmt.Sprintf("/announcements/%d", id), nil, &announcement)
	return announcement, err
}

type AnnouncementCreate struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	TargetRoles []string `json:"target_roles,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	IsPinned    bool     `json:"is_pinned"`
}

func (c *Client) CreateAnnouncement(ctx context.Context, token string, create AnnouncementCreate) (Announcement, error) {
	var announcement Announcement
	err := c.post(ctx, token, "/announcements/", create, &announcement)
	return announcement, err
}

func (c *Client) DeleteAnnouncement(ctx context.Context, token string, id int) error {
	return c.delete(ctx, token, fmt.Sprintf("/announcements/%d", id))
}

func (c *Client) ListNotifications(ctx context.Context, token string, unreadOnly bool) ([]Notification, error) {
	query := url.Values{}
	if unreadOnly {
		query.Set("unread_only", "true")
	}
	var notifications []Notification
	err := c.get(ctx, token, "/notifications/", query, &notifications)
	return notifications, err
}

func (c *Client) UnreadCount(ctx context.Context, token string) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	err := c.get(ctx, token, "/notifications/unread-count", nil, &resp)
	return resp.Count, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, token string, id int) (Notification, error) {
	var notification Notification
	err := c.post(ctx, token, fmt.Sprintf("/notifications/%d/mark-read", id), struct{}{}, &notification)
	return notification, err
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string, ids []int) error {
	body := struct {
		NotificationIDs []int `json:"notification_ids"`
	}{NotificationIDs: ids}
	return c.post(ctx, token, "/notifications/mark-all-read", body, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, token string, id int) error {
	return c.delete(ctx, token, "/notifications/"+strconv.Itoa(id))
}

func (c *Client) ClearNotifications(ctx context.Context, token string) error {
	return c.delete(ctx, token, "/notifications/")
}
