package backend

import (
	"context"
	"fmt"
	"net/url"
)

type UserFilter struct {
	Role       string
	Department string
	Search     string
}

func (f UserFilter) query() url.Values {
	query := url.Values{}
	if f.Role != "" {
		query.Set("role", f.Role)
	}
	if f.Department != "" {
		query.Set("department", f.Department)
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	return query
}

func (c *Client) ListUsers(ctx context.Context, token string, filter UserFilter) ([]Profile, error) {
	var users []Profile
	err := c.get(ctx, token, "/users/", filter.query(), &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, token, id string) (Profile, error) {
	var user Profile
	err := c.get(ctx, token, "/users/"+id, nil, &user)
	return user, err
}

type UserUpdate struct {
	Name       *string `json:"name,omitempty"`
	Department *string `json:"department,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Bio        *string `json:"bio,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, token, id string, update UserUpdate) (Profile, error) {
	var user Profile
	err := c.put(ctx, token, "/users/"+id, update, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.delete(ctx, token, "/users/"+id)
}

func (c *Client) UserCourses(ctx context.Context, token, id string) ([]Course, error) {
	var courses []Course
	err := c.get(ctx, token, fmt.Sprintf("/users/%s/courses", id), nil, &courses)
	return courses, err
}
