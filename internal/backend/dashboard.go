package backend

import (
	"context"
	"fmt"
	"net/url"
)

func (c *Client) AdminStats(ctx context.Context, token string) (AdminStats, error) {
	var stats AdminStats
	err := c.get(ctx, token, "/dashboard/admin/stats", nil, &stats)
	return stats, err
}

func (c *Client) StudentDashboard(ctx context.Context, token string) (StudentDashboard, error) {
	var dashboard StudentDashboard
	err := c.get(ctx, token, "/dashboard/student", nil, &dashboard)
	return dashboard, err
}

func (c *Client) FacultyDashboard(ctx context.Context, token string) (FacultyDashboard, error) {
	var dashboard FacultyDashboard
	err := c.get(ctx, token, "/dashboard/faculty", nil, &dashboard)
	return dashboard, err
}

type TicketFilter struct {
	Status     string
	Department string
}

func (c *Client) ListTickets(ctx context.Context, token string, filter TicketFilter) ([]Ticket, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Department != "" {
		query.Set("department", filter.Department)
	}
	var tickets []Ticket
	err := c.get(ctx, token, "/tickets/", query, &tickets)
	return tickets, err
}

func (c *Client) GetTicket(ctx context.Context, token string, id int) (Ticket, error) {
	var ticket Ticket
	err := c.get(ctx, token, fmt.Sprintf("/tickets/%d", id), nil, &ticket)
	return ticket, err
}

type TicketCreate struct {
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	Priority   string `json:"priority,omitempty"`
	Department string `json:"department,omitempty"`
}

func (c *Client) CreateTicket(ctx context.Context, token string, create TicketCreate) (Ticket, error) {
	var ticket Ticket
	err := c.post(ctx, token, "/tickets/", create, &ticket)
	return ticket, err
}

type TicketUpdate struct {
	Status     *string `json:"status,omitempty"`
	Priority   *string `json:"priority,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`
}

func (c *Client) UpdateTicket(ctx context.Context, token string, id int, update TicketUpdate) (Ticket, error) {
	var ticket Ticket
	err := c.put(ctx, token, fmt.Sprintf("/tickets/%d", id), update, &ticket)
	return ticket, err
}
