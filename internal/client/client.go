// Package client provides a typed HTTP/JSON client for the portal API.
//
// Read paths follow the portal's resilience policy: on transport failure,
// a non-2xx status, or an unparseable body, listing calls substitute a
// fixed fallback dataset so consumers always have something to show.
// Writes are never masked; they either succeed or return the error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/brgysanantonio/portal/internal/models"
)

// Client talks to a running portal over HTTP/JSON. The session cookie set
// by Login is carried on subsequent write calls.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the portal at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

// Budget lists the budget allocations. It never fails: when the API is
// unreachable or returns garbage it falls back to the seed rows.
func (c *Client) Budget(ctx context.Context) []models.BudgetAllocation {
	var items []models.BudgetAllocation
	if err := c.getJSON(ctx, "/api/budget", &items); err != nil || len(items) == 0 {
		return models.SeedAllocations()
	}
	return items
}

// Posts lists the announcements, falling back to the seed announcements
// when the API is unreachable. An empty feed is a valid response and is
// returned as-is.
func (c *Client) Posts(ctx context.Context) []models.Post {
	var posts []models.Post
	if err := c.getJSON(ctx, "/api/posts", &posts); err != nil {
		return models.SeedPosts()
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts
}

// Login authenticates the admin account and stores the session cookie.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := c.postJSON(ctx, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &resp)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("login failed: %s", resp.Message)
	}
	return nil
}

// UpdateBudget overwrites a budget row and returns the persisted row.
func (c *Client) UpdateBudget(ctx context.Context, id int64, allocated, spent float64, status string) (*models.BudgetAllocation, error) {
	var resp struct {
		Success     bool                     `json:"success"`
		Message     string                   `json:"message"`
		UpdatedItem *models.BudgetAllocation `json:"updatedItem"`
	}
	err := c.postJSON(ctx, "/api/budget/update", map[string]any{
		"id":        id,
		"allocated": allocated,
		"spent":     spent,
		"status":    status,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("update failed: %s", resp.Message)
	}
	return resp.UpdatedItem, nil
}

// CreatePost publishes an announcement and returns the persisted row.
func (c *Client) CreatePost(ctx context.Context, title, body string, imageURL *string) (*models.Post, error) {
	var resp struct {
		Success bool         `json:"success"`
		Message string       `json:"message"`
		Post    *models.Post `json:"post"`
	}
	err := c.postJSON(ctx, "/api/posts", map[string]any{
		"title":    title,
		"body":     body,
		"imageUrl": imageURL,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("create post failed: %s", resp.Message)
	}
	return resp.Post, nil
}

// Chat sends a message to the FAQ bot and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) (reply string, concernLogged bool, err error) {
	var resp struct {
		Reply         string `json:"reply"`
		ConcernLogged bool   `json:"concernLogged"`
	}
	if err := c.postJSON(ctx, "/api/chat", map[string]string{"message": message}, &resp); err != nil {
		return "", false, err
	}
	return resp.Reply, resp.ConcernLogged, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Error responses carry the envelope too; decode regardless of status
	// so callers see the server's message.
	return json.NewDecoder(resp.Body).Decode(out)
}
