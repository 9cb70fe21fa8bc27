// Package storage is a thin client for the external object store used for
// assignment files and avatars. Objects are keyed by bucket and path and
// become publicly resolvable after upload.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewClient(baseURL, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		http:       &http.Client{Timeout: timeout},
	}
}

type UploadResult struct {
	Bucket    string `json:"bucket"`
	Path      string `json:"path"`
	PublicURL string `json:"public_url"`
}

func (c *Client) Upload(ctx context.Context, bucket, path, contentType string, body io.Reader) (UploadResult, error) {
	endpoint := fmt.Sprintf("%s/object/%s/%s", c.baseURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("storage upload: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("storage upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return UploadResult{}, fmt.Errorf("storage upload failed with status %d", resp.StatusCode)
	}

	return UploadResult{Bucket: bucket, Path: path, PublicURL: c.PublicURL(bucket, path)}, nil
}

func (c *Client) Delete(ctx context.Context, bucket string, paths ...string) error {
	payload := struct {
		Prefixes []string `json:"prefixes"`
	}{Prefixes: paths}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}

	endpoint := fmt.Sprintf("%s/object/%s", c.baseURL, bucket)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, strings.NewReader(string(encoded)))
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storage delete: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("storage delete failed with status %d", resp.StatusCode)
	}
	return nil
}

// PublicURL is deterministic; it does not confirm the object exists.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, bucket, path)
}

func (c *Client) authorize(req *http.Request) {
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}
}
