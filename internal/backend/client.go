// Package backend is the REST client for the external university API. Every
// operation is a direct verb mapping with query-parameter filters; the bearer
// token of the calling session is attached by the shared request helper, and
// non-2xx responses surface as *ApiError carrying the server's detail
// message.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Me exchanges a session token for the application-level profile.
func (c *Client) Me(ctx context.Context, token string) (Profile, error) {
	var profile Profile
	err := c.get(ctx, token, "/auth/me", nil, &profile)
	return profile, err
}

func (c *Client) get(ctx context.Context, token, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, token, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, token, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, token, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, token, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, token, path string) error {
	return c.do(ctx, http.MethodDelete, token, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, token, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &ApiError{Detail: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &ApiError{Detail: "build request: " + err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ApiError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ApiError{Status: resp.StatusCode, Detail: "decode response: " + err.Error()}
	}
	return nil
}

// postMultipart uploads a file plus optional form fields, used by assignment
// submission. The multipart writer sets the content type with its boundary.
func (c *Client) postMultipart(ctx context.Context, token, path, fieldName, fileName string, file io.Reader, fields map[string]string, out interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		return &ApiError{Detail: "build multipart: " + err.Error()}
	}
	if _, err := io.Copy(part, file); err != nil {
		return &ApiError{Detail: "read upload: " + err.Error()}
	}
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return &ApiError{Detail: "build multipart: " + err.Error()}
		}
	}
	if err := writer.Close(); err != nil {
		return &ApiError{Detail: "build multipart: " + err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return &ApiError{Detail: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ApiError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ApiError{Status: resp.StatusCode, Detail: "decode response: " + err.Error()}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &ApiError{Status: resp.StatusCode, Detail: "An error occurred"}
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
