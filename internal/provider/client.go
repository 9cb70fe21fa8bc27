// Package provider talks to the external auth provider: password sign-in,
// sign-up with profile metadata, sign-out, session recovery, token refresh
// and password-reset requests. Every failure surfaces as an *AuthError.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Metadata is attached to an account at sign-up and echoed back inside the
// access token's user_metadata claim.
type Metadata struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=password", "", body, &resp); err != nil {
		return Session{}, err
	}
	return c.sessionFromToken(resp), nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/token?grant_type=refresh_token", "", body, &resp); err != nil {
		return Session{}, err
	}
	return c.sessionFromToken(resp), nil
}

// SignUp creates the account with the supplied metadata. It deliberately
// returns no session: the caller logs in separately once the account exists,
// which avoids racing account creation against profile availability.
func (c *Client) SignUp(ctx context.Context, email, password string, meta Metadata) error {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     meta,
	}
	return c.do(ctx, http.MethodPost, "/signup", "", body, nil)
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	return c.do(ctx, http.MethodPost, "/logout", accessToken, nil, nil)
}

type providerUser struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	UserMetadata map[string]string `json:"user_metadata"`
}

// GetUser asks the provider who holds the token. Used during session
// recovery; an invalid or expired token comes back as an AuthError.
func (c *Client) GetUser(ctx context.Context, accessToken string) (string, error) {
	var user providerUser
	if err := c.do(ctx, http.MethodGet, "/user", accessToken, nil, &user); err != nil {
		return "", err
	}
	return user.ID, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/recover", "", body, nil)
}

func (c *Client) sessionFromToken(resp tokenResponse) Session {
	now := time.Now().UTC()
	session := Session{
		Subject:      resp.User.ID,
		Email:        resp.User.Email,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
		IssuedAt:     now,
		ExpiresAt:    now.Add(time.Duration(resp.ExpiresIn) * time.Second),
	}
	session.applyTokenClaims()
	return session
}

type providerError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func (e providerError) text() string {
	for _, candidate := range []string{e.ErrorDescription, e.Msg, e.Message, e.Error} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return authErrorf(0, "encode request: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return authErrorf(0, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return authErrorf(0, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var perr providerError
		if decodeErr := json.NewDecoder(resp.Body).Decode(&perr); decodeErr == nil {
			if text := perr.text(); text != "" {
				return authErrorf(resp.StatusCode, "%s", text)
			}
		}
		return authErrorf(resp.StatusCode, "request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return authErrorf(resp.StatusCode, "decode response: %v", err)
	}
	return nil
}
