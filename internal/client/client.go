// Package client is a typed HTTP client for the FWFPS API. A Client carries
// the caller's session token explicitly; build one per request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Code)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client calls the API on behalf of one caller.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a Client. httpClient may be nil; token may be empty for an
// anonymous caller.
func New(baseURL string, httpClient *http.Client, token string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		token:   token,
	}
}

// WithToken returns a copy of c that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token is the session token the client sends.
func (c *Client) Token() string { return c.token }

// ── auth ──

// LoginResult is the user and token returned by a successful login.
type LoginResult struct {
	User  dto.UserResponse `json:"user"`
	Token string           `json:"token"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, dto.LoginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout destroys the session. A caller without a session succeeds.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// CurrentUser returns the session's user, or nil without error when the
// caller has no valid session.
func (c *Client) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	if c.token == "" {
		return nil, nil
	}
	var out struct {
		User dto.UserResponse `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out.User, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	var out struct {
		User dto.UserResponse `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ── workplans ──

// Workplans lists workplans matching q.
func (c *Client) Workplans(ctx context.Context, q dto.WorkplanListQuery) ([]dto.WorkplanResponse, error) {
	params := url.Values{}
	setIf(params, "status", q.Status)
	setIf(params, "priority", q.Priority)
	setIf(params, "assigned_to", q.AssignedTo)

	var out struct {
		Workplans []dto.WorkplanResponse `json:"workplans"`
	}
	if err := c.do(ctx, http.MethodGet, "/workplans", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Workplans, nil
}

// WorkplanDashboard returns the workplan counters.
func (c *Client) WorkplanDashboard(ctx context.Context) (*dto.WorkplanDashboard, error) {
	var out struct {
		Dashboard dto.WorkplanDashboard `json:"dashboard"`
	}
	if err := c.do(ctx, http.MethodGet, "/workplans/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Dashboard, nil
}

// ── PAC ──

// Operations lists PAC operations matching q.
func (c *Client) Operations(ctx context.Context, q dto.OperationListQuery) ([]dto.OperationResponse, error) {
	params := url.Values{}
	setIf(params, "type", q.Type)
	setIf(params, "status", q.Status)
	setIf(params, "priority", q.Priority)
	setIf(params, "inspector", q.Inspector)

	var out struct {
		Operations []dto.OperationResponse `json:"operations"`
	}
	if err := c.do(ctx, http.MethodGet, "/pac/operations", params, nil, &out); err != nil {
		return nil, err
	}
	return out.Operations, nil
}

// PacDashboard returns the operation counters.
func (c *Client) PacDashboard(ctx context.Context) (*dto.PacDashboard, error) {
	var out struct {
		Dashboard dto.PacDashboard `json:"dashboard"`
	}
	if err := c.do(ctx, http.MethodGet, "/pac/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Dashboard, nil
}

// ── transport ──

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var eb struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &eb) == nil && eb.Error != "" {
			apiErr.Code = eb.Error
			apiErr.Message = eb.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func setIf(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
