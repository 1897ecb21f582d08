package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	domain "userdeck/internal/domain/user"
	pkgerrors "userdeck/pkg/errors"
	"userdeck/pkg/logger"
	"userdeck/pkg/security"
)

// fixedBackendSegment is the path segment used by list, create and delete.
// Update is addressed through the page's backend label instead; the two are
// kept apart on purpose until the backend settles on one routing scheme.
const fixedBackendSegment = "rust"


// Client talks to the users REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a backend client rooted at baseURL.
func NewClient(baseURL string, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// userPayload is the request body for create and update
type userPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsers fetches every user: GET /api/rust/users.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, http.MethodGet, c.usersURL(fixedBackendSegment), nil, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateUser posts a new user and returns the record the backend created:
// POST /api/rust/users.
func (c *Client) CreateUser(ctx context.Context, d domain.NewUserDraft) (*domain.User, error) {
	var created domain.User
	body := userPayload{Name: d.Name, Email: d.Email}
	if err := c.do(ctx, http.MethodPost, c.usersURL(fixedBackendSegment), body, &created); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &created, nil
}

// UpdateUser replaces name and email of the user addressed by id:
// PUT /api/{label}/users/{id}. The response body is not used. The label must
// be a plain path segment; id is escaped.
func (c *Client) UpdateUser(ctx context.Context, label, id string, d domain.UpdateUserDraft) error {
	if err := security.ValidatePathSegment(label); err != nil {
		return fmt.Errorf("update user %q: backend label %q: %w", id, label, err)
	}
	body := userPayload{Name: d.Name, Email: d.Email}
	if err := c.do(ctx, http.MethodPut, c.userURL(label, id), body, nil); err != nil {
		return fmt.Errorf("update user %q: %w", id, err)
	}
	return nil
}

// DeleteUser removes a user: DELETE /api/rust/users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, c.userURL(fixedBackendSegment, strconv.FormatInt(id, 10)), nil, nil); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (c *Client) usersURL(segment string) string {
	return c.baseURL + "/api/" + url.PathEscape(segment) + "/users"
}

func (c *Client) userURL(segment, id string) string {
	return c.usersURL(segment) + "/" + url.PathEscape(id)
}

// do sends one JSON request. A non-2xx answer becomes a *pkgerrors.BackendError.
// When out is nil the response body is discarded.
func (c *Client) do(ctx context.Context, method, target string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := logger.GetRequestID(ctx); id != "" {
		req.Header.Set(logger.RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	logger.WithContext(ctx, c.log).Debug("backend call",
		zap.String("method", method),
		zap.String("url", target),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, pkgerrors.MaxBodyExcerpt))
		return pkgerrors.NewBackendError(method, target, resp.StatusCode, excerpt)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, target, err)
	}
	return nil
}
