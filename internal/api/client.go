// internal/api/client.go
//
// Client talks to the employee endpoint. Both operations share one base URL
// and one shared-secret header, and both report failures to a Notifier
// before returning them, because the user must see every failed call.

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/kingrea/staff-directory/internal/employee"
	"github.com/kingrea/staff-directory/internal/notify"
)

const (
	// SignatureHeader carries the shared secret on every request.
	SignatureHeader = "Signature"
	// RequestIDHeader tags a request so client and server logs can be matched.
	RequestIDHeader = "X-Request-ID"

	createFallbackMessage = "Something went wrong"
	listFallbackMessage   = "Failed to fetch employees"
	unauthorizedMessage   = "Unauthorized: Invalid Signature"
)

// Settings captures the endpoint configuration injected at startup.
type Settings struct {
	BaseURL   string
	Signature string
	// Timeout bounds a whole request. Zero leaves requests unbounded.
	Timeout time.Duration
}

// Payload is the parsed JSON body returned by a successful create.
type Payload map[string]any

// Client wraps the create and list operations.
type Client struct {
	settings Settings
	http     *http.Client
	notifier notify.Notifier
	logger   *slog.Logger
	newID    func() string
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithNotifier sets where failure notifications go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New prepares a client for the given settings.
func New(settings Settings, opts ...Option) *Client {
	settings.BaseURL = strings.TrimSpace(settings.BaseURL)
	c := &Client{
		settings: settings,
		http:     &http.Client{Timeout: settings.Timeout},
		notifier: notify.Discard{},
		logger:   slog.Default(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Create posts a new employee. Only 201 counts as success.
func (c *Client) Create(ctx context.Context, e employee.Employee) (Payload, error) {
	payload, err := c.create(ctx, e)
	if err != nil {
		c.fail("create", err, createFallbackMessage)
		return nil, err
	}
	return payload, nil
}

func (c *Client) create(ctx context.Context, e employee.Employee) (Payload, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, &Error{Op: "create", Err: fmt.Errorf("encode employee: %w", err)}
	}
	resp, err := c.do(ctx, http.MethodPost, body)
	if err != nil {
		return nil, &Error{Op: "create", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated {
		return nil, statusError("create", resp)
	}
	var payload Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &Error{Op: "create", Err: fmt.Errorf("decode response: %w", err)}
	}
	return payload, nil
}

// List fetches every employee. 204 and a missing data field both mean none.
func (c *Client) List(ctx context.Context) ([]employee.Employee, error) {
	list, err := c.list(ctx)
	if err != nil {
		c.fail("list", err, listFallbackMessage)
		return nil, err
	}
	return list, nil
}

func (c *Client) list(ctx context.Context) ([]employee.Employee, error) {
	resp, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, &Error{Op: "list", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var envelope struct {
			Data []employee.Employee `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, &Error{Op: "list", Err: fmt.Errorf("decode response: %w", err)}
		}
		if envelope.Data == nil {
			return []employee.Employee{}, nil
		}
		return envelope.Data, nil
	case http.StatusNoContent:
		return []employee.Employee{}, nil
	default:
		return nil, statusError("list", resp)
	}
}

func (c *Client) do(ctx context.Context, method string, body []byte) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.settings.BaseURL, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set(SignatureHeader, c.settings.Signature)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	c.logger.Debug("api_request",
		"method", method,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start),
	)
	return resp, nil
}

// fail notifies the user and records the failure. Status errors carry their
// own message; anything else falls back to a generic one.
func (c *Client) fail(op string, err error, fallback string) {
	message := fallback
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" {
		message = apiErr.Message
	}
	c.notifier.Error(message)
	c.logger.Warn("api_failed", "op", op, "message", message, "err", err)
}
