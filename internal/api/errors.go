package api

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
)

// maxErrorBody caps how much of a failure body is read looking for a message.
const maxErrorBody int64 = 64 << 10

// Error is returned by every failed Create or List. Status is zero when the
// request never produced a usable response.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("api: %s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("api: %s failed", e.Op)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

func statusError(op string, resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &Error{
		Op:      op,
		Status:  resp.StatusCode,
		Message: failureMessage(resp.StatusCode, body),
	}
}

// failureMessage prefers the body's message field, then a status-keyed default.
// Any non-empty message counts, whatever its JSON type.
func failureMessage(status int, body []byte) string {
	var parsed struct {
		Message any `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		if msg, ok := messageText(parsed.Message); ok {
			return msg
		}
	}
	if status == http.StatusUnauthorized {
		return unauthorizedMessage
	}
	return fmt.Sprintf("Error status: %d", status)
}

// messageText renders a decoded message value. Empty strings, zero, false and
// null carry no message.
func messageText(v any) (string, bool) {
	switch m := v.(type) {
	case nil:
		return "", false
	case string:
		return m, m != ""
	case float64:
		if m == 0 || math.IsNaN(m) {
			return "", false
		}
		return strconv.FormatFloat(m, 'f', -1, 64), true
	case bool:
		return "true", m
	default:
		raw, err := json.Marshal(m)
		if err != nil {
			return "", false
		}
		return string(raw), true
	}
}
