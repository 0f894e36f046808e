package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/kingrea/staff-directory/internal/employee"
)

type recordingNotifier struct {
	mu        sync.Mutex
	errors    []string
	successes []string
}

func (r *recordingNotifier) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, message)
}

func (r *recordingNotifier) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := &recordingNotifier{}
	client := New(Settings{BaseURL: srv.URL, Signature: "test-secret"}, WithNotifier(rec))
	return client, rec
}

func TestCreateSendsHeadersAndBody(t *testing.T) {
	var got employee.Employee
	var headers http.Header
	client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"created","data":{"name":"Kira Takada"}}`))
	})
	payload, err := client.Create(context.Background(), employee.Employee{
		Name:       "Kira Takada",
		Gender:     "female",
		Age:        28,
		Hobby:      "reading,chess",
		Department: "Design",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if payload["message"] != "created" {
		t.Fatalf("payload = %#v", payload)
	}
	if headers.Get(SignatureHeader) != "test-secret" {
		t.Fatalf("signature header = %q", headers.Get(SignatureHeader))
	}
	if headers.Get("Content-Type") != "application/json" {
		t.Fatalf("content type = %q", headers.Get("Content-Type"))
	}
	if headers.Get(RequestIDHeader) == "" {
		t.Fatalf("expected a request id header")
	}
	if got.Hobby != "reading,chess" || got.Age != 28 {
		t.Fatalf("unexpected body %+v", got)
	}
	if len(rec.errors) != 0 {
		t.Fatalf("no notification expected on success, got %v", rec.errors)
	}
}

func TestCreateFailureMessages(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"unauthorized without body", http.StatusUnauthorized, "", "Unauthorized: Invalid Signature"},
		{"server error without body", http.StatusInternalServerError, "", "Error status: 500"},
		{"server error with html", http.StatusInternalServerError, "<html>oops</html>", "Error status: 500"},
		{"body message wins", http.StatusUnauthorized, `{"message":"signature expired"}`, "signature expired"},
		{"empty message falls back", http.StatusBadRequest, `{"message":""}`, "Error status: 400"},
		{"numeric message", http.StatusBadRequest, `{"message":42}`, "42"},
		{"whitespace message kept", http.StatusBadRequest, `{"message":"  "}`, "  "},
		{"null message falls back", http.StatusConflict, `{"message":null}`, "Error status: 409"},
		{"false message falls back", http.StatusConflict, `{"message":false}`, "Error status: 409"},
		{"ok is not created", http.StatusOK, `{}`, "Error status: 200"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := client.Create(context.Background(), employee.Employee{Name: "x"})
			if err == nil {
				t.Fatalf("expected error")
			}
			if StatusOf(err) != tc.status {
				t.Fatalf("status = %d, want %d", StatusOf(err), tc.status)
			}
			if MessageOf(err) != tc.want {
				t.Fatalf("message = %q, want %q", MessageOf(err), tc.want)
			}
			if len(rec.errors) != 1 || rec.errors[0] != tc.want {
				t.Fatalf("notifications = %v, want [%q]", rec.errors, tc.want)
			}
		})
	}
}

func TestCreateTransportFailureNotifiesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := srv.URL
	srv.Close()
	rec := &recordingNotifier{}
	client := New(Settings{BaseURL: base}, WithNotifier(rec))
	_, err := client.Create(context.Background(), employee.Employee{Name: "x"})
	if err == nil {
		t.Fatalf("expected transport error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != 0 || apiErr.Err == nil {
		t.Fatalf("expected wrapped transport error, got %#v", err)
	}
	if len(rec.errors) != 1 || rec.errors[0] != "Something went wrong" {
		t.Fatalf("notifications = %v", rec.errors)
	}
}

func TestListStatuses(t *testing.T) {
	t.Run("ok with data", func(t *testing.T) {
		client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("method = %s, want GET", r.Method)
			}
			if r.Header.Get(SignatureHeader) != "test-secret" {
				t.Errorf("missing signature")
			}
			_, _ = w.Write([]byte(`{"data":[{"name":"A","gender":"male","age":30,"hobby":"go","department":"Sales"}]}`))
		})
		list, err := client.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(list) != 1 || list[0].Name != "A" || list[0].Age != 30 {
			t.Fatalf("unexpected list %+v", list)
		}
		if len(rec.errors) != 0 {
			t.Fatalf("unexpected notifications %v", rec.errors)
		}
	})
	t.Run("ok without data", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"meta":{}}`))
		})
		list, err := client.List(context.Background())
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if list == nil || len(list) != 0 {
			t.Fatalf("expected empty non-nil list, got %#v", list)
		}
	})
	t.Run("no content", func(t *testing.T) {
		client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		list, err := client.List(context.Background())
		if err != nil {
			t.Fatalf("204 must not fail: %v", err)
		}
		if len(list) != 0 {
			t.Fatalf("expected empty list, got %+v", list)
		}
		if len(rec.errors) != 0 {
			t.Fatalf("unexpected notifications %v", rec.errors)
		}
	})
	t.Run("unauthorized", func(t *testing.T) {
		client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		if _, err := client.List(context.Background()); err == nil {
			t.Fatalf("expected error")
		}
		if len(rec.errors) != 1 || rec.errors[0] != "Unauthorized: Invalid Signature" {
			t.Fatalf("notifications = %v", rec.errors)
		}
	})
	t.Run("malformed body", func(t *testing.T) {
		client, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":`))
		})
		if _, err := client.List(context.Background()); err == nil {
			t.Fatalf("expected decode error")
		}
		if len(rec.errors) != 1 || rec.errors[0] != "Failed to fetch employees" {
			t.Fatalf("notifications = %v", rec.errors)
		}
	})
}
