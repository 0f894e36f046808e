package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/kingrea/staff-directory/internal/employee"
	"github.com/kingrea/staff-directory/internal/form"
)

func TestListCommandPrintsJSON(t *testing.T) {
	srv := newFakeServer(t, sampleEmployees())
	projectDir := t.TempDir()
	stdout, _, err := runCLI(t, "list", "--dir", projectDir, "--json", "--page", "2")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var out listOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout)
	}
	if out.Total != 7 || out.Pages != 2 || out.Page != 2 {
		t.Fatalf("unexpected paging: %+v", out)
	}
	if len(out.Employees) != 2 || out.Employees[0].Name != "Person 6" {
		t.Fatalf("page 2 should hold persons 6-7, got %+v", out.Employees)
	}
	if srv.lists() != 1 {
		t.Fatalf("expected one list call, got %d", srv.lists())
	}
	if _, err := os.Stat(filepath.Join(projectDir, ".directory", "config.yaml")); err != nil {
		t.Fatalf("list should initialize the project dir: %v", err)
	}
}

func TestListCommandTable(t *testing.T) {
	newFakeServer(t, sampleEmployees())
	stdout, _, err := runCLI(t, "list", "--dir", t.TempDir())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(stdout, "Person 1") || strings.Contains(stdout, "Person 6") {
		t.Fatalf("page 1 should show persons 1-5 only:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Showing 1–5 of 7 employees (page 1/2)") {
		t.Fatalf("missing window line:\n%s", stdout)
	}
}

func TestCreateCommandRejectsInvalidAge(t *testing.T) {
	srv := newFakeServer(t, nil)
	_, stderr, err := runCLI(t, "create", "--dir", t.TempDir(),
		"--name", "Kira Takada", "--gender", "male", "--age", "15",
		"--hobby", "reading", "--department", "Finance")
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(stderr, "Age must be between 20 and 40.") {
		t.Fatalf("stderr missing age error:\n%s", stderr)
	}
	if srv.creates() != 0 {
		t.Fatalf("invalid input must not reach the server")
	}
}

func TestCreateCommandRejectsSixthHobby(t *testing.T) {
	srv := newFakeServer(t, nil)
	args := []string{"create", "--dir", t.TempDir(), "--name", "Kira", "--gender", "female", "--age", "30", "--department", "Design"}
	for _, h := range []string{"a", "b", "c", "d", "e", "f"} {
		args = append(args, "--hobby", h)
	}
	_, stderr, err := runCLI(t, args...)
	if !errors.Is(err, form.ErrInvalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(stderr, form.MaxHobbiesMessage) {
		t.Fatalf("stderr missing hobby limit:\n%s", stderr)
	}
	if srv.creates() != 0 {
		t.Fatalf("rejected input must not reach the server")
	}
}

func TestCreateCommandPostsAndRefetches(t *testing.T) {
	srv := newFakeServer(t, nil)
	stdout, stderr, err := runCLI(t, "create", "--dir", t.TempDir(),
		"--name", "Kira Takada", "--gender", "Male", "--age", "29",
		"--hobby", "reading", "--hobby", "chess", "--department", "IT Development")
	if err != nil {
		t.Fatalf("create: %v\n%s", err, stderr)
	}
	got := srv.created()
	if len(got) != 1 {
		t.Fatalf("expected one POST, got %d", len(got))
	}
	want := employee.Employee{Name: "Kira Takada", Gender: "male", Age: 29, Hobby: "reading,chess", Department: "IT Development"}
	if got[0] != want {
		t.Fatalf("posted %+v, want %+v", got[0], want)
	}
	if srv.lists() != 1 {
		t.Fatalf("expected a refetch after create, got %d list calls", srv.lists())
	}
	if !strings.Contains(stderr, form.SuccessMessage) {
		t.Fatalf("stderr missing success notification:\n%s", stderr)
	}
	if !strings.Contains(stdout, "Directory now lists 1 employees") {
		t.Fatalf("unexpected stdout:\n%s", stdout)
	}
}

func TestCreateCommandRefetchFailure(t *testing.T) {
	srv := newFakeServer(t, nil)
	srv.listStatus = http.StatusServiceUnavailable
	stdout, stderr, err := runCLI(t, "create", "--dir", t.TempDir(),
		"--name", "Kira", "--gender", "female", "--age", "30",
		"--hobby", "reading", "--department", "Sales")
	if err != nil {
		t.Fatalf("create itself succeeded, got %v", err)
	}
	if srv.creates() != 1 {
		t.Fatalf("expected one POST, got %d", srv.creates())
	}
	if strings.Contains(stdout, "Directory now lists") {
		t.Fatalf("must not report a count after a failed reload:\n%s", stdout)
	}
	if !strings.Contains(stdout, "could not be reloaded") {
		t.Fatalf("unexpected stdout:\n%s", stdout)
	}
	if !strings.Contains(stderr, "Failed to fetch employees. Please try again later.") {
		t.Fatalf("stderr missing reload failure:\n%s", stderr)
	}
}

func TestCreateCommandReportsServerMessage(t *testing.T) {
	srv := newFakeServer(t, nil)
	srv.createStatus = http.StatusUnauthorized
	_, stderr, err := runCLI(t, "create", "--dir", t.TempDir(),
		"--name", "Kira", "--gender", "female", "--age", "30",
		"--hobby", "reading", "--department", "Sales")
	if err == nil {
		t.Fatalf("expected create to fail")
	}
	if !strings.Contains(stderr, "Unauthorized: Invalid Signature") {
		t.Fatalf("stderr missing server message:\n%s", stderr)
	}
	if srv.lists() != 0 {
		t.Fatalf("failed create must not refetch")
	}
}

func TestExportCommandWritesWorkbook(t *testing.T) {
	newFakeServer(t, sampleEmployees())
	projectDir := t.TempDir()
	out := filepath.Join(projectDir, "staff.xlsx")
	stdout, _, err := runCLI(t, "export", "--dir", projectDir, "--out", out)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		t.Fatalf("workbook not written: %v", err)
	}
	if !strings.Contains(stdout, "Wrote 7 employees") {
		t.Fatalf("unexpected stdout: %s", stdout)
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

type fakeServer struct {
	mu           sync.Mutex
	employees    []employee.Employee
	posted       []employee.Employee
	listCalls    int
	listStatus   int
	createStatus int
}

func newFakeServer(t *testing.T, employees []employee.Employee) *fakeServer {
	t.Helper()
	fs := &fakeServer{employees: employees, listStatus: http.StatusOK, createStatus: http.StatusCreated}
	srv := httptest.NewServer(http.HandlerFunc(fs.serve))
	t.Cleanup(srv.Close)
	t.Setenv("DIRECTORY_API_BASE", srv.URL)
	t.Setenv("DIRECTORY_SIGNATURE", "test-signature")
	t.Setenv("DIRECTORY_PAGE_SIZE", "5")
	return fs
}

func (fs *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if r.Header.Get("Signature") != "test-signature" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		fs.listCalls++
		if fs.listStatus != http.StatusOK {
			w.WriteHeader(fs.listStatus)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": fs.employees})
	case http.MethodPost:
		var e employee.Employee
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if fs.createStatus != http.StatusCreated {
			w.WriteHeader(fs.createStatus)
			return
		}
		fs.posted = append(fs.posted, e)
		fs.employees = append(fs.employees, e)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(e)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (fs *fakeServer) lists() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.listCalls
}

func (fs *fakeServer) creates() int {
	return len(fs.created())
}

func (fs *fakeServer) created() []employee.Employee {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]employee.Employee(nil), fs.posted...)
}

func sampleEmployees() []employee.Employee {
	names := []string{"Person 1", "Person 2", "Person 3", "Person 4", "Person 5", "Person 6", "Person 7"}
	out := make([]employee.Employee, 0, len(names))
	for i, name := range names {
		out = append(out, employee.Employee{
			Name:       name,
			Gender:     employee.Genders[i%2],
			Age:        21 + i,
			Hobby:      "reading",
			Department: employee.Departments[i%len(employee.Departments)],
		})
	}
	return out
}
