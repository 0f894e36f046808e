// internal/directory/directory.go
//
// Directory is the list container: it owns the in-memory employee list and
// replaces it wholesale on every successful fetch.

package directory

import (
	"context"
	"log/slog"

	"github.com/kingrea/staff-directory/internal/employee"
	"github.com/kingrea/staff-directory/internal/notify"
)

// RefreshFailedMessage is shown when a fetch fails; the last good list stays.
const RefreshFailedMessage = "Failed to fetch employees. Please try again later."

// Lister is the slice of the API client the directory needs.
type Lister interface {
	List(ctx context.Context) ([]employee.Employee, error)
}

// Directory holds the fetched employees.
type Directory struct {
	lister   Lister
	notifier notify.Notifier
	logger   *slog.Logger

	employees []employee.Employee
	loading   bool
}

// New creates an empty directory backed by lister.
func New(lister Lister, n notify.Notifier, logger *slog.Logger) *Directory {
	if n == nil {
		n = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{lister: lister, notifier: n, logger: logger}
}

// Employees returns the current list.
func (d *Directory) Employees() []employee.Employee {
	return d.employees
}

// Len returns the number of employees held.
func (d *Directory) Len() int {
	return len(d.employees)
}

// Loading reports whether a fetch is outstanding.
func (d *Directory) Loading() bool {
	return d.loading
}

// Refresh fetches the list and replaces the held one on success.
func (d *Directory) Refresh(ctx context.Context) error {
	d.BeginRefresh()
	list, err := d.Fetch(ctx)
	d.Apply(list, err)
	return err
}

// BeginRefresh marks a fetch as outstanding.
func (d *Directory) BeginRefresh() {
	d.loading = true
}

// Fetch calls the lister without touching held state, so it can run off the
// UI loop. Pair it with Apply.
func (d *Directory) Fetch(ctx context.Context) ([]employee.Employee, error) {
	return d.lister.List(ctx)
}

// Apply records the outcome of a fetch. The last completed fetch wins.
func (d *Directory) Apply(list []employee.Employee, err error) {
	d.loading = false
	if err != nil {
		d.logger.Error("Failed to fetch employees", "err", err)
		d.notifier.Error(RefreshFailedMessage)
		return
	}
	if list == nil {
		list = []employee.Employee{}
	}
	d.employees = list
	d.logger.Info("employees_loaded", "count", len(list))
}
