package notify

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelSuccess Level = "SUCCESS"
	LevelError   Level = "ERROR"
)

// DefaultTTL is how long a notification stays visible before it auto-dismisses.
const DefaultTTL = 4 * time.Second

// Notifier receives user-visible transient notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Notification is one entry in the tray.
type Notification struct {
	ID      int
	Level   Level
	Message string
	At      time.Time
}

// Tray keeps recent notifications until they expire or are dismissed.
type Tray struct {
	mu     sync.Mutex
	ttl    time.Duration
	clock  func() time.Time
	nextID int
	items  []Notification
}

// TrayOption customizes tray construction.
type TrayOption func(*Tray)

// WithClock allows tests to control expiry.
func WithClock(clock func() time.Time) TrayOption {
	return func(t *Tray) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// NewTray creates a tray whose entries expire after ttl.
func NewTray(ttl time.Duration, opts ...TrayOption) *Tray {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	t := &Tray{ttl: ttl, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// TTL returns the auto-dismiss interval.
func (t *Tray) TTL() time.Duration {
	if t == nil {
		return DefaultTTL
	}
	return t.ttl
}

// Push appends a notification and returns its id.
func (t *Tray) Push(level Level, message string) int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.items = append(t.items, Notification{
		ID:      t.nextID,
		Level:   level,
		Message: strings.TrimSpace(message),
		At:      t.clock(),
	})
	return t.nextID
}

// Success pushes a success notification.
func (t *Tray) Success(message string) { t.Push(LevelSuccess, message) }

// Error pushes an error notification.
func (t *Tray) Error(message string) { t.Push(LevelError, message) }

// Active prunes expired entries and returns the rest, oldest first.
func (t *Tray) Active() []Notification {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := t.prune()
	if len(kept) == 0 {
		return nil
	}
	out := make([]Notification, len(kept))
	copy(out, kept)
	return out
}

// prune drops expired entries. Callers hold t.mu.
func (t *Tray) prune() []Notification {
	now := t.clock()
	kept := t.items[:0]
	for _, n := range t.items {
		if now.Sub(n.At) < t.ttl {
			kept = append(kept, n)
		}
	}
	t.items = kept
	return kept
}

// Dismiss removes the notification with id. It reports whether one was removed.
func (t *Tray) Dismiss(id int) bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, n := range t.items {
		if n.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// DismissLatest removes the newest notification that has not expired.
func (t *Tray) DismissLatest() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.prune()) == 0 {
		return false
	}
	t.items = t.items[:len(t.items)-1]
	return true
}

// Writer prints notifications as lines, for non-interactive commands.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter wraps out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) write(level Level, message string) {
	if w == nil || w.out == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "%-7s %s\n", string(level), strings.TrimSpace(message))
}

// Success prints a success line.
func (w *Writer) Success(message string) { w.write(LevelSuccess, message) }

// Error prints an error line.
func (w *Writer) Error(message string) { w.write(LevelError, message) }

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
