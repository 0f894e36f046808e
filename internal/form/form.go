// internal/form/form.go
//
// Model is the state behind the "add employee" form. Each mutation is an
// explicit transition; the TUI and the CLI drive the same transitions so
// they validate and submit identically.

package form

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kingrea/staff-directory/internal/api"
	"github.com/kingrea/staff-directory/internal/employee"
	"github.com/kingrea/staff-directory/internal/notify"
	"github.com/kingrea/staff-directory/internal/validation"
)

// Field names one form input.
type Field string

const (
	FieldName       Field = "name"
	FieldGender     Field = "gender"
	FieldAge        Field = "age"
	FieldHobby      Field = "hobby"
	FieldDepartment Field = "department"
)

// Fields lists every field in display order.
var Fields = []Field{FieldName, FieldGender, FieldAge, FieldHobby, FieldDepartment}

const (
	// SuccessMessage is shown after the server accepts a new record.
	SuccessMessage = "Employee created successfully!"
	// MaxHobbiesMessage is the inline error for a tag past the limit.
	MaxHobbiesMessage = "Maximum 5 hobbies allowed"
)

var (
	// ErrInvalid is returned by Submit when a field check failed.
	ErrInvalid = errors.New("form: validation failed")
	// ErrInFlight is returned by Submit while a previous create is outstanding.
	ErrInFlight = errors.New("form: submission already in flight")
)

// Values holds the raw text of every field. Age stays text until submit.
type Values struct {
	Name       string
	Gender     string
	Age        string
	Hobby      string
	Department string
}

// Creator is the slice of the API client the form needs.
type Creator interface {
	Create(ctx context.Context, e employee.Employee) (api.Payload, error)
}

// Model is the form state.
type Model struct {
	Values     Values
	Hobbies    []string
	HobbyInput string
	Errors     map[Field]string
	Submitting bool

	notifier notify.Notifier
	logger   *slog.Logger
}

// New returns an empty form. A nil notifier or logger is replaced by a no-op.
func New(n notify.Notifier, logger *slog.Logger) *Model {
	if n == nil {
		n = notify.Discard{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Model{Errors: map[Field]string{}, notifier: n, logger: logger}
}

// Reset returns every piece of state to its initial value.
func (m *Model) Reset() {
	m.Values = Values{}
	m.Hobbies = nil
	m.HobbyInput = ""
	m.Errors = map[Field]string{}
	m.Submitting = false
}

// SetField stores value and clears that field's error.
func (m *Model) SetField(field Field, value string) {
	switch field {
	case FieldName:
		m.Values.Name = value
	case FieldGender:
		m.Values.Gender = value
	case FieldAge:
		m.Values.Age = value
	case FieldHobby:
		m.Values.Hobby = value
	case FieldDepartment:
		m.Values.Department = value
	default:
		return
	}
	m.clearError(field)
}

// Value returns the raw text of field.
func (m *Model) Value(field Field) string {
	switch field {
	case FieldName:
		return m.Values.Name
	case FieldGender:
		return m.Values.Gender
	case FieldAge:
		return m.Values.Age
	case FieldHobby:
		return m.Values.Hobby
	case FieldDepartment:
		return m.Values.Department
	}
	return ""
}

// SetHobbyInput replaces the tag being typed.
func (m *Model) SetHobbyInput(text string) {
	m.HobbyInput = text
}

// CommitHobby handles the end-of-input signal for the tag being typed. It
// reports whether a tag was appended. Duplicates are ignored without an error.
func (m *Model) CommitHobby() bool {
	tag := strings.TrimSpace(m.HobbyInput)
	if tag == "" {
		return false
	}
	if len(m.Hobbies) >= employee.MaxHobbies {
		m.setError(FieldHobby, MaxHobbiesMessage)
		return false
	}
	for _, existing := range m.Hobbies {
		if existing == tag {
			return false
		}
	}
	m.Hobbies = append(m.Hobbies, tag)
	m.Values.Hobby = employee.JoinHobbies(m.Hobbies)
	m.HobbyInput = ""
	m.clearError(FieldHobby)
	return true
}

// RemoveHobby drops tag from the collection.
func (m *Model) RemoveHobby(tag string) {
	kept := m.Hobbies[:0]
	for _, existing := range m.Hobbies {
		if existing != tag {
			kept = append(kept, existing)
		}
	}
	m.Hobbies = kept
	m.Values.Hobby = employee.JoinHobbies(m.Hobbies)
	m.clearError(FieldHobby)
}

// Validate runs every field check and returns the failures keyed by field.
func (m *Model) Validate() map[Field]string {
	verdicts := map[Field]validation.Verdict{
		FieldName:       validation.RequiredString(m.Values.Name, "Name"),
		FieldGender:     validation.RequiredString(m.Values.Gender, "Gender"),
		FieldAge:        validation.Age(validation.ParseAge(m.Values.Age)),
		FieldHobby:      validation.Hobby(m.Values.Hobby),
		FieldDepartment: validation.RequiredString(m.Values.Department, "Department"),
	}
	errs := map[Field]string{}
	for field, v := range verdicts {
		if !v.IsValid {
			errs[field] = v.Message
		}
	}
	return errs
}

// Payload coerces the current values into the record sent to the server.
func (m *Model) Payload() employee.Employee {
	age := 0
	if parsed := validation.ParseAge(m.Values.Age); parsed != nil {
		age = int(*parsed)
	}
	return employee.Employee{
		Name:       m.Values.Name,
		Gender:     m.Values.Gender,
		Age:        age,
		Hobby:      m.Values.Hobby,
		Department: m.Values.Department,
	}
}

// Begin gates a submission. When any field fails, the error map is replaced
// and ok is false. On success the in-flight flag is set and the coerced
// payload is returned; the caller must pair it with Finish.
func (m *Model) Begin() (employee.Employee, bool) {
	if m.Submitting {
		return employee.Employee{}, false
	}
	if errs := m.Validate(); len(errs) > 0 {
		m.Errors = errs
		return employee.Employee{}, false
	}
	m.Submitting = true
	return m.Payload(), true
}

// Finish records the outcome of a create call. The in-flight flag is always
// cleared; on failure the input is kept so the user can retry.
func (m *Model) Finish(err error) {
	m.Submitting = false
	if err != nil {
		m.logger.Error("Failed to create employee", "err", err)
		return
	}
	m.notifier.Success(SuccessMessage)
	m.Reset()
}

// Submit runs the whole pipeline synchronously: validate, create, then on
// success notify, reset and call onCreated.
func (m *Model) Submit(ctx context.Context, creator Creator, onCreated func()) error {
	if m.Submitting {
		return ErrInFlight
	}
	payload, ok := m.Begin()
	if !ok {
		return ErrInvalid
	}
	defer func() { m.Submitting = false }()
	_, err := creator.Create(ctx, payload)
	m.Finish(err)
	if err != nil {
		return err
	}
	if onCreated != nil {
		onCreated()
	}
	return nil
}

func (m *Model) setError(field Field, message string) {
	if m.Errors == nil {
		m.Errors = map[Field]string{}
	}
	m.Errors[field] = message
}

func (m *Model) clearError(field Field) {
	delete(m.Errors, field)
}
