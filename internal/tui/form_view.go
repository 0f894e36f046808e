package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/staff-directory/internal/employee"
	"github.com/kingrea/staff-directory/internal/form"
)

var fieldLabels = map[form.Field]string{
	form.FieldName:       "Name",
	form.FieldGender:     "Gender",
	form.FieldAge:        "Age",
	form.FieldHobby:      "Hobby",
	form.FieldDepartment: "Department",
}

func (a *App) openForm() tea.Cmd {
	a.form.Reset()
	a.resetInputs()
	a.state = stateForm
	return tea.Batch(a.setFocus(0), textinput.Blink)
}

func (a *App) closeForm() {
	a.form.Reset()
	a.resetInputs()
	a.state = stateList
}

func (a *App) resetInputs() {
	for _, ti := range a.inputs {
		ti.Reset()
		ti.Blur()
	}
	a.genderIdx = -1
	a.deptIdx = -1
	a.focus = 0
}

func (a *App) focusedField() form.Field {
	return form.Fields[a.focus]
}

func (a *App) setFocus(idx int) tea.Cmd {
	n := len(form.Fields)
	a.focus = ((idx % n) + n) % n
	for _, ti := range a.inputs {
		ti.Blur()
	}
	if ti, ok := a.inputs[a.focusedField()]; ok {
		return ti.Focus()
	}
	return nil
}

func (a *App) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := a.focusedField()
	// Cancel and save are inert while a create is outstanding.
	if a.form.Submitting && (key.Matches(msg, formKeys.Cancel) || key.Matches(msg, formKeys.Submit)) {
		return a, nil
	}
	switch {
	case key.Matches(msg, formKeys.Cancel):
		a.closeForm()
		return a, nil
	case key.Matches(msg, formKeys.Submit):
		return a, a.submit()
	case key.Matches(msg, formKeys.NextField):
		return a, a.setFocus(a.focus + 1)
	case key.Matches(msg, formKeys.PrevField):
		return a, a.setFocus(a.focus - 1)
	}

	switch field {
	case form.FieldGender:
		if delta := cycleDelta(msg); delta != 0 {
			a.genderIdx = cycle(a.genderIdx, delta, len(employee.Genders))
			a.form.SetField(form.FieldGender, employee.Genders[a.genderIdx])
		} else if msg.Type == tea.KeyEnter {
			return a, a.setFocus(a.focus + 1)
		}
		return a, nil
	case form.FieldDepartment:
		if delta := cycleDelta(msg); delta != 0 {
			a.deptIdx = cycle(a.deptIdx, delta, len(employee.Departments))
			a.form.SetField(form.FieldDepartment, employee.Departments[a.deptIdx])
		}
		return a, nil
	case form.FieldHobby:
		input := a.inputs[form.FieldHobby]
		switch {
		case key.Matches(msg, formKeys.Commit):
			a.form.SetHobbyInput(input.Value())
			a.form.CommitHobby()
			input.SetValue(a.form.HobbyInput)
			return a, nil
		case msg.Type == tea.KeyBackspace && input.Value() == "":
			if tags := a.form.Hobbies; len(tags) > 0 {
				a.form.RemoveHobby(tags[len(tags)-1])
			}
			return a, nil
		}
	default:
		if msg.Type == tea.KeyEnter {
			return a, a.setFocus(a.focus + 1)
		}
	}

	input, ok := a.inputs[field]
	if !ok {
		return a, nil
	}
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	a.syncInput(field)
	return a, cmd
}

// syncInput copies a text input into the form. Only a real change counts as
// an edit, so cursor movement does not clear an inline error.
func (a *App) syncInput(field form.Field) {
	value := a.inputs[field].Value()
	if field == form.FieldHobby {
		a.form.SetHobbyInput(value)
		return
	}
	if value != a.form.Value(field) {
		a.form.SetField(field, value)
	}
}

// submit runs the validation gate and, when it passes, returns the create
// command. Nothing is sent while a previous create is outstanding.
func (a *App) submit() tea.Cmd {
	payload, ok := a.form.Begin()
	if !ok || a.client == nil {
		return nil
	}
	creator := a.client
	timeout := a.timeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		_, err := creator.Create(ctx, payload)
		return createFinishedMsg{err: err}
	}
}

func cycleDelta(msg tea.KeyMsg) int {
	switch msg.Type {
	case tea.KeyLeft:
		return -1
	case tea.KeyRight:
		return 1
	}
	return 0
}

// cycle moves through n options. From "nothing selected" it lands on the
// first or last option depending on direction.
func cycle(idx, delta, n int) int {
	if idx < 0 {
		if delta > 0 {
			return 0
		}
		return n - 1
	}
	return ((idx+delta)%n + n) % n
}

func (a *App) renderForm() string {
	rows := make([]string, 0, len(form.Fields)+2)
	for i, field := range form.Fields {
		label := labelStyle
		if i == a.focus {
			label = focusedLabel
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[field]), a.renderControl(field))
		if msg := a.form.Errors[field]; msg != "" {
			row = lipgloss.JoinVertical(lipgloss.Left, row, labelStyle.Render("")+errorTextStyle.Render(msg))
		}
		rows = append(rows, row)
	}
	status := hintStyle.Render("ctrl+s to save · esc to cancel")
	if a.form.Submitting {
		status = savingStyle.Render("Saving...")
	}
	rows = append(rows, "", status)
	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
	return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Add Employee"), panel, a.help.View(formKeys))
}

func (a *App) renderControl(field form.Field) string {
	switch field {
	case form.FieldGender:
		return renderOptions(employee.Genders, a.genderIdx, displayGender)
	case form.FieldDepartment:
		if a.deptIdx < 0 {
			return mutedStyle.Render("‹ Select department ›")
		}
		return selectedStyle.Render("‹ " + employee.Departments[a.deptIdx] + " ›")
	case form.FieldHobby:
		chips := make([]string, 0, len(a.form.Hobbies))
		for _, tag := range a.form.Hobbies {
			chips = append(chips, chipStyle.Render(tag))
		}
		count := mutedStyle.Render(fmt.Sprintf("%d/%d", len(a.form.Hobbies), employee.MaxHobbies))
		line := a.inputs[form.FieldHobby].View()
		if len(chips) == 0 {
			return lipgloss.JoinVertical(lipgloss.Left, line, count)
		}
		return lipgloss.JoinVertical(lipgloss.Left, line, strings.Join(chips, "")+count)
	default:
		return a.inputs[field].View()
	}
}

func renderOptions(options []string, selected int, label func(string) string) string {
	parts := make([]string, 0, len(options))
	for i, opt := range options {
		if i == selected {
			parts = append(parts, selectedStyle.Render("(•) "+label(opt)))
			continue
		}
		parts = append(parts, optionStyle.Render("( ) "+label(opt)))
	}
	return strings.Join(parts, "")
}
