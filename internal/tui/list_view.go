package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kingrea/staff-directory/internal/employee"
)

var titleCaser = cases.Title(language.English)

// tableColumns sizes the employee table for the terminal width. The photo
// column absorbs whatever is left once the fixed columns fit.
func tableColumns(width int) []table.Column {
	cols := []table.Column{
		{Title: "Photo", Width: 36},
		{Title: "Name", Width: 22},
		{Title: "Gender", Width: 8},
		{Title: "Age", Width: 4},
		{Title: "Hobby", Width: 28},
		{Title: "Department", Width: 18},
	}
	if width <= 0 {
		return cols
	}
	fixed := 0
	for _, c := range cols[1:] {
		fixed += c.Width + 2
	}
	cols[0].Width = max(12, width-fixed-8)
	return cols
}

func pageRows(page []employee.Employee) []table.Row {
	rows := make([]table.Row, 0, len(page))
	for _, e := range page {
		rows = append(rows, table.Row{
			e.PhotoURL(),
			e.Name,
			displayGender(e.Gender),
			strconv.Itoa(e.Age),
			strings.Join(e.Hobbies(), " · "),
			e.Department,
		})
	}
	return rows
}

func displayGender(gender string) string {
	return titleCaser.String(strings.TrimSpace(gender))
}

func (a *App) renderList() string {
	var content string
	switch {
	case a.dir.Loading() && a.dir.Len() == 0:
		content = mutedStyle.Render("Loading employees...")
	case a.dir.Len() == 0:
		content = mutedStyle.Render("No employees found.")
	default:
		first, last := a.pager.Window()
		footer := lipgloss.JoinHorizontal(lipgloss.Top,
			mutedStyle.Render(fmt.Sprintf("Showing %d–%d of %d employees  ", first, last, a.dir.Len())),
			a.pager.View(),
		)
		content = lipgloss.JoinVertical(lipgloss.Left, a.table.View(), footer)
	}
	if a.dir.Loading() && a.dir.Len() > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, content, mutedStyle.Render("Refreshing..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panelStyle.Render(content), a.help.View(listKeys))
}
