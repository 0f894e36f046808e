package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	json "github.com/goccy/go-json"

	"github.com/kingrea/staff-directory/internal/employee"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, employees []employee.Employee) error {
	rows := make([][]string, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, []string{
			e.Name,
			e.Gender,
			strconv.Itoa(e.Age),
			strings.Join(e.Hobbies(), ", "),
			e.Department,
			e.PhotoURL(),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Name", "Gender", "Age", "Hobby", "Department", "Photo").
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
