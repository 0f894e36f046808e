package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/staff-directory/internal/directory"
	"github.com/kingrea/staff-directory/internal/form"
	"github.com/kingrea/staff-directory/internal/notify"
)

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		values  form.Values
		hobbies []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add an employee through the same checks as the form",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			n := notify.NewWriter(cmd.ErrOrStderr())
			client := s.client(n)
			m := form.New(n, s.logger.Logger)
			m.SetField(form.FieldName, values.Name)
			m.SetField(form.FieldGender, strings.ToLower(strings.TrimSpace(values.Gender)))
			m.SetField(form.FieldAge, values.Age)
			m.SetField(form.FieldDepartment, values.Department)
			for _, tag := range hobbies {
				m.SetHobbyInput(tag)
				m.CommitHobby()
			}
			if msg := m.Errors[form.FieldHobby]; msg != "" {
				printFieldErrors(cmd.ErrOrStderr(), m.Errors)
				return form.ErrInvalid
			}

			dir := directory.New(client, n, s.logger.Logger)
			var refreshErr error
			err = m.Submit(cmd.Context(), client, func() {
				refreshErr = dir.Refresh(cmd.Context())
			})
			if errors.Is(err, form.ErrInvalid) {
				printFieldErrors(cmd.ErrOrStderr(), m.Errors)
				return err
			}
			if err != nil {
				return err
			}
			if refreshErr != nil {
				// The record exists; only the follow-up listing failed.
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Employee created; the directory could not be reloaded")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Directory now lists %d employees\n", dir.Len())
			return err
		},
	}
	cmd.Flags().StringVar(&values.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&values.Gender, "gender", "", "male or female")
	cmd.Flags().StringVar(&values.Age, "age", "", "Age (20-40)")
	cmd.Flags().StringArrayVar(&hobbies, "hobby", nil, "Hobby tag (repeat up to 5 times)")
	cmd.Flags().StringVar(&values.Department, "department", "", "Department")
	return cmd
}

func printFieldErrors(w io.Writer, errs map[form.Field]string) {
	for _, field := range form.Fields {
		if msg, ok := errs[field]; ok {
			fmt.Fprintf(w, "%-10s %s\n", field, msg)
		}
	}
}
