package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kingrea/staff-directory/internal/directory"
	"github.com/kingrea/staff-directory/internal/employee"
	"github.com/kingrea/staff-directory/internal/notify"
)

type listOutput struct {
	Page      int                 `json:"page"`
	Pages     int                 `json:"pages"`
	Total     int                 `json:"total"`
	Employees []employee.Employee `json:"employees"`
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		page   int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if page < 0 {
				return fmt.Errorf("invalid --page %d", page)
			}
			s, err := openSession(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer s.Close()

			n := notify.NewWriter(cmd.ErrOrStderr())
			dir := directory.New(s.client(n), n, s.logger.Logger)
			if err := dir.Refresh(cmd.Context()); err != nil {
				return err
			}

			pager := directory.NewPager(s.cfg.Project.UI.PageSize)
			pager.SetTotal(dir.Len())
			visible := dir.Employees()
			if page > 0 {
				pager.Goto(page)
				visible = directory.Page(visible, pager.Current(), pager.PerPage())
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, listOutput{
					Page:      page,
					Pages:     pager.Pages(),
					Total:     dir.Len(),
					Employees: visible,
				})
			}
			if dir.Len() == 0 {
				_, err := fmt.Fprintln(out, "No employees found.")
				return err
			}
			if err := writeTable(out, visible); err != nil {
				return err
			}
			if page == 0 {
				_, err = fmt.Fprintf(out, "%d employees\n", dir.Len())
				return err
			}
			first, last := pager.Window()
			_, err = fmt.Fprintf(out, "Showing %d–%d of %d employees (page %d/%d)\n", first, last, dir.Len(), pager.Current(), pager.Pages())
			return err
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page to print (0 prints every employee)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
