package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kingrea/staff-directory/internal/directory"
	"github.com/kingrea/staff-directory/internal/export"
	"github.com/kingrea/staff-directory/internal/notify"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the directory to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			path := strings.TrimSpace(out)
			if path == "" {
				path = filepath.Join(s.cfg.ExportsDir(), fmt.Sprintf("employees-%s.xlsx", time.Now().Format("20060102-150405")))
			}
			if err := export.WriteWorkbook(dir.Employees(), path); err != nil {
				return err
			}
			s.logger.Info("export_written", "path", path, "rows", dir.Len())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d employees to %s\n", dir.Len(), path)
			return err
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Workbook path (default: .directory/exports/employees-<timestamp>.xlsx)")
	return cmd
}
