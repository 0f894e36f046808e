package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/staff-directory/internal/notify"
	"github.com/kingrea/staff-directory/internal/tui"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive directory (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	s, err := openSession(opts, nil)
	if err != nil {
		return err
	}
	defer s.Close()
	ui := s.cfg.Project.UI
	// API failures and form outcomes share one tray.
	tray := notify.NewTray(ui.NotificationTTL)

	app := tui.NewApp(s.client(tray),
		tui.WithTray(tray),
		tui.WithLogger(s.logger.Logger),
		tui.WithPageSize(ui.PageSize),
		tui.WithRequestTimeout(s.cfg.Project.API.Timeout),
	)
	s.logger.Info("tui_started", "base_url", s.cfg.Project.API.BaseURL, "page_size", ui.PageSize)

	// tea.WithAltScreen uses the alternate screen buffer (like vim does)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
