package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/staff-directory/internal/api"
	"github.com/kingrea/staff-directory/internal/config"
	"github.com/kingrea/staff-directory/internal/logging"
	"github.com/kingrea/staff-directory/internal/notify"
)

type rootOptions struct {
	dir        string
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "directory",
		Short:         "Browse and add employees in the staff directory",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Project directory (default: current directory)")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: <dir>/.directory/config.yaml)")
	cmd.AddCommand(
		newTUICmd(opts),
		newListCmd(opts),
		newCreateCmd(opts),
		newExportCmd(opts),
	)
	return cmd
}

// session is what every command needs once configuration is loaded.
type session struct {
	cfg    *config.Config
	logger *logging.Logger
}

func (s *session) Close() error {
	if s == nil {
		return nil
	}
	return s.logger.Close()
}

// openSession prepares the .directory folder and the log file. console
// receives warnings; pass nil when the TUI owns the terminal.
func openSession(opts *rootOptions, console io.Writer) (*session, error) {
	dir := strings.TrimSpace(opts.dir)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		dir = cwd
	}
	if err := config.InitProjectDir(dir); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", config.ProjectDirName, err)
	}
	cfg, err := config.NewConfig(dir, opts.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg, console)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger}, nil
}

// client builds an API client that reports failures to n.
func (s *session) client(n notify.Notifier) *api.Client {
	return api.New(api.Settings{
		BaseURL:   s.cfg.Project.API.BaseURL,
		Signature: s.cfg.Project.API.Signature,
		Timeout:   s.cfg.Project.API.Timeout,
	}, api.WithNotifier(n), api.WithLogger(s.logger.Logger))
}
