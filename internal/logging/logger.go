package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/kingrea/staff-directory/internal/config"
)

// FileName is the log file inside .directory/logs.
const FileName = "directory.log"

// Logger owns the rotating log file behind a slog.Logger so users can
// inspect failures after the TUI has closed.
type Logger struct {
	*slog.Logger
	file *lumberjack.Logger
}

// New opens (or reuses) the project log file. When console is non-nil, records
// at warn and above are mirrored there in color.
func New(cfg *config.Config, console io.Writer) (*Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("logging: config is required")
	}
	logCfg := cfg.Project.Logging
	if err := os.MkdirAll(cfg.LogsDir(), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.LogsDir(), FileName),
		MaxSize:    logCfg.MaxSizeMB,
		MaxBackups: logCfg.MaxBackups,
		MaxAge:     logCfg.MaxAgeDays,
		Compress:   logCfg.Compress,
	}
	var handler slog.Handler = newHandler(file, ParseLevel(logCfg.Level), true)
	if console != nil {
		handler = fanout{handler, newHandler(console, slog.LevelWarn, false)}
	}
	return &Logger{Logger: slog.New(handler), file: file}, nil
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Path returns the active log file.
func (l *Logger) Path() string {
	if l == nil || l.file == nil {
		return ""
	}
	return l.file.Filename
}

func newHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	})
}

// ParseLevel maps config level names onto slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
