// internal/config/config.go
//
// This package handles configuration and the .directory folder structure.
// Every project that runs the directory client gets a .directory/ folder in
// its root holding config.yaml, logs and exports.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// ProjectDirName is the name of the directory we create in each project
	ProjectDirName = ".directory"

	// DefaultBaseURL is the employee endpoint used when nothing overrides it.
	DefaultBaseURL = "https://api.fairatmos.dev/api/v1/trial-test/frontend"
	// DefaultSignature is the shared secret sent with every request.
	DefaultSignature = "fairatmos-firman-ramadhan"

	defaultPageSize        = 5
	defaultNotificationTTL = 4 * time.Second
	defaultLogLevel        = "info"
	defaultLogMaxSizeMB    = 10
	defaultLogMaxBackups   = 3
	defaultLogMaxAgeDays   = 14
)

const defaultProjectConfigYAML = `# staff directory configuration
version: 1

# Employee endpoint. DIRECTORY_API_BASE and DIRECTORY_SIGNATURE override these.
api:
  base_url: https://api.fairatmos.dev/api/v1/trial-test/frontend
  signature: fairatmos-firman-ramadhan
  # 0s leaves requests unbounded.
  timeout: 0s

ui:
  page_size: 5
  notification_ttl: 4s

logging:
  level: info
  max_size_mb: 10
  max_backups: 3
  max_age_days: 14
`

// APIConfig describes the remote employee endpoint.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url" validate:"required,url"`
	Signature string        `yaml:"signature" validate:"required"`
	Timeout   time.Duration `yaml:"timeout" validate:"gte=0s"`
}

// UIConfig captures presentation preferences.
type UIConfig struct {
	PageSize        int           `yaml:"page_size" validate:"min=1,max=100"`
	NotificationTTL time.Duration `yaml:"notification_ttl" validate:"gte=0s"`
}

// LoggingConfig controls the rotating log file.
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"min=1"`
	MaxBackups int    `yaml:"max_backups" validate:"min=1"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"min=1"`
	Compress   bool   `yaml:"compress,omitempty"`
}

// ProjectConfig models .directory/config.yaml.
type ProjectConfig struct {
	Version int           `yaml:"version" validate:"min=1"`
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// Config holds the runtime configuration for the client.
type Config struct {
	// ProjectDir is the directory the client was started from
	ProjectDir string

	// DataDir is ProjectDir/.directory
	DataDir string

	// ConfigPath is the YAML file that was (or would be) read
	ConfigPath string

	Project ProjectConfig
}

// InitProjectDir creates the .directory structure in the given project directory.
//
// Structure created:
// .directory/
// ├── config.yaml
// ├── logs/      <- rotating client log
// └── exports/   <- default target for workbook exports
func InitProjectDir(projectDir string) error {
	dataDir := filepath.Join(projectDir, ProjectDirName)
	dirs := []string{
		filepath.Join(dataDir, "logs"),
		filepath.Join(dataDir, "exports"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: ensure %s: %w", dir, err)
		}
	}
	return ensureProjectConfig(filepath.Join(dataDir, "config.yaml"))
}

// NewConfig loads .env, the project config file and environment overrides.
// configPath may be empty to use .directory/config.yaml.
func NewConfig(projectDir, configPath string) (*Config, error) {
	dataDir := filepath.Join(projectDir, ProjectDirName)
	if strings.TrimSpace(configPath) == "" {
		configPath = filepath.Join(dataDir, "config.yaml")
	}
	if err := loadDotEnv(filepath.Join(projectDir, ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectDir: projectDir,
		DataDir:    dataDir,
		ConfigPath: configPath,
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// ExportsDir returns the default directory for workbook exports
func (c *Config) ExportsDir() string {
	return filepath.Join(c.DataDir, "exports")
}

func (c *Config) loadProjectConfig() error {
	parsed := defaultProjectConfig()
	data, err := os.ReadFile(c.ConfigPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return fmt.Errorf("config: parse %s: %w", c.ConfigPath, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("config: read %s: %w", c.ConfigPath, err)
	}

	parsed.applyDefaults()
	if err := parsed.applyEnvOverrides(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Signature: DefaultSignature,
		},
		UI: UIConfig{
			PageSize:        defaultPageSize,
			NotificationTTL: defaultNotificationTTL,
		},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.UI.PageSize == 0 {
		pc.UI.PageSize = defaultPageSize
	}
	if pc.UI.NotificationTTL == 0 {
		pc.UI.NotificationTTL = defaultNotificationTTL
	}
	if strings.TrimSpace(pc.Logging.Level) == "" {
		pc.Logging.Level = defaultLogLevel
	}
	if pc.Logging.MaxSizeMB == 0 {
		pc.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if pc.Logging.MaxBackups == 0 {
		pc.Logging.MaxBackups = defaultLogMaxBackups
	}
	if pc.Logging.MaxAgeDays == 0 {
		pc.Logging.MaxAgeDays = defaultLogMaxAgeDays
	}
}

func (pc *ProjectConfig) applyEnvOverrides() error {
	if base := strings.TrimSpace(os.Getenv("DIRECTORY_API_BASE")); base != "" {
		pc.API.BaseURL = base
	}
	if sig := strings.TrimSpace(os.Getenv("DIRECTORY_SIGNATURE")); sig != "" {
		pc.API.Signature = sig
	}
	if raw := strings.TrimSpace(os.Getenv("DIRECTORY_API_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("DIRECTORY_API_TIMEOUT %q is not a duration", raw)
		}
		pc.API.Timeout = d
	}
	if level := strings.TrimSpace(os.Getenv("DIRECTORY_LOG_LEVEL")); level != "" {
		pc.Logging.Level = level
	}
	if raw := strings.TrimSpace(os.Getenv("DIRECTORY_PAGE_SIZE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("DIRECTORY_PAGE_SIZE %q is not an integer", raw)
		}
		pc.UI.PageSize = n
	}
	return nil
}

func (pc *ProjectConfig) normalize() {
	pc.API.BaseURL = strings.TrimSpace(pc.API.BaseURL)
	pc.API.Signature = strings.TrimSpace(pc.API.Signature)
	level := strings.ToLower(strings.TrimSpace(pc.Logging.Level))
	if level == "warning" {
		level = "warn"
	}
	pc.Logging.Level = level
}

func (pc *ProjectConfig) validate() error {
	err := structValidator().Struct(pc)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// fieldMessage renders "api.base_url must be a valid URL" style messages,
// with the leading struct name stripped from the namespace.
func fieldMessage(fe validator.FieldError) string {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", path)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", path)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", path, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be >= %s", path, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be <= %s", path, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", path)
	}
}

func structValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
