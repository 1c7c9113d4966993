package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ConfigPath is read when no --config flag is given.
const ConfigPath = "config.yaml"

// FileConfig represents configuration loaded from YAML.
type FileConfig struct {
	DatabasePath string `yaml:"databasePath"`
	RosterPath   string `yaml:"rosterPath"`
	LogLevel     string `yaml:"logLevel"`
	LogFormat    string `yaml:"logFormat"`
	AuditStdout  bool   `yaml:"auditStdout"`
}

// Default is used for any field the file and environment leave empty.
func Default() FileConfig {
	return FileConfig{
		DatabasePath: "lab.db",
		RosterPath:   "roster.yaml",
		LogLevel:     "info",
		LogFormat:    "auto",
		AuditStdout:  true,
	}
}

// Load reads config from path (defaults to config.yaml). A missing file is not an error.
func Load(path string) (FileConfig, error) {
	cfg := Default()
	if path == "" {
		path = ConfigPath
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}
	// Override with environment variables
	if v := os.Getenv("LABCHECKOUT_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("LABCHECKOUT_ROSTER"); v != "" {
		cfg.RosterPath = v
	}
	if v := os.Getenv("LABCHECKOUT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LABCHECKOUT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("LABCHECKOUT_AUDIT_STDOUT"); v != "" {
		cfg.AuditStdout = v == "true" || v == "1"
	}
	if err := validateConfig(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validateConfig(cfg FileConfig) error {
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		return errors.New("config: databasePath is required")
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	switch cfg.LogFormat {
	case "auto", "json", "text":
	default:
		return fmt.Errorf("config: logFormat must be auto, json or text, got %q", cfg.LogFormat)
	}
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("config: unknown logLevel %q", level)
}

// InitLogger builds the process logger on stderr and installs it as the slog default.
// Format "auto" picks text on a terminal and JSON otherwise.
func InitLogger(level, format string) *slog.Logger {
	return initLogger(os.Stderr, level, format, term.IsTerminal(int(os.Stderr.Fd())))
}

func initLogger(w io.Writer, level, format string, tty bool) *slog.Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if format == "text" || (format == "auto" && tty) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
