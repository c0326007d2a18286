package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/loglens/internal/logging"
	"github.com/ccollicutt/loglens/pkg/parser"
)

var (
	// ErrPathNotFound is returned when the log path does not exist.
	ErrPathNotFound = errors.New("specified path does not exist")

	// ErrIsDirectory is returned when the log path is a directory.
	ErrIsDirectory = errors.New("specified path is a directory, expected a log file")
)

// Load reads a YAML configuration file on top of the defaults and applies
// environment overrides. The result is not validated; callers overlay CLI
// flags first and then call Validate.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyEnvironmentOverrides()

	return cfg, nil
}

// Validate checks a configuration for errors.
//
// Time bounds that fail to parse are not errors: they make the filter
// reject every record. Use BoundWarnings to surface them.
func Validate(cfg *Config) error {
	if cfg.Threads < 1 {
		return fmt.Errorf("threads: must be >= 1, got %d", cfg.Threads)
	}

	switch cfg.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("output: invalid format %q (use text or json)", cfg.Output)
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	switch cfg.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log_format: invalid format %q (use text or json)", cfg.LogFormat)
	}

	return nil
}

// BoundWarnings returns a message for each time bound that will not parse.
func BoundWarnings(cfg *Config) []string {
	var warnings []string
	for _, b := range []struct {
		name  string
		value *string
	}{
		{"from", cfg.From},
		{"to", cfg.To},
	} {
		if b.value == nil {
			continue
		}
		if _, err := parser.ParseTimestamp(*b.value); err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"%s %q is not in YYYY-MM-DD HH:MM:SS format; no records will match", b.name, *b.value))
		}
	}
	return warnings
}

// ValidatePath checks that path exists and is not a directory.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("a log file path is required")
	}

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	return nil
}
