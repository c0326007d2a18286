// Package config provides configuration loading and validation for LogLens.
package config

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the settings for one analysis run. It can be loaded from a
// YAML file and is then overlaid by environment variables and CLI flags.
type Config struct {
	// Path is the log file to analyze. It is never read from YAML.
	Path string `yaml:"-"`

	// Pattern, when set, is a substring every message must contain.
	Pattern *string `yaml:"pattern,omitempty"`

	// From and To bound an inclusive time range (YYYY-MM-DD HH:MM:SS).
	From *string `yaml:"from,omitempty"`
	To   *string `yaml:"to,omitempty"`

	// Threads is the number of filter workers.
	Threads int `yaml:"threads,omitempty"`

	// Output is the report format (text|json).
	Output string `yaml:"output,omitempty"`

	// Progress enables the ingestion progress bar.
	Progress bool `yaml:"progress"`

	// LogLevel and LogFormat configure diagnostic logging on stderr.
	LogLevel  string `yaml:"log_level,omitempty"`
	LogFormat string `yaml:"log_format,omitempty"`
}
