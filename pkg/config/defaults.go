package config

import (
	"os"
	"strconv"
)

// Default values for configuration.
const (
	DefaultThreads   = 4
	DefaultOutput    = OutputText
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Environment variable names.
const (
	EnvThreads  = "LOGLENS_THREADS"
	EnvOutput   = "LOGLENS_OUTPUT"
	EnvLogLevel = "LOGLENS_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Threads:   DefaultThreads,
		Output:    DefaultOutput,
		Progress:  true,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// ApplyEnvironmentOverrides applies environment variable overrides to the config.
// Malformed numeric values are left for Validate to report.
func (c *Config) ApplyEnvironmentOverrides() {
	if v := os.Getenv(EnvThreads); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			n = -1
		}
		c.Threads = n
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
