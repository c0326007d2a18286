package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ccollicutt/loglens/pkg/config"
	"github.com/ccollicutt/loglens/pkg/output"
	"github.com/spf13/cobra"
)

const twoLineLog = "2025-02-11 10:00:00 INFO Test message\n2025-02-11 10:01:00 ERROR Test error"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// runAnalyzeArgs executes the analyze command and returns stdout and stderr.
func runAnalyzeArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewAnalyzeCommand()
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	if !strings.HasPrefix(cmd.Use, "analyze") {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"file", "config", "pattern", "from", "to", "threads", "output", "no-progress", "verbose", "quiet"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}

	if got := cmd.Flags().Lookup("threads").DefValue; got != "4" {
		t.Errorf("threads default = %s, want 4", got)
	}
}

func TestRunAnalyze_NoFilters(t *testing.T) {
	logPath := writeFile(t, "app.log", twoLineLog)

	stdout, _, err := runAnalyzeArgs(t, "-f", logPath, "-t", "1")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	want := "Analysis complete\n\nAnalysis Results:\nTotal entries processed: 2\n\nLog Level Distribution:\nERROR: 1\nINFO: 1\n"
	if stdout != want {
		t.Errorf("stdout =\n%q\nwant\n%q", stdout, want)
	}
}

func TestRunAnalyze_Pattern(t *testing.T) {
	content := twoLineLog + "\n2025-02-11 10:02:00 WARN ERROR rate rising\n2025-02-11 10:03:00 INFO all good\n"
	logPath := writeFile(t, "app.log", content)

	stdout, _, err := runAnalyzeArgs(t, "-f", logPath, "--pattern", "ERROR", "-o", "json")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	var report output.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, stdout)
	}
	if report.Summary.TotalEntries != 1 {
		t.Errorf("TotalEntries = %d, want 1", report.Summary.TotalEntries)
	}
	if len(report.Summary.Levels) != 1 || report.Summary.Levels[0].Level != "WARN" {
		t.Errorf("Levels = %v, want only WARN", report.Summary.Levels)
	}
	if report.Metadata.RunID == "" {
		t.Error("RunID should be set")
	}
}

func TestRunAnalyze_TimeRange(t *testing.T) {
	logPath := writeFile(t, "app.log", twoLineLog)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"exact timestamp", []string{"--from", "2025-02-11 10:01:00", "--to", "2025-02-11 10:01:00"}, "Total entries processed: 1\n"},
		{"from only", []string{"--from", "2025-02-11 10:00:30"}, "Total entries processed: 1\n"},
		{"to only", []string{"--to", "2025-02-11 10:01:00"}, "Total entries processed: 2\n"},
		{"unparseable from", []string{"--from", "yesterday"}, "Total entries processed: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-f", logPath, "-q"}, tt.args...)
			stdout, _, err := runAnalyzeArgs(t, args...)
			if err != nil {
				t.Fatalf("analyze error = %v", err)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestRunAnalyze_UnparseableBoundWarns(t *testing.T) {
	logPath := writeFile(t, "app.log", twoLineLog)

	_, stderr, err := runAnalyzeArgs(t, "-f", logPath, "-q", "--to", "soon")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if !strings.Contains(stderr, "level=WARN") || !strings.Contains(stderr, "soon") {
		t.Errorf("stderr missing bound warning:\n%s", stderr)
	}
}

func TestRunAnalyze_SkipsMalformedLines(t *testing.T) {
	content := "invalid log entry format\n2025-02-11 10:15:30\n" + twoLineLog
	logPath := writeFile(t, "app.log", content)

	stdout, _, err := runAnalyzeArgs(t, "-f", logPath, "-q")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	if stdout != "Total entries processed: 2\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunAnalyze_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.log")

	stdout, _, err := runAnalyzeArgs(t, "-f", missing)
	if !errors.Is(err, config.ErrPathNotFound) {
		t.Errorf("error = %v, want ErrPathNotFound", err)
	}
	if stdout != "" {
		t.Errorf("no output expected on error, got %q", stdout)
	}
}

func TestRunAnalyze_Directory(t *testing.T) {
	_, _, err := runAnalyzeArgs(t, "-f", t.TempDir())
	if !errors.Is(err, config.ErrIsDirectory) {
		t.Errorf("error = %v, want ErrIsDirectory", err)
	}
}

func TestRunAnalyze_FileFlagRequired(t *testing.T) {
	if _, _, err := runAnalyzeArgs(t); err == nil {
		t.Error("expected error when --file is missing")
	}
}

func TestRunAnalyze_InvalidThreads(t *testing.T) {
	logPath := writeFile(t, "app.log", twoLineLog)

	_, _, err := runAnalyzeArgs(t, "-f", logPath, "--threads", "0")
	if err == nil || !strings.Contains(err.Error(), "threads") {
		t.Errorf("error = %v, want threads validation error", err)
	}
}

func TestRunAnalyze_InvalidOutput(t *testing.T) {
	logPath := writeFile(t, "app.log", twoLineLog)

	if _, _, err := runAnalyzeArgs(t, "-f", logPath, "-o", "xml"); err == nil {
		t.Error("expected error for unknown output format")
	}
}

func TestRunAnalyze_ConfigFileAndFlagPrecedence(t *testing.T) {
	logPath := writeFile(t, "app.log", twoLineLog)
	cfgPath := writeFile(t, "loglens.yaml", "pattern: message\nthreads: 2\noutput: json\n")

	// The config file selects JSON and pattern "message"; the flag overrides pattern.
	stdout, _, err := runAnalyzeArgs(t, "-f", logPath, "-c", cfgPath, "-p", "error")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}

	var report output.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if report.Summary.TotalEntries != 1 || report.Summary.Levels[0].Level != "ERROR" {
		t.Errorf("Summary = %+v, want one ERROR", report.Summary)
	}
	if report.Metadata.Threads != 2 {
		t.Errorf("Threads = %d, want 2 from config file", report.Metadata.Threads)
	}
}

func TestRunAnalyze_Verbose(t *testing.T) {
	logPath := writeFile(t, "app.log", twoLineLog)

	stdout, _, err := runAnalyzeArgs(t, "-f", logPath, "-v", "-p", "Test")
	if err != nil {
		t.Fatalf("analyze error = %v", err)
	}
	for _, want := range []string{"Source:   " + logPath, `pattern="Test"`, "Run ID:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	if !strings.Contains(cmd.Long, "Validate") {
		t.Error("Missing description in Long")
	}
}

func TestRunValidate_Success(t *testing.T) {
	cfgPath := writeFile(t, "loglens.yaml", "pattern: ERROR\nfrom: \"2025-02-11 00:00:00\"\nthreads: 2\n")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{cfgPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Configuration valid!", `Pattern:  "ERROR"`, "To:       (not set)", "Threads:  2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Warning") {
		t.Errorf("unexpected warning:\n%s", out)
	}
}

func TestRunValidate_BoundWarning(t *testing.T) {
	cfgPath := writeFile(t, "loglens.yaml", "to: next week\n")

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{cfgPath})
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Warning: to \"next week\"") {
		t.Errorf("output missing bound warning:\n%s", buf.String())
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid yaml", "invalid: yaml: content"},
		{"zero threads", "threads: -1\n"},
		{"bad output", "output: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := writeFile(t, "bad.yaml", tt.content)
			cmd := NewValidateCommand()
			cmd.SetArgs([]string{cfgPath})
			cmd.SetOut(&bytes.Buffer{})

			if err := cmd.ExecuteContext(context.Background()); err == nil {
				t.Error("Expected error for invalid config")
			}
		})
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	cmd := NewValidateCommand()
	cmd.SetArgs([]string{"/nonexistent/loglens.yaml"})
	cmd.SetOut(&bytes.Buffer{})

	if err := cmd.ExecuteContext(context.Background()); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestCommandErrors_NoUsageOutput(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name string
		cmd  *cobra.Command
		args []string
	}{
		{"analyze missing log", NewAnalyzeCommand(), []string{"-f", missing + ".log"}},
		{"validate missing config", NewValidateCommand(), []string{missing + ".yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			tt.cmd.SetArgs(tt.args)
			tt.cmd.SetOut(&stdout)
			tt.cmd.SetErr(&stderr)

			if err := tt.cmd.ExecuteContext(context.Background()); err == nil {
				t.Fatal("expected error")
			}
			if strings.Contains(stdout.String()+stderr.String(), "Usage:") {
				t.Errorf("usage printed on error:\nstdout: %q\nstderr: %q", stdout.String(), stderr.String())
			}
			if stderr.String() != "" {
				t.Errorf("stderr = %q, want empty", stderr.String())
			}
		})
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if buf.String() != "loglens dev\n" {
		t.Errorf("output = %q, want %q", buf.String(), "loglens dev\n")
	}
}
