package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeToml(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "nlc.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing nlc.toml: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[project]
name = "demo"

[contracts]
Port = "Number"

[check]
report_format = "json"
color = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ProjectName != "demo" {
		t.Fatalf("expected project name demo, got %q", cfg.ProjectName)
	}
	if cfg.Contracts["Port"] != "Number" {
		t.Fatalf("expected contracts.Port = Number, got %q", cfg.Contracts["Port"])
	}
	if cfg.ReportFormat != FormatJSON {
		t.Fatalf("expected report format json, got %q", cfg.ReportFormat)
	}
	if cfg.Color {
		t.Fatalf("expected color disabled")
	}
}

func TestLoadDefaultsWhenCheckSectionAbsent(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[project]
name = "demo"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ReportFormat != FormatText {
		t.Fatalf("expected default report format text, got %q", cfg.ReportFormat)
	}
	if !cfg.Color {
		t.Fatalf("expected color to default to enabled")
	}
}

func TestLoadRejectsMissingProjectName(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[project]
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for a missing [project].name")
	}
}

func TestLoadRejectsUnknownReportFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeToml(t, dir, `
[project]
name = "demo"

[check]
report_format = "xml"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected an error for an unsupported report format")
	}
}

func TestFindNlcTomlWalksUpDirectories(t *testing.T) {
	root := t.TempDir()
	writeToml(t, root, `
[project]
name = "demo"
`)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok, err := FindNlcToml(nested)
	if err != nil || !ok {
		t.Fatalf("expected to find nlc.toml, ok=%v err=%v", ok, err)
	}
	want := filepath.Join(root, "nlc.toml")
	if path != want {
		t.Fatalf("expected %s, got %s", want, path)
	}
}

func TestFindNlcTomlReturnsNotFound(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := FindNlcToml(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no nlc.toml to be found in an empty directory tree")
	}
}
