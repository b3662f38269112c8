// Package config loads nlc.toml, the project file naming a set of
// contract aliases and the default diagnostic settings for `nlc
// check`.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ReportFormat is the serialization nlc writes a check report in.
type ReportFormat string

const (
	FormatText    ReportFormat = "text"
	FormatJSON    ReportFormat = "json"
	FormatMsgpack ReportFormat = "msgpack"
)

type projectSection struct {
	Name string `toml:"name"`
}

type checkSection struct {
	ReportFormat string `toml:"report_format"`
	Color        bool   `toml:"color"`
}

type fileConfig struct {
	Project   projectSection    `toml:"project"`
	Contracts map[string]string `toml:"contracts"`
	Check     checkSection      `toml:"check"`
}

// Config is the parsed, validated contents of an nlc.toml file.
type Config struct {
	Path string
	Root string

	ProjectName  string
	Contracts    map[string]string // alias -> cexpr source
	ReportFormat ReportFormat
	Color        bool
}

// FindNlcToml walks up from startDir looking for nlc.toml, the same
// way the teacher's project.FindSurgeToml locates surge.toml.
func FindNlcToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "nlc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses and validates the nlc.toml file at path.
func Load(path string) (*Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(raw.Project.Name) == "" {
		return nil, fmt.Errorf("%s: missing [project].name", path)
	}

	format := ReportFormat(strings.TrimSpace(raw.Check.ReportFormat))
	if format == "" {
		format = FormatText
	}
	switch format {
	case FormatText, FormatJSON, FormatMsgpack:
	default:
		return nil, fmt.Errorf("%s: [check].report_format must be one of text, json, msgpack, got %q", path, format)
	}

	color := raw.Check.Color
	if !meta.IsDefined("check", "color") {
		color = true
	}

	contracts := raw.Contracts
	if contracts == nil {
		contracts = map[string]string{}
	}
	for alias, src := range contracts {
		if strings.TrimSpace(src) == "" {
			return nil, fmt.Errorf("%s: [contracts].%s has an empty expression", path, alias)
		}
	}

	return &Config{
		Path:         path,
		Root:         filepath.Dir(path),
		ProjectName:  raw.Project.Name,
		Contracts:    contracts,
		ReportFormat: format,
		Color:        color,
	}, nil
}

// Discover locates and loads the nearest nlc.toml above startDir. ok
// is false (with a nil error) when no nlc.toml is found; callers fall
// back to built-in defaults in that case.
func Discover(startDir string) (cfg *Config, ok bool, err error) {
	path, found, err := FindNlcToml(startDir)
	if err != nil || !found {
		return nil, found, err
	}
	cfg, err = Load(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}
