// Package config loads and saves examdiff configuration files.
//
// Configuration is YAML, searched in order as an explicit path, a
// .examdiff.yaml in the working directory, then the per-user file
// under os.UserConfigDir. Missing files fall back to defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gwaghmar/examdiff/dircmp"
	"github.com/gwaghmar/examdiff/libdiff"
	"github.com/gwaghmar/examdiff/merge3"

	"github.com/goccy/go-yaml"
)

const (
	// LocalName is the per-directory config file name.
	LocalName = ".examdiff.yaml"
	appDir    = "examdiff"
	fileName  = "config.yaml"
)

type Config struct {
	Diff  DiffConfig  `json:"diff,omitempty"`
	Dir   DirConfig   `json:"dir,omitempty"`
	Merge MergeConfig `json:"merge,omitempty"`
}

type DiffConfig struct {
	IgnoreCase       bool     `json:"ignoreCase,omitempty"`
	IgnoreWhitespace bool     `json:"ignoreWhitespace,omitempty"`
	IgnoreBlankLines bool     `json:"ignoreBlankLines,omitempty"`
	IgnoreComments   bool     `json:"ignoreComments,omitempty"`
	CommentPatterns  []string `json:"commentPatterns,omitempty"`
	IgnorePatterns   []string `json:"ignorePatterns,omitempty"`
	Context          int      `json:"context,omitempty"`
	// LargeFileLimit caps line diffing by input size in bytes. Larger
	// inputs are compared byte-wise. Zero means no cap.
	LargeFileLimit int64 `json:"largeFileLimit,omitempty"`
}

type DirConfig struct {
	Mode         string   `json:"mode,omitempty"`
	Recursive    bool     `json:"recursive,omitempty"`
	Include      []string `json:"include,omitempty"`
	Exclude      []string `json:"exclude,omitempty"`
	Filter       string   `json:"filter,omitempty"`
	IgnoreHidden bool     `json:"ignoreHidden,omitempty"`
	Workers      int      `json:"workers,omitempty"`
}

type MergeConfig struct {
	YoursLabel  string `json:"yoursLabel,omitempty"`
	TheirsLabel string `json:"theirsLabel,omitempty"`
}

// Default is the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Diff: DiffConfig{Context: libdiff.DefaultContext},
		Dir:  DirConfig{Mode: "content", Recursive: true},
	}
}

// DiffOptions maps the diff section onto libdiff options.
func (c *Config) DiffOptions() *libdiff.Options {
	return &libdiff.Options{
		IgnoreCase:       c.Diff.IgnoreCase,
		IgnoreWhitespace: c.Diff.IgnoreWhitespace,
		IgnoreBlankLines: c.Diff.IgnoreBlankLines,
		IgnoreComments:   c.Diff.IgnoreComments,
		CommentPatterns:  c.Diff.CommentPatterns,
		IgnorePatterns:   c.Diff.IgnorePatterns,
		Context:          c.Diff.Context,
	}
}

// DirOptions maps the dir section onto dircmp options.
func (c *Config) DirOptions() (*dircmp.Options, error) {
	mode, err := ParseMode(c.Dir.Mode)
	if err != nil {
		return nil, err
	}
	return &dircmp.Options{
		Mode:         mode,
		Recursive:    c.Dir.Recursive,
		Include:      c.Dir.Include,
		Exclude:      c.Dir.Exclude,
		Filter:       c.Dir.Filter,
		IgnoreHidden: c.Dir.IgnoreHidden,
		Workers:      c.Dir.Workers,
		Diff:         c.DiffOptions(),
	}, nil
}

// MergeOptions maps the merge section onto merge3 options.
func (c *Config) MergeOptions() *merge3.Options {
	return &merge3.Options{
		Diff:        c.DiffOptions(),
		YoursLabel:  c.Merge.YoursLabel,
		TheirsLabel: c.Merge.TheirsLabel,
	}
}

// ParseMode parses a dir comparison mode name. Empty means content.
func ParseMode(s string) (dircmp.Mode, error) {
	switch s {
	case "", "content":
		return dircmp.ModeContent, nil
	case "size":
		return dircmp.ModeSize, nil
	case "timestamp":
		return dircmp.ModeTimestamp, nil
	case "hash":
		return dircmp.ModeHash, nil
	}
	return 0, fmt.Errorf("%w: unknown mode %q", dircmp.ErrInvalidOptions, s)
}

// DefaultPath is the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads one config file.
func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	c := Default()
	if err := yaml.Unmarshal(d, c); err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", path, err)
	}
	return c, nil
}

// Open resolves the effective configuration. With an explicit path the
// file must exist; otherwise the candidates are tried in order and a
// missing file is not an error.
func Open(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	candidates := []string{LocalName}
	if p, err := DefaultPath(); err == nil {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		c, err := Load(p)
		if err == nil {
			return c, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return nil, err
	}
	return Default(), nil
}

// Save writes the config, creating parent directories as needed.
func (c *Config) Save(path string) error {
	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, d, 0o644)
}
