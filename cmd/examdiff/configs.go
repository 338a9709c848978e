package main

import (
	"context"
	"io"
	"os"

	"github.com/gwaghmar/examdiff/config"
	"github.com/gwaghmar/examdiff/libdiff"
	"github.com/gwaghmar/examdiff/report"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='force colored output'"`
	NoColor bool   `cli:"name=nocolor desc='disable colored output'"`
	Config  string `cli:"name=config desc='configuration file path'"`

	Ctx  context.Context
	Main *cli.Command
}

// colors picks the palette for w, probing for a terminal unless a
// color flag forces the choice.
func (cfg *MainConfig) colors(w io.Writer) *report.Colors {
	switch {
	case cfg.NoColor:
		return report.NoColors()
	case cfg.Color:
		return report.NewColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return report.NoColors()
	}
	if isatty.IsTerminal(f.Fd()) {
		return report.NewColors()
	}
	return report.NoColors()
}

func (cfg *MainConfig) load() (*config.Config, error) {
	return config.Open(cfg.Config)
}

type DiffConfig struct {
	*MainConfig
	IgnoreCase       bool `cli:"name=i aliases=ignore-case desc='ignore case differences'"`
	IgnoreWhitespace bool `cli:"name=w aliases=ignore-ws desc='ignore whitespace differences'"`
	IgnoreBlankLines bool `cli:"name=B aliases=ignore-blank desc='ignore blank line differences'"`
	IgnoreComments   bool `cli:"name=C aliases=ignore-comments desc='ignore comment differences'"`
	Context          int  `cli:"name=context desc='context lines around changes'"`
	Unified          bool `cli:"name=u desc='plain unified output'"`
	HTML             bool `cli:"name=html desc='side-by-side html output'"`
	Watch            bool `cli:"name=watch desc='rerun when the inputs change'"`

	largeLimit int64

	Diff *cli.Command
}

// diffOpts overlays the command line flags onto the configured
// options.
func (cfg *DiffConfig) diffOpts(c *config.Config) *libdiff.Options {
	opts := c.DiffOptions()
	if cfg.IgnoreCase {
		opts.IgnoreCase = true
	}
	if cfg.IgnoreWhitespace {
		opts.IgnoreWhitespace = true
	}
	if cfg.IgnoreBlankLines {
		opts.IgnoreBlankLines = true
	}
	if cfg.IgnoreComments {
		opts.IgnoreComments = true
	}
	if cfg.Context != 0 {
		opts.Context = cfg.Context
	}
	return opts
}

type MergeConfig struct {
	*MainConfig
	Out         string `cli:"name=o desc='output file (default stdout)'"`
	YoursLabel  string `cli:"name=yours desc='label for the first side'"`
	TheirsLabel string `cli:"name=theirs desc='label for the second side'"`

	Merge *cli.Command
}

type DirConfig struct {
	*MainConfig
	Recursive    bool   `cli:"name=r aliases=recursive desc='descend into subdirectories'"`
	Mode         string `cli:"name=mode desc='compare mode: content, size, timestamp, hash'"`
	Filter       string `cli:"name=filter desc='file filter expression'"`
	IgnoreHidden bool   `cli:"name=H aliases=ignore-hidden desc='skip dot files'"`
	ChangedOnly  bool   `cli:"name=changed desc='list changed entries only'"`
	Workers      int    `cli:"name=workers desc='concurrent file comparisons'"`

	Include []string
	Exclude []string

	Dir *cli.Command
}
