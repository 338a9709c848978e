package dircmp

import (
	"errors"
	"fmt"
	"time"

	"github.com/gwaghmar/examdiff/libdiff"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/gobwas/glob"
)

// ErrInvalidOptions wraps any option rejected by New.
var ErrInvalidOptions = errors.New("invalid options")

// Mode selects how paired files are compared.
type Mode int

const (
	// ModeContent compares file contents byte for byte, or line by
	// line under the configured diff options.
	ModeContent Mode = iota
	// ModeSize compares file sizes only.
	ModeSize
	// ModeTimestamp compares modification times within Tolerance.
	ModeTimestamp
	// ModeHash compares sha256 digests of the contents.
	ModeHash
)

func (m Mode) String() string {
	switch m {
	case ModeContent:
		return "content"
	case ModeSize:
		return "size"
	case ModeTimestamp:
		return "timestamp"
	case ModeHash:
		return "hash"
	}
	return "unknown"
}

// DefaultTolerance is the modification time slack for ModeTimestamp.
// Filesystems round timestamps differently, FAT to 2s granularity.
const DefaultTolerance = time.Second

// Options configure a Comparator. The zero value compares contents,
// non-recursively, with one worker per CPU.
type Options struct {
	Mode      Mode
	Recursive bool

	// Include and Exclude are glob patterns matched against the
	// slash-separated path relative to the roots. When Include is
	// non-empty, only matching files are compared. Exclude prunes
	// files and whole directories.
	Include []string
	Exclude []string

	// Filter is a boolean expression evaluated per file with the
	// variables name, path, ext, size, left and right. Files for
	// which it yields false are omitted.
	Filter string

	// IgnoreHidden skips entries whose name starts with a dot.
	IgnoreHidden bool

	// Workers bounds concurrent file comparisons. Zero means
	// runtime.NumCPU.
	Workers int

	// Tolerance is the timestamp slack for ModeTimestamp.
	// Zero means DefaultTolerance.
	Tolerance time.Duration

	// Diff, when set, makes ModeContent compare text files under
	// these normalization options instead of byte equality. Binary
	// files are always compared byte for byte.
	Diff *libdiff.Options
}

// Comparator is a compiled, reusable directory comparison.
type Comparator struct {
	opts    Options
	include []glob.Glob
	exclude []glob.Glob
	filter  *vm.Program
}

// New compiles the options. Glob and filter syntax errors are reported
// wrapped in ErrInvalidOptions.
func New(opts *Options) (*Comparator, error) {
	c := &Comparator{}
	if opts != nil {
		c.opts = *opts
	}
	if c.opts.Mode < ModeContent || c.opts.Mode > ModeHash {
		return nil, fmt.Errorf("%w: unknown mode %d", ErrInvalidOptions, c.opts.Mode)
	}
	if c.opts.Workers < 0 {
		return nil, fmt.Errorf("%w: negative workers %d", ErrInvalidOptions, c.opts.Workers)
	}
	if c.opts.Tolerance == 0 {
		c.opts.Tolerance = DefaultTolerance
	}
	var err error
	if c.include, err = compileGlobs(c.opts.Include); err != nil {
		return nil, err
	}
	if c.exclude, err = compileGlobs(c.opts.Exclude); err != nil {
		return nil, err
	}
	if c.opts.Filter != "" {
		c.filter, err = expr.Compile(c.opts.Filter, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w: filter %q: %v", ErrInvalidOptions, c.opts.Filter, err)
		}
	}
	return c, nil
}

func compileGlobs(pats []string) ([]glob.Glob, error) {
	if len(pats) == 0 {
		return nil, nil
	}
	gs := make([]glob.Glob, len(pats))
	for i, p := range pats {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: glob %q: %v", ErrInvalidOptions, p, err)
		}
		gs[i] = g
	}
	return gs, nil
}

func matchAny(gs []glob.Glob, path string) bool {
	for _, g := range gs {
		if g.Match(path) {
			return true
		}
	}
	return false
}
