package libdiff

import (
	"context"

	"github.com/gwaghmar/examdiff/debug"
	"github.com/gwaghmar/examdiff/myers"
)

// GroupKind classifies a display group within a diff result.
type GroupKind uint8

const (
	GroupEqual GroupKind = iota
	GroupInsert
	GroupDelete
	GroupReplace
)

func (k GroupKind) String() string {
	switch k {
	case GroupEqual:
		return "equal"
	case GroupInsert:
		return "insert"
	case GroupDelete:
		return "delete"
	case GroupReplace:
		return "replace"
	default:
		return "group(?)"
	}
}

// Group is a display-oriented run of lines. A Replace is one Delete
// immediately followed by one Insert, presented as a modification; it is
// not a distinct edit operation in the underlying script.
type Group struct {
	Kind      GroupKind
	FromStart int
	FromLen   int
	ToStart   int
	ToLen     int
	// Elided marks blank-only insert or delete runs under
	// IgnoreBlankLines. Elided groups render as context, never open a
	// hunk, and stay out of the stats.
	Elided bool
}

// Stats counts lines by outcome, after replace grouping.
type Stats struct {
	Added     int
	Removed   int
	Modified  int
	Unchanged int
}

// Result is the complete outcome of one two-text comparison. It is
// read-only after construction and owned by the caller.
type Result struct {
	From   []Line
	To     []Line
	Edits  []myers.Edit // raw line-level script
	Groups []Group      // replace-coalesced display groups
	Hunks  []Hunk
	Stats  Stats
}

// Diff compares two texts under opts. A nil opts selects DefaultOptions.
// It fails only when opts carries a pattern that does not compile.
func Diff(from, to string, opts *Options) (*Result, error) {
	return DiffContext(context.Background(), from, to, opts)
}

// DiffContext is Diff with cooperative cancellation.
func DiffContext(ctx context.Context, from, to string, opts *Options) (*Result, error) {
	return DiffLines(ctx, SplitLines(from), SplitLines(to), opts)
}

// DiffLines compares two already-split line slices.
func DiffLines(ctx context.Context, from, to []Line, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	nz, err := opts.compile()
	if err != nil {
		return nil, err
	}

	fromToks := make([]string, len(from))
	for i, l := range from {
		fromToks[i] = nz.normalize(l.Text)
	}
	toToks := make([]string, len(to))
	for i, l := range to {
		toToks[i] = nz.normalize(l.Text)
	}
	if opts.IgnoreBlankLines {
		// blank lines compare equal to each other no matter their content
		for i, l := range from {
			if blank(l.Text) {
				fromToks[i] = ""
			}
		}
		for i, l := range to {
			if blank(l.Text) {
				toToks[i] = ""
			}
		}
	}

	edits, err := myers.DiffContext(ctx, fromToks, toToks, &myers.Options{
		LinearSpaceLimit: opts.LinearSpaceLimit,
	})
	if err != nil {
		return nil, err
	}
	if debug.Myers() {
		debug.Logf("libdiff: %d x %d lines, %d edit runs\n", len(from), len(to), len(edits))
	}

	res := &Result{From: from, To: to, Edits: edits}
	res.Groups = buildGroups(edits, from, to, opts.IgnoreBlankLines)
	res.Hunks = buildHunks(res.Groups, opts.Context)
	res.Stats = buildStats(res.Groups)
	return res, nil
}

// buildGroups coalesces each Delete immediately followed by an Insert into
// a Replace group and flags blank-only runs for elision.
func buildGroups(edits []myers.Edit, from, to []Line, elideBlank bool) []Group {
	allBlank := func(lines []Line, start, n int) bool {
		if !elideBlank {
			return false
		}
		for i := start; i < start+n; i++ {
			if !blank(lines[i].Text) {
				return false
			}
		}
		return true
	}

	var groups []Group
	for i := 0; i < len(edits); i++ {
		e := edits[i]
		switch e.Kind {
		case myers.Equal:
			groups = append(groups, Group{
				Kind:      GroupEqual,
				FromStart: e.FromStart, FromLen: e.FromLen,
				ToStart: e.ToStart, ToLen: e.ToLen,
			})
		case myers.Delete:
			delElided := allBlank(from, e.FromStart, e.FromLen)
			if i+1 < len(edits) && edits[i+1].Kind == myers.Insert {
				ins := edits[i+1]
				insElided := allBlank(to, ins.ToStart, ins.ToLen)
				if !delElided && !insElided {
					groups = append(groups, Group{
						Kind:      GroupReplace,
						FromStart: e.FromStart, FromLen: e.FromLen,
						ToStart: ins.ToStart, ToLen: ins.ToLen,
					})
					i++
					continue
				}
				groups = append(groups,
					Group{
						Kind:      GroupDelete,
						FromStart: e.FromStart, FromLen: e.FromLen,
						ToStart: e.ToStart,
						Elided:  delElided,
					},
					Group{
						Kind:      GroupInsert,
						FromStart: ins.FromStart,
						ToStart:   ins.ToStart, ToLen: ins.ToLen,
						Elided: insElided,
					})
				i++
				continue
			}
			groups = append(groups, Group{
				Kind:      GroupDelete,
				FromStart: e.FromStart, FromLen: e.FromLen,
				ToStart: e.ToStart,
				Elided:  delElided,
			})
		case myers.Insert:
			groups = append(groups, Group{
				Kind:      GroupInsert,
				FromStart: e.FromStart,
				ToStart:   e.ToStart, ToLen: e.ToLen,
				Elided: allBlank(to, e.ToStart, e.ToLen),
			})
		}
	}
	return groups
}

func buildStats(groups []Group) Stats {
	var st Stats
	for _, g := range groups {
		switch {
		case g.Kind == GroupEqual:
			st.Unchanged += g.FromLen
		case g.Elided:
			st.Unchanged += max(g.FromLen, g.ToLen)
		case g.Kind == GroupInsert:
			st.Added += g.ToLen
		case g.Kind == GroupDelete:
			st.Removed += g.FromLen
		case g.Kind == GroupReplace:
			st.Modified += max(g.FromLen, g.ToLen)
		}
	}
	return st
}
