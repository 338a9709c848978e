package merge3

import (
	"context"
	"slices"
	"strings"

	"github.com/gwaghmar/examdiff/debug"
	"github.com/gwaghmar/examdiff/libdiff"
	"github.com/gwaghmar/examdiff/myers"
)

// Conflict marker delimiters, matching the conventional merge format.
const (
	MarkerYours  = "<<<<<<<"
	MarkerSplit  = "======="
	MarkerTheirs = ">>>>>>>"
)

// Options tune a merge. The zero value uses default diff options and the
// labels "yours" and "theirs".
type Options struct {
	// Diff options applied to both base-relative comparisons.
	Diff *libdiff.Options
	// Labels appended to the conflict markers.
	YoursLabel  string
	TheirsLabel string
}

func (o *Options) labels() (string, string) {
	y, t := "yours", "theirs"
	if o != nil && o.YoursLabel != "" {
		y = o.YoursLabel
	}
	if o != nil && o.TheirsLabel != "" {
		t = o.TheirsLabel
	}
	return y, t
}

// Conflict is a contiguous base region independently and differently
// modified by both sides. Both candidate contents are preserved verbatim.
type Conflict struct {
	BaseStart int // base line range [BaseStart, BaseEnd)
	BaseEnd   int
	Base      []string
	Yours     []string
	Theirs    []string
}

// Result is a completed merge. Merged holds the output lines in base
// order, with conflict regions rendered as marker blocks.
type Result struct {
	Merged    []string
	Conflicts []Conflict
}

func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Text renders the merged lines as a newline-terminated text.
func (r *Result) Text() string {
	if len(r.Merged) == 0 {
		return ""
	}
	return strings.Join(r.Merged, "\n") + "\n"
}

// Merge three-way merges two texts against their common base.
func Merge(base, yours, theirs string, opts *Options) (*Result, error) {
	return MergeLines(context.Background(),
		libdiff.Texts(libdiff.SplitLines(base)),
		libdiff.Texts(libdiff.SplitLines(yours)),
		libdiff.Texts(libdiff.SplitLines(theirs)),
		opts)
}

// MergeLines merges already-split line slices.
func MergeLines(ctx context.Context, base, yours, theirs []string, opts *Options) (*Result, error) {
	var dopts *libdiff.Options
	if opts != nil {
		dopts = opts.Diff
	}
	yoursDiff, err := libdiff.DiffLines(ctx, libdiff.FromTexts(base), libdiff.FromTexts(yours), dopts)
	if err != nil {
		return nil, err
	}
	theirsDiff, err := libdiff.DiffLines(ctx, libdiff.FromTexts(base), libdiff.FromTexts(theirs), dopts)
	if err != nil {
		return nil, err
	}
	yl, tl := opts.labels()
	ys, ts := sideChunks(yoursDiff), sideChunks(theirsDiff)
	if debug.Merge() {
		debug.Logf("merge3: %d base lines, %d yours chunks, %d theirs chunks\n",
			len(base), len(ys), len(ts))
	}
	return mergeChunks(base, ys, ts, yl, tl), nil
}

// chunk is one side's change to a base region: the lines replacing
// base[start:end]. Insertions have start == end.
type chunk struct {
	start, end int
	lines      []string
}

// sideChunks extracts base-ordered change chunks from one base-relative
// diff. The canonical script orders each change block delete-then-insert,
// so a delete directly followed by an insert is one replacement chunk.
func sideChunks(res *libdiff.Result) []chunk {
	var cs []chunk
	edits := res.Edits
	for i := 0; i < len(edits); i++ {
		e := edits[i]
		switch e.Kind {
		case myers.Delete:
			c := chunk{start: e.FromStart, end: e.FromStart + e.FromLen}
			if i+1 < len(edits) && edits[i+1].Kind == myers.Insert {
				ins := edits[i+1]
				c.lines = lineTexts(res.To, ins.ToStart, ins.ToLen)
				i++
			}
			cs = append(cs, c)
		case myers.Insert:
			cs = append(cs, chunk{
				start: e.FromStart,
				end:   e.FromStart,
				lines: lineTexts(res.To, e.ToStart, e.ToLen),
			})
		}
	}
	return cs
}

func lineTexts(lines []libdiff.Line, start, n int) []string {
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = lines[start+i].Text
	}
	return out
}

// overlaps reports whether two base ranges collide. Two insertions collide
// only at the same point; an insertion collides with a span only strictly
// inside it, so edits that merely touch stay independent.
func overlaps(al, ah, bl, bh int) bool {
	switch {
	case al == ah && bl == bh:
		return al == bl
	case al == ah:
		return bl < al && al < bh
	case bl == bh:
		return al < bl && bl < ah
	default:
		return al < bh && bl < ah
	}
}

func mergeChunks(base []string, ys, ts []chunk, yoursLabel, theirsLabel string) *Result {
	res := &Result{}
	pos := 0
	i, j := 0, 0
	for i < len(ys) || j < len(ts) {
		// next chunk in base order; an insertion at the same point as a
		// span goes first so its lines land before the span's content
		var c chunk
		fromYours := false
		switch {
		case j >= len(ts):
			c, fromYours = ys[i], true
		case i >= len(ys):
			c = ts[j]
		case ys[i].start < ts[j].start:
			c, fromYours = ys[i], true
		case ts[j].start < ys[i].start:
			c = ts[j]
		case ts[j].start == ts[j].end && ys[i].start != ys[i].end:
			c = ts[j]
		default:
			c, fromYours = ys[i], true
		}

		lo, hi := c.start, c.end
		var gy, gt []chunk
		if fromYours {
			gy = append(gy, c)
			i++
		} else {
			gt = append(gt, c)
			j++
		}
		for {
			grew := false
			if i < len(ys) && overlaps(lo, hi, ys[i].start, ys[i].end) {
				lo, hi = min(lo, ys[i].start), max(hi, ys[i].end)
				gy = append(gy, ys[i])
				i++
				grew = true
			}
			if j < len(ts) && overlaps(lo, hi, ts[j].start, ts[j].end) {
				lo, hi = min(lo, ts[j].start), max(hi, ts[j].end)
				gt = append(gt, ts[j])
				j++
				grew = true
			}
			if !grew {
				break
			}
		}

		res.Merged = append(res.Merged, base[pos:lo]...)
		yours := applySide(base, lo, hi, gy)
		theirs := applySide(base, lo, hi, gt)
		switch {
		case len(gt) == 0:
			res.Merged = append(res.Merged, yours...)
		case len(gy) == 0:
			res.Merged = append(res.Merged, theirs...)
		case slices.Equal(yours, theirs):
			res.Merged = append(res.Merged, yours...)
		default:
			res.Conflicts = append(res.Conflicts, Conflict{
				BaseStart: lo,
				BaseEnd:   hi,
				Base:      slices.Clone(base[lo:hi]),
				Yours:     yours,
				Theirs:    theirs,
			})
			res.Merged = append(res.Merged, MarkerYours+" "+yoursLabel)
			res.Merged = append(res.Merged, yours...)
			res.Merged = append(res.Merged, MarkerSplit)
			res.Merged = append(res.Merged, theirs...)
			res.Merged = append(res.Merged, MarkerTheirs+" "+theirsLabel)
		}
		pos = hi
	}
	res.Merged = append(res.Merged, base[pos:]...)
	return res
}

// applySide rebuilds one side's content for base[lo:hi] from its chunks.
func applySide(base []string, lo, hi int, cs []chunk) []string {
	if len(cs) == 0 {
		return slices.Clone(base[lo:hi])
	}
	var out []string
	p := lo
	for _, c := range cs {
		out = append(out, base[p:c.start]...)
		out = append(out, c.lines...)
		if c.end > p {
			p = c.end
		}
	}
	return append(out, base[p:hi]...)
}
