package myers

import (
	"context"
	"slices"
)

// DefaultLinearSpaceLimit is the default bound on len(from)*len(to) above
// which Diff switches to the linear-space divide-and-conquer search.
const DefaultLinearSpaceLimit = 1 << 20

// directSolveMax bounds len(from)+len(to) for the trace-based search, whose
// backtrack trace grows with the square of the edit distance. Larger inputs
// are split even when their length product is under the configured limit.
const directSolveMax = 1024

// Options tune Diff. The zero value selects defaults.
type Options struct {
	// LinearSpaceLimit is the len(from)*len(to) product above which the
	// linear-space variant is used. Zero selects DefaultLinearSpaceLimit.
	LinearSpaceLimit int
}

func (o *Options) limit() int {
	if o != nil && o.LinearSpaceLimit > 0 {
		return o.LinearSpaceLimit
	}
	return DefaultLinearSpaceLimit
}

// Diff returns a minimal edit script transforming from into to.
func Diff[T comparable](from, to []T) []Edit {
	edits, err := DiffContext(context.Background(), from, to, nil)
	if err != nil {
		// background context cannot be cancelled
		panic(err)
	}
	return edits
}

// DiffContext is Diff with cancellation and tuning. Cancellation is checked
// between divide-and-conquer steps; on cancellation the result is nil and
// ctx.Err() is returned, never a partial script.
func DiffContext[T comparable](ctx context.Context, from, to []T, opts *Options) ([]Edit, error) {
	b := &builder{}
	if disjoint(from, to) {
		b.emit(Delete, len(from))
		b.emit(Insert, len(to))
		return b.edits, nil
	}
	if err := diffRange(ctx, from, to, b, opts.limit()); err != nil {
		return nil, err
	}
	return normalize(b.edits), nil
}

// normalize orders every change block as Delete-then-Insert and re-merges
// runs, so the two search paths produce one canonical script.
func normalize(edits []Edit) []Edit {
	nb := &builder{}
	dels, ins := 0, 0
	flush := func() {
		nb.emit(Delete, dels)
		nb.emit(Insert, ins)
		dels, ins = 0, 0
	}
	for _, e := range edits {
		switch e.Kind {
		case Equal:
			flush()
			nb.emit(Equal, e.FromLen)
		case Delete:
			dels += e.FromLen
		case Insert:
			ins += e.ToLen
		}
	}
	flush()
	return nb.edits
}

// disjoint reports whether the sequences share no token at all. Such pairs
// reduce to one whole-sequence Delete and one whole-sequence Insert without
// running the search.
func disjoint[T comparable](from, to []T) bool {
	if len(from) == 0 || len(to) == 0 {
		return true
	}
	seen := make(map[T]struct{}, len(from))
	for _, t := range from {
		seen[t] = struct{}{}
	}
	for _, t := range to {
		if _, ok := seen[t]; ok {
			return false
		}
	}
	return true
}

// forwardDiff runs the classic forward search with a full per-distance trace
// and an iterative backtrack, emitting the script for a and b into bld.
// Only suitable for small inputs; diffRange gates calls by directSolveMax.
func forwardDiff[T comparable](a, b []T, bld *builder) {
	n, m := len(a), len(b)
	max := n + m
	off := max
	v := make([]int, 2*max+2)
	v[off+1] = 0

	var trace [][]int
	dFound := -1
search:
	for d := 0; d <= max; d++ {
		trace = append(trace, slices.Clone(v))
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[off+k-1] < v[off+k+1]) {
				// insert-derived extension; also taken on equal
				// furthest x, the fixed tie-break
				x = v[off+k+1]
			} else {
				x = v[off+k-1] + 1
			}
			y := x - k
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			v[off+k] = x
			if x >= n && y >= m {
				dFound = d
				break search
			}
		}
	}

	type run struct {
		kind Kind
		n    int
	}
	var rev []run
	push := func(kind Kind, n int) {
		if n == 0 {
			return
		}
		if len(rev) > 0 && rev[len(rev)-1].kind == kind {
			rev[len(rev)-1].n += n
			return
		}
		rev = append(rev, run{kind, n})
	}

	x, y := n, m
	for depth := dFound; depth > 0; depth-- {
		vd := trace[depth]
		k := x - y
		var prevK int
		if k == -depth || (k != depth && vd[off+k-1] < vd[off+k+1]) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := vd[off+prevK]
		prevY := prevX - prevK
		diag := 0
		for x > prevX && y > prevY {
			x--
			y--
			diag++
		}
		push(Equal, diag)
		if prevK == k+1 {
			push(Insert, 1)
			y = prevY
		} else {
			push(Delete, 1)
			x = prevX
		}
	}
	// at distance zero only a leading snake remains
	push(Equal, x)

	for i := len(rev) - 1; i >= 0; i-- {
		bld.emit(rev[i].kind, rev[i].n)
	}
}
