package myers

import "context"

// diffRange drives the divide-and-conquer search over an explicit work
// stack of range pairs, keeping stack depth independent of input size and
// memory at O(N+M). Small subranges are solved directly by forwardDiff.
func diffRange[T comparable](ctx context.Context, from, to []T, b *builder, limit int) error {
	type frame struct {
		x0, x1, y0, y1 int
		// resolved frames emit an already-known run when popped,
		// ordering snake and suffix output between subranges
		resolved bool
		kind     Kind
		n        int
	}

	stack := []frame{{x0: 0, x1: len(from), y0: 0, y1: len(to)}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.resolved {
			b.emit(f.kind, f.n)
			continue
		}
		x0, x1, y0, y1 := f.x0, f.x1, f.y0, f.y1

		p := 0
		for x0+p < x1 && y0+p < y1 && from[x0+p] == to[y0+p] {
			p++
		}
		b.emit(Equal, p)
		x0 += p
		y0 += p

		s := 0
		for x1-s > x0 && y1-s > y0 && from[x1-s-1] == to[y1-s-1] {
			s++
		}
		x1 -= s
		y1 -= s
		if s > 0 {
			stack = append(stack, frame{resolved: true, kind: Equal, n: s})
		}

		n, m := x1-x0, y1-y0
		switch {
		case n == 0 && m == 0:
		case n == 0:
			b.emit(Insert, m)
		case m == 0:
			b.emit(Delete, n)
		case n+m <= directSolveMax && n <= limit/m:
			forwardDiff(from[x0:x1], to[y0:y1], b)
		default:
			sx, sy, ex, ey := middleSnake(from[x0:x1], to[y0:y1])
			stack = append(stack,
				frame{x0: x0 + ex, x1: x1, y0: y0 + ey, y1: y1},
				frame{resolved: true, kind: Equal, n: ex - sx},
				frame{x0: x0, x1: x0 + sx, y0: y0, y1: y0 + sy},
			)
		}
	}
	return nil
}

// middleSnake locates a middle snake of an optimal path through the edit
// graph of a and b by running the forward and reverse searches
// simultaneously until their furthest-reaching paths overlap (Myers'
// linear-space refinement). Both sequences must be non-empty with no common
// prefix or suffix; diffRange establishes that before calling.
//
// The returned coordinates are the snake's start and end, relative to a/b.
// The snake may be empty (start == end) when the overlapping paths meet on
// an edit move.
func middleSnake[T comparable](a, b []T) (sx, sy, ex, ey int) {
	n, m := len(a), len(b)
	delta := n - m
	odd := delta%2 != 0

	size := 3*(n+m) + 8
	off := size / 2
	vf := make([]int, size)
	vb := make([]int, size)
	vf[off+1] = 0
	vb[off+delta+1] = n + 1

	dmax := (n+m)/2 + 1
	for d := 0; d <= dmax; d++ {
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && vf[off+k-1] < vf[off+k+1]) {
				x = vf[off+k+1]
			} else {
				x = vf[off+k-1] + 1
			}
			y := x - k
			x0, y0 := x, y
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			vf[off+k] = x
			// diagonals can overrun the graph edge; only in-bounds
			// snakes are overlap candidates
			if odd && x0 <= n && y0 <= m &&
				k >= delta-(d-1) && k <= delta+(d-1) && vf[off+k] >= vb[off+k] {
				return x0, y0, x, y
			}
		}
		for k := delta - d; k <= delta+d; k += 2 {
			var x int
			if k == delta-d || (k != delta+d && vb[off+k+1]-1 <= vb[off+k-1]) {
				x = vb[off+k+1] - 1
			} else {
				x = vb[off+k-1]
			}
			y := x - k
			x1, y1 := x, y
			for x > 0 && y > 0 && a[x-1] == b[y-1] {
				x--
				y--
			}
			vb[off+k] = x
			if !odd && x1 >= 0 && y1 >= 0 &&
				k >= -d && k <= d && vb[off+k] <= vf[off+k] {
				return x, y, x1, y1
			}
		}
	}
	// unreachable while token equality is reflexive and transitive
	panic("myers: no middle snake")
}
