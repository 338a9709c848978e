package myers

import (
	"context"
	"math/rand"
	"strings"
	"testing"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type diffTest struct {
	from string
	to   string
	dist int // minimal inserted+deleted token count
}

var diffTests = []diffTest{
	{from: "", to: "", dist: 0},
	{from: "abc", to: "abc", dist: 0},
	{from: "", to: "ab", dist: 2},
	{from: "ab", to: "", dist: 2},
	{from: "abc", to: "xyz", dist: 6},
	{from: "abc", to: "axc", dist: 2},
	{from: "abcd", to: "abxd", dist: 2},
	{from: "abcabba", to: "cbabac", dist: 5},
	{from: "a", to: "b", dist: 2},
	{from: "aaaa", to: "aa", dist: 2},
	{from: "xaxbxcx", to: "abc", dist: 4},
	{from: "abc", to: "xaxbxcx", dist: 4},
}

// checkScript validates the structural invariants of an edit script: runs
// are position-consecutive, Equal runs really are equal in both sequences,
// and replaying the script reconstructs to from from.
func checkScript(t *testing.T, from, to []rune, edits []Edit) {
	t.Helper()
	x, y := 0, 0
	var rebuilt []rune
	for i, e := range edits {
		if e.FromStart != x || e.ToStart != y {
			t.Fatalf("edit %d %v: want starts (%d,%d)", i, e, x, y)
		}
		switch e.Kind {
		case Equal:
			if e.FromLen != e.ToLen {
				t.Fatalf("edit %d %v: unequal equal-run lengths", i, e)
			}
			for j := 0; j < e.FromLen; j++ {
				if from[x+j] != to[y+j] {
					t.Fatalf("edit %d %v: tokens differ inside equal run", i, e)
				}
			}
			rebuilt = append(rebuilt, to[y:y+e.ToLen]...)
		case Insert:
			if e.FromLen != 0 {
				t.Fatalf("edit %d %v: insert consumes from-tokens", i, e)
			}
			rebuilt = append(rebuilt, to[y:y+e.ToLen]...)
		case Delete:
			if e.ToLen != 0 {
				t.Fatalf("edit %d %v: delete consumes to-tokens", i, e)
			}
		}
		x += e.FromLen
		y += e.ToLen
	}
	if x != len(from) || y != len(to) {
		t.Fatalf("script consumed (%d,%d) of (%d,%d)", x, y, len(from), len(to))
	}
	if string(rebuilt) != string(to) {
		t.Fatalf("replay got %q, want %q", string(rebuilt), string(to))
	}
}

func editDistance(edits []Edit) int {
	d := 0
	for _, e := range edits {
		d += e.ToLen*boolInt(e.Kind == Insert) + e.FromLen*boolInt(e.Kind == Delete)
	}
	return d
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestDiff(t *testing.T) {
	for _, tc := range diffTests {
		from, to := []rune(tc.from), []rune(tc.to)
		edits := Diff(from, to)
		checkScript(t, from, to, edits)
		if d := editDistance(edits); d != tc.dist {
			t.Errorf("Diff(%q, %q): distance %d, want %d", tc.from, tc.to, d, tc.dist)
		}
	}
}

func TestDiffEqualSingleRun(t *testing.T) {
	from := []rune("identical input")
	edits := Diff(from, from)
	if len(edits) != 1 || edits[0].Kind != Equal || edits[0].FromLen != len(from) {
		t.Fatalf("equal sequences: got %v, want one spanning equal run", edits)
	}
}

func TestDiffDisjointShape(t *testing.T) {
	from, to := []rune("abc"), []rune("xyz")
	edits := Diff(from, to)
	if len(edits) != 2 || edits[0].Kind != Delete || edits[0].FromLen != 3 ||
		edits[1].Kind != Insert || edits[1].ToLen != 3 {
		t.Fatalf("disjoint sequences: got %v, want [delete all, insert all]", edits)
	}
}

func TestDiffReverse(t *testing.T) {
	for _, tc := range diffTests {
		from, to := []rune(tc.from), []rune(tc.to)
		rev := Reverse(Diff(from, to))
		checkScript(t, to, from, rev)
	}
}

// TestDiffMinimality cross-checks edit distances against diffmatchpatch.
// The timeout must be off: with a deadline dmp applies the half-match
// heuristic, which trades minimality for speed. Without one it bisects
// to an optimal path.
func TestDiffMinimality(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dmp := diffpatch.New()
	dmp.DiffTimeout = 0
	for i := 0; i < 200; i++ {
		from := randRunes(rng, rng.Intn(40))
		to := randRunes(rng, rng.Intn(40))
		edits := Diff(from, to)
		checkScript(t, from, to, edits)

		want := 0
		for _, d := range dmp.DiffMainRunes(from, to, false) {
			if d.Type != diffpatch.DiffEqual {
				want += len([]rune(d.Text))
			}
		}
		if got := editDistance(edits); got != want {
			t.Fatalf("case %d %q vs %q: distance %d, oracle %d",
				i, string(from), string(to), got, want)
		}
	}
}

func randRunes(rng *rand.Rand, n int) []rune {
	rs := make([]rune, n)
	for i := range rs {
		rs[i] = rune('a' + rng.Intn(4))
	}
	return rs
}

func TestDiffLinearSpace(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	forced := &Options{LinearSpaceLimit: 1}
	for i := 0; i < 100; i++ {
		from := randRunes(rng, rng.Intn(60))
		to := randRunes(rng, rng.Intn(60))
		plain := Diff(from, to)
		linear, err := DiffContext(context.Background(), from, to, forced)
		if err != nil {
			t.Fatal(err)
		}
		checkScript(t, from, to, linear)
		if editDistance(linear) != editDistance(plain) {
			t.Fatalf("case %d: linear distance %d, direct %d",
				i, editDistance(linear), editDistance(plain))
		}
	}
}

// lcsDistance is the exact D = N + M - 2*LCS, by dynamic programming. A
// heuristic-free reference for minimality checks.
func lcsDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
			} else {
				cur[j] = max(prev[j], cur[j-1])
			}
		}
		prev, cur = cur, prev
	}
	return len(a) + len(b) - 2*prev[len(b)]
}

func TestDiffMinimalityLinearSpace(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	forced := &Options{LinearSpaceLimit: 1}
	for i := 0; i < 300; i++ {
		from := randRunes(rng, rng.Intn(60))
		to := randRunes(rng, rng.Intn(60))
		edits, err := DiffContext(context.Background(), from, to, forced)
		if err != nil {
			t.Fatal(err)
		}
		checkScript(t, from, to, edits)
		if got, want := editDistance(edits), lcsDistance(from, to); got != want {
			t.Fatalf("case %d %q vs %q: distance %d, lcs distance %d",
				i, string(from), string(to), got, want)
		}
	}
}

func TestDiffLargeCommonCore(t *testing.T) {
	// long shared middle with edits at both ends, forced through the
	// divide-and-conquer path
	mid := strings.Repeat("x", 5000)
	from := []rune("aaa" + mid + "bbb")
	to := []rune("ccc" + mid + "ddd")
	edits, err := DiffContext(context.Background(), from, to, &Options{LinearSpaceLimit: 16})
	if err != nil {
		t.Fatal(err)
	}
	checkScript(t, from, to, edits)
	if d := editDistance(edits); d != 12 {
		t.Fatalf("distance %d, want 12", d)
	}
}

func TestDiffCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	from := []rune(strings.Repeat("abcd", 2000))
	to := []rune(strings.Repeat("dcba", 2000))
	edits, err := DiffContext(ctx, from, to, &Options{LinearSpaceLimit: 1})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if edits != nil {
		t.Fatalf("cancelled diff leaked a partial script: %v", edits)
	}
}
