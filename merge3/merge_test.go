package merge3

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

var mergeTests = []struct {
	name      string
	base      string
	yours     string
	theirs    string
	merged    string
	conflicts int
}{
	{
		name:   "all equal",
		base:   "a\nb\nc",
		yours:  "a\nb\nc",
		theirs: "a\nb\nc",
		merged: "a\nb\nc",
	},
	{
		name:   "yours unchanged takes theirs",
		base:   "a\nb\nc",
		yours:  "a\nb\nc",
		theirs: "a\nx\nc",
		merged: "a\nx\nc",
	},
	{
		name:   "theirs unchanged takes yours",
		base:   "a\nb\nc",
		yours:  "a\nx\nc",
		theirs: "a\nb\nc",
		merged: "a\nx\nc",
	},
	{
		name:   "disjoint edits both apply",
		base:   "a\nb\nc\nd\ne",
		yours:  "A\nb\nc\nd\ne",
		theirs: "a\nb\nc\nd\nE",
		merged: "A\nb\nc\nd\nE",
	},
	{
		name:   "append and prepend",
		base:   "1\n2\n3",
		yours:  "1\n2\n3\n4",
		theirs: "0\n1\n2\n3",
		merged: "0\n1\n2\n3\n4",
	},
	{
		name:   "identical edits collapse",
		base:   "a\nb\nc",
		yours:  "a\nx\nc",
		theirs: "a\nx\nc",
		merged: "a\nx\nc",
	},
	{
		name:      "overlapping edits conflict",
		base:      "x",
		yours:     "y",
		theirs:    "z",
		merged:    "<<<<<<< yours\ny\n=======\nz\n>>>>>>> theirs",
		conflicts: 1,
	},
	{
		name:   "adjacent edits do not conflict",
		base:   "a\nb\nc\nd",
		yours:  "a\nB\nc\nd",
		theirs: "a\nb\nC\nd",
		merged: "a\nB\nC\nd",
	},
	{
		name:   "both delete same lines",
		base:   "a\nb\nc",
		yours:  "a\nc",
		theirs: "a\nc",
		merged: "a\nc",
	},
	{
		name:      "delete versus edit conflicts",
		base:      "a\nb\nc",
		yours:     "a\nc",
		theirs:    "a\nx\nc",
		merged:    "a\n<<<<<<< yours\n=======\nx\n>>>>>>> theirs\nc",
		conflicts: 1,
	},
}

func TestMerge(t *testing.T) {
	for _, tc := range mergeTests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := Merge(tc.base, tc.yours, tc.theirs, nil)
			if err != nil {
				t.Fatalf("merge: %v", err)
			}
			if d := cmp.Diff(lines(tc.merged), res.Merged); d != "" {
				t.Errorf("merged lines (-want +got):\n%s", d)
			}
			if len(res.Conflicts) != tc.conflicts {
				t.Errorf("got %d conflicts, want %d", len(res.Conflicts), tc.conflicts)
			}
			if res.HasConflicts() != (tc.conflicts > 0) {
				t.Errorf("HasConflicts() = %v", res.HasConflicts())
			}
		})
	}
}

func TestMergeConflictDetail(t *testing.T) {
	res, err := Merge("x", "y", "z", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(res.Conflicts))
	}
	c := res.Conflicts[0]
	if c.BaseStart != 0 || c.BaseEnd != 1 {
		t.Errorf("base range [%d,%d), want [0,1)", c.BaseStart, c.BaseEnd)
	}
	if d := cmp.Diff([]string{"x"}, c.Base); d != "" {
		t.Errorf("base (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"y"}, c.Yours); d != "" {
		t.Errorf("yours (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"z"}, c.Theirs); d != "" {
		t.Errorf("theirs (-want +got):\n%s", d)
	}
}

func TestMergeLabels(t *testing.T) {
	res, err := Merge("x", "y", "z", &Options{YoursLabel: "local", TheirsLabel: "remote"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"<<<<<<< local", "y", "=======", "z", ">>>>>>> remote"}
	if d := cmp.Diff(want, res.Merged); d != "" {
		t.Errorf("merged (-want +got):\n%s", d)
	}
}

func TestMergeEmptyBase(t *testing.T) {
	res, err := Merge("", "a", "a", nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"a"}, res.Merged); d != "" {
		t.Errorf("merged (-want +got):\n%s", d)
	}
	if res.HasConflicts() {
		t.Error("unexpected conflict")
	}
}

func TestMergeText(t *testing.T) {
	res, err := Merge("a\nb", "a\nb", "a\nc", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := res.Text(), "a\nc\n"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}
