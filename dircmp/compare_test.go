package dircmp

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gwaghmar/examdiff/libdiff"

	"github.com/google/go-cmp/cmp"
)

func file(data string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(data)}
}

func mustCompare(t *testing.T, opts *Options, left, right fstest.MapFS) *Tree {
	t.Helper()
	c, err := New(opts)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tree, err := c.Compare(context.Background(), left, right)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	return tree
}

// statuses flattens a tree to path -> status, roots excluded.
func statuses(tree *Tree) map[string]string {
	out := map[string]string{}
	tree.Walk(func(e *Entry) {
		if e.Path != "." {
			out[e.Path] = e.Status.String()
		}
	})
	return out
}

func TestCompareStatuses(t *testing.T) {
	left := fstest.MapFS{
		"same.txt":      file("hello\n"),
		"changed.txt":   file("old\n"),
		"left.txt":      file("only here\n"),
		"sub/inner.txt": file("nested\n"),
	}
	right := fstest.MapFS{
		"same.txt":      file("hello\n"),
		"changed.txt":   file("new\n"),
		"right.txt":     file("only there\n"),
		"sub/inner.txt": file("nested edited\n"),
	}
	tree := mustCompare(t, &Options{Recursive: true, Workers: 2}, left, right)
	want := map[string]string{
		"same.txt":      "identical",
		"changed.txt":   "different",
		"left.txt":      "left-only",
		"right.txt":     "right-only",
		"sub":           "different",
		"sub/inner.txt": "different",
	}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
	wantStats := Stats{Identical: 1, Different: 2, LeftOnly: 1, RightOnly: 1}
	if tree.Stats != wantStats {
		t.Errorf("stats = %+v, want %+v", tree.Stats, wantStats)
	}
	if tree.Root.Status != StatusDifferent {
		t.Errorf("root status = %s", tree.Root.Status)
	}
}

func TestCompareIdenticalTrees(t *testing.T) {
	fsys := fstest.MapFS{
		"a.txt":     file("a\n"),
		"sub/b.txt": file("b\n"),
	}
	tree := mustCompare(t, &Options{Recursive: true}, fsys, fsys)
	if tree.Root.Status != StatusIdentical {
		t.Errorf("root status = %s, want identical", tree.Root.Status)
	}
	if tree.Stats.Different != 0 || tree.Stats.Identical != 2 {
		t.Errorf("stats = %+v", tree.Stats)
	}
}

func TestCompareDeterministicOrder(t *testing.T) {
	left := fstest.MapFS{
		"c.txt": file("1"), "a.txt": file("2"), "b.txt": file("3"),
	}
	right := fstest.MapFS{
		"c.txt": file("1"), "a.txt": file("x"), "b.txt": file("3"),
	}
	for _, workers := range []int{1, 4} {
		tree := mustCompare(t, &Options{Workers: workers}, left, right)
		var names []string
		for _, e := range tree.Root.Children {
			names = append(names, e.Name)
		}
		if d := cmp.Diff([]string{"a.txt", "b.txt", "c.txt"}, names); d != "" {
			t.Errorf("workers=%d order (-want +got):\n%s", workers, d)
		}
	}
}

func TestCompareNonRecursive(t *testing.T) {
	left := fstest.MapFS{"sub/a.txt": file("x")}
	right := fstest.MapFS{"sub/a.txt": file("y")}
	tree := mustCompare(t, &Options{}, left, right)
	want := map[string]string{"sub": "identical"}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
}

func TestCompareOneSidedSubtree(t *testing.T) {
	left := fstest.MapFS{
		"keep.txt":        file("k"),
		"gone/a.txt":      file("a"),
		"gone/deep/b.txt": file("b"),
	}
	right := fstest.MapFS{"keep.txt": file("k")}
	tree := mustCompare(t, &Options{Recursive: true}, left, right)
	want := map[string]string{
		"keep.txt":        "identical",
		"gone":            "left-only",
		"gone/a.txt":      "left-only",
		"gone/deep":       "left-only",
		"gone/deep/b.txt": "left-only",
	}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
	if tree.Stats.LeftOnly != 4 {
		t.Errorf("left-only count = %d, want 4", tree.Stats.LeftOnly)
	}
}

func TestCompareFileDirMismatch(t *testing.T) {
	left := fstest.MapFS{"x": file("data")}
	right := fstest.MapFS{"x/inner.txt": file("data")}
	tree := mustCompare(t, &Options{Recursive: true}, left, right)
	if got := statuses(tree)["x"]; got != "different" {
		t.Errorf("status = %s, want different", got)
	}
}

func TestCompareModeSize(t *testing.T) {
	left := fstest.MapFS{
		"same-size.txt": file("abc"),
		"grown.txt":     file("ab"),
	}
	right := fstest.MapFS{
		"same-size.txt": file("xyz"),
		"grown.txt":     file("abcd"),
	}
	tree := mustCompare(t, &Options{Mode: ModeSize}, left, right)
	want := map[string]string{
		"same-size.txt": "identical",
		"grown.txt":     "different",
	}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
}

func TestCompareModeTimestamp(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	left := fstest.MapFS{
		"close.txt": {Data: []byte("a"), ModTime: base},
		"newer.txt": {Data: []byte("b"), ModTime: base.Add(time.Minute)},
		"older.txt": {Data: []byte("c"), ModTime: base},
	}
	right := fstest.MapFS{
		"close.txt": {Data: []byte("a"), ModTime: base.Add(500 * time.Millisecond)},
		"newer.txt": {Data: []byte("b"), ModTime: base},
		"older.txt": {Data: []byte("c"), ModTime: base.Add(time.Hour)},
	}
	tree := mustCompare(t, &Options{Mode: ModeTimestamp}, left, right)
	want := map[string]string{
		"close.txt": "identical",
		"newer.txt": "newer-left",
		"older.txt": "newer-right",
	}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
	if tree.Stats.Different != 2 {
		t.Errorf("different count = %d, want 2", tree.Stats.Different)
	}
}

func TestCompareModeHash(t *testing.T) {
	left := fstest.MapFS{
		"a.txt": file("same content"),
		"b.txt": file("left bytes"),
	}
	right := fstest.MapFS{
		"a.txt": file("same content"),
		"b.txt": file("right bytes"),
	}
	tree := mustCompare(t, &Options{Mode: ModeHash}, left, right)
	want := map[string]string{"a.txt": "identical", "b.txt": "different"}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
}

func TestCompareContentNormalized(t *testing.T) {
	left := fstest.MapFS{"a.txt": file("Hello  World\n")}
	right := fstest.MapFS{"a.txt": file("hello world\n")}
	opts := &Options{Diff: &libdiff.Options{IgnoreCase: true, IgnoreWhitespace: true}}
	tree := mustCompare(t, opts, left, right)
	if got := statuses(tree)["a.txt"]; got != "identical" {
		t.Errorf("status = %s, want identical", got)
	}
}

func TestCompareBinaryNotNormalized(t *testing.T) {
	left := fstest.MapFS{"a.bin": file("ABC\x00DEF")}
	right := fstest.MapFS{"a.bin": file("abc\x00def")}
	opts := &Options{Diff: &libdiff.Options{IgnoreCase: true}}
	tree := mustCompare(t, opts, left, right)
	if got := statuses(tree)["a.bin"]; got != "different" {
		t.Errorf("status = %s, want different", got)
	}
}

func TestCompareIgnoreHidden(t *testing.T) {
	left := fstest.MapFS{
		".hidden":       file("x"),
		".git/config":   file("x"),
		"visible.txt":   file("v"),
		"sub/.DS_Store": file("x"),
		"sub/f.txt":     file("f"),
	}
	right := fstest.MapFS{
		"visible.txt": file("v"),
		"sub/f.txt":   file("f"),
	}
	tree := mustCompare(t, &Options{Recursive: true, IgnoreHidden: true}, left, right)
	want := map[string]string{
		"visible.txt": "identical",
		"sub":         "identical",
		"sub/f.txt":   "identical",
	}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
}

func TestCompareGlobs(t *testing.T) {
	left := fstest.MapFS{
		"a.go":     file("x"),
		"a.txt":    file("x"),
		"out/b.go": file("x"),
		"src/c.go": file("x"),
	}
	right := fstest.MapFS{
		"a.go":     file("y"),
		"a.txt":    file("y"),
		"out/b.go": file("y"),
		"src/c.go": file("y"),
	}
	opts := &Options{
		Recursive: true,
		Include:   []string{"**.go"},
		Exclude:   []string{"out"},
	}
	tree := mustCompare(t, opts, left, right)
	want := map[string]string{
		"a.go":     "different",
		"src":      "different",
		"src/c.go": "different",
	}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
}

func TestCompareFilterExpr(t *testing.T) {
	left := fstest.MapFS{
		"big.txt":   file("0123456789"),
		"small.txt": file("01"),
	}
	right := fstest.MapFS{
		"big.txt":   file("9876543210"),
		"small.txt": file("xy"),
	}
	tree := mustCompare(t, &Options{Filter: `size > 5 && ext == ".txt"`}, left, right)
	want := map[string]string{"big.txt": "different"}
	if d := cmp.Diff(want, statuses(tree)); d != "" {
		t.Errorf("statuses (-want +got):\n%s", d)
	}
}

func TestCompareInvalidOptions(t *testing.T) {
	for _, opts := range []*Options{
		{Include: []string{"[unterminated"}},
		{Filter: "not valid ++ expr"},
		{Workers: -1},
		{Mode: Mode(42)},
	} {
		if _, err := New(opts); !errors.Is(err, ErrInvalidOptions) {
			t.Errorf("New(%+v) err = %v, want ErrInvalidOptions", opts, err)
		}
	}
}

func TestCompareCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, err := New(&Options{Recursive: true})
	if err != nil {
		t.Fatal(err)
	}
	fsys := fstest.MapFS{"a.txt": file("x")}
	tree, err := c.Compare(ctx, fsys, fsys)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if tree != nil {
		t.Error("got partial tree on cancellation")
	}
}

func TestCompareMissingRoot(t *testing.T) {
	c, err := New(nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.CompareDirs(context.Background(), t.TempDir(), "/does/not/exist")
	if !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
}

func TestIsBinary(t *testing.T) {
	if IsBinary([]byte("plain text\n")) {
		t.Error("text flagged as binary")
	}
	if !IsBinary([]byte("has\x00nul")) {
		t.Error("nul byte not flagged")
	}
}
