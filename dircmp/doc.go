// Package dircmp compares two directory trees.
//
// A Comparator walks both trees in lockstep, pairing entries by name,
// and classifies every entry with a Status. File contents are compared
// according to a Mode: full content, size only, modification time, or
// a sha256 digest. Content comparisons run on a bounded worker pool;
// results are deterministic regardless of worker count because the
// merged tree is ordered lexically by name.
//
//	cmp, err := dircmp.New(&dircmp.Options{Recursive: true})
//	if err != nil { ... }
//	tree, err := cmp.CompareDirs(ctx, "old", "new")
//
// Entries can be filtered by glob patterns and by a boolean expression
// evaluated against each file's name, path, extension and size.
//
// # Related Packages
//
// Package libdiff produces the per-file line diffs; content mode uses
// it when diff options request normalization.
package dircmp
