// Package myers computes shortest edit scripts between two sequences of
// comparable tokens using Myers' O(ND) difference algorithm.
//
// # Usage
//
//	// Compute an edit script between two token slices
//	edits := myers.Diff(from, to)
//
//	// Or with cancellation and tuning
//	edits, err := myers.DiffContext(ctx, from, to, opts)
//
// The script is minimal: it contains the fewest inserted and deleted tokens
// that transform from into to. Concatenating the from-ranges of Equal and
// Delete edits reproduces from; concatenating the to-ranges of Equal and
// Insert edits reproduces to.
//
// Inputs whose length product exceeds Options.LinearSpaceLimit are diffed
// with a linear-space divide-and-conquer search, bounding memory to O(N+M).
// Time is O((N+M)·D) with D the edit distance.
//
// Token equality must be reflexive and transitive; that is the caller's
// contract, typically discharged by normalizing tokens up front.
//
// # Related Packages
//
//   - github.com/gwaghmar/examdiff/libdiff - line-level diffing built on this
//   - github.com/gwaghmar/examdiff/merge3 - three-way merge built on libdiff
package myers
