// Package merge3 merges two descendants of a common base text, flagging
// overlapping edits as conflicts.
//
// # Usage
//
//	res, err := merge3.Merge(base, yours, theirs, nil)
//	if res.HasConflicts() {
//		// res.Merged contains conflict-marker blocks
//	}
//
// The merge computes two base-relative edit scripts and walks them in
// lockstep over base positions. Regions changed by one side only are taken
// from that side; regions changed identically by both sides are taken once;
// regions where the sides' base ranges overlap with differing content become
// conflicts. Adjacent but non-overlapping edits never conflict — alignment
// is by base-range overlap, never by content similarity.
//
// # Related Packages
//
//   - github.com/gwaghmar/examdiff/libdiff - the underlying line diff
package merge3
