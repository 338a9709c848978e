// Package libdiff provides line-level diff computation between two texts.
//
// # Usage
//
//	// Compare two texts under a set of ignore options
//	res, err := libdiff.Diff(fromText, toText, opts)
//
//	// Refine one replaced line pair into highlight spans
//	spans := libdiff.Refine(fromLine, toLine)
//
// Diff splits both texts into lines, normalizes them per the active ignore
// options, computes a minimal edit script, and groups it into display hunks
// with context padding and delete/insert pairs coalesced into replacements.
//
// # Related Packages
//
//   - github.com/gwaghmar/examdiff/myers - the underlying edit-script search
//   - github.com/gwaghmar/examdiff/merge3 - three-way merge on top of this
package libdiff
