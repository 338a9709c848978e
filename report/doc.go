// Package report renders diff and directory comparison results.
//
// Four renderers share the same inputs: unified patch text, colorized
// terminal output with intra-line highlighting, a standalone HTML page
// with a side-by-side view, and a directory tree listing with status
// glyphs.
//
// # Related Packages
//
// Package libdiff produces the results rendered here; package dircmp
// produces the trees.
package report
