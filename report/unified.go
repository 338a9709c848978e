package report

import (
	"fmt"
	"io"

	"github.com/gwaghmar/examdiff/libdiff"
)

const noNewline = `\ No newline at end of file`

// WriteUnified renders a result in unified patch format. Identical
// inputs produce no output.
func WriteUnified(w io.Writer, fromName, toName string, res *libdiff.Result) error {
	if len(res.Hunks) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "--- %s\n+++ %s\n", fromName, toName); err != nil {
		return err
	}
	for _, h := range res.Hunks {
		_, err := fmt.Fprintf(w, "@@ -%s +%s @@\n",
			unifiedRange(h.FromStart, h.FromLen),
			unifiedRange(h.ToStart, h.ToLen))
		if err != nil {
			return err
		}
		for _, g := range h.Groups {
			if err := writeGroup(w, res, g); err != nil {
				return err
			}
		}
	}
	return nil
}

// unifiedRange renders a 0-based range with 1-based patch numbering.
// Empty ranges name the line before the position.
func unifiedRange(start, n int) string {
	if n == 1 {
		return fmt.Sprintf("%d", start+1)
	}
	if n == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, n)
}

func writeGroup(w io.Writer, res *libdiff.Result, g libdiff.Group) error {
	switch g.Kind {
	case libdiff.GroupEqual:
		return writeLines(w, " ", res.From, g.FromStart, g.FromLen)
	case libdiff.GroupDelete:
		return writeLines(w, "-", res.From, g.FromStart, g.FromLen)
	case libdiff.GroupInsert:
		return writeLines(w, "+", res.To, g.ToStart, g.ToLen)
	case libdiff.GroupReplace:
		if err := writeLines(w, "-", res.From, g.FromStart, g.FromLen); err != nil {
			return err
		}
		return writeLines(w, "+", res.To, g.ToStart, g.ToLen)
	}
	return fmt.Errorf("unknown group kind %d", g.Kind)
}

func writeLines(w io.Writer, prefix string, lines []libdiff.Line, start, n int) error {
	for _, l := range lines[start : start+n] {
		if _, err := fmt.Fprintf(w, "%s%s\n", prefix, l.Text); err != nil {
			return err
		}
		if l.EOL == "" {
			if _, err := fmt.Fprintln(w, noNewline); err != nil {
				return err
			}
		}
	}
	return nil
}
