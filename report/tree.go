package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gwaghmar/examdiff/dircmp"
)

// statusGlyph is the one-character marker shown before each entry.
func statusGlyph(s dircmp.Status) string {
	switch s {
	case dircmp.StatusIdentical:
		return "="
	case dircmp.StatusDifferent:
		return "!"
	case dircmp.StatusLeftOnly:
		return "-"
	case dircmp.StatusRightOnly:
		return "+"
	case dircmp.StatusNewerLeft:
		return "<"
	case dircmp.StatusNewerRight:
		return ">"
	case dircmp.StatusError:
		return "E"
	}
	return "?"
}

func statusAttr(s dircmp.Status) ColorAttr {
	switch s {
	case dircmp.StatusRightOnly:
		return AddedColor
	case dircmp.StatusLeftOnly:
		return RemovedColor
	case dircmp.StatusDifferent, dircmp.StatusNewerLeft, dircmp.StatusNewerRight:
		return ChangedColor
	case dircmp.StatusError:
		return ErrorColor
	}
	return StatColor
}

// WriteTree renders a comparison tree as an indented listing followed
// by a stats summary. Identical entries are listed unless changedOnly
// is set. A nil Colors means NoColors.
func WriteTree(w io.Writer, t *dircmp.Tree, colors *Colors, changedOnly bool) error {
	if colors == nil {
		colors = NoColors()
	}
	var werr error
	walk(t.Root, 0, func(e *dircmp.Entry, depth int) bool {
		if werr != nil {
			return false
		}
		if e.Path == "." {
			return true
		}
		if changedOnly && !subtreeChanged(e) {
			return false
		}
		name := e.Name
		if e.IsDir {
			name += "/"
		}
		line := fmt.Sprintf("%s %s%s", statusGlyph(e.Status), strings.Repeat("  ", depth-1), name)
		if e.Err != nil {
			line += fmt.Sprintf(" (%v)", e.Err)
		}
		if e.Status != dircmp.StatusIdentical {
			line = colors.Color(statusAttr(e.Status), line)
		}
		_, werr = fmt.Fprintln(w, line)
		return true
	})
	if werr != nil {
		return werr
	}
	s := t.Stats
	summary := fmt.Sprintf("%d identical, %d different, %d left only, %d right only",
		s.Identical, s.Different, s.LeftOnly, s.RightOnly)
	if s.Errors > 0 {
		summary += fmt.Sprintf(", %d errors", s.Errors)
	}
	_, err := fmt.Fprintln(w, colors.Color(StatColor, summary))
	return err
}

func walk(e *dircmp.Entry, depth int, fn func(*dircmp.Entry, int) bool) {
	if !fn(e, depth) {
		return
	}
	for _, c := range e.Children {
		walk(c, depth+1, fn)
	}
}

func subtreeChanged(e *dircmp.Entry) bool {
	if e.Status.Changed() {
		return true
	}
	for _, c := range e.Children {
		if subtreeChanged(c) {
			return true
		}
	}
	return false
}
