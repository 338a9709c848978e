package report

import (
	"fmt"
	"io"

	"github.com/gwaghmar/examdiff/libdiff"
)

// WriteTerminal renders a result for a terminal. Replaced line pairs
// of equal length get intra-line span highlighting. A nil Colors means
// NoColors.
func WriteTerminal(w io.Writer, fromName, toName string, res *libdiff.Result, colors *Colors) error {
	if colors == nil {
		colors = NoColors()
	}
	if len(res.Hunks) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n",
		colors.Color(FileColor, "--- "+fromName),
		colors.Color(FileColor, "+++ "+toName))
	if err != nil {
		return err
	}
	for _, h := range res.Hunks {
		hdr := fmt.Sprintf("@@ -%s +%s @@",
			unifiedRange(h.FromStart, h.FromLen),
			unifiedRange(h.ToStart, h.ToLen))
		if _, err := fmt.Fprintln(w, colors.Color(HunkColor, hdr)); err != nil {
			return err
		}
		for _, g := range h.Groups {
			if err := writeGroupColored(w, res, g, colors); err != nil {
				return err
			}
		}
	}
	return writeStats(w, res.Stats, colors)
}

func writeStats(w io.Writer, s libdiff.Stats, colors *Colors) error {
	line := fmt.Sprintf("%d added, %d removed, %d modified, %d unchanged",
		s.Added, s.Removed, s.Modified, s.Unchanged)
	_, err := fmt.Fprintln(w, colors.Color(StatColor, line))
	return err
}

func writeGroupColored(w io.Writer, res *libdiff.Result, g libdiff.Group, colors *Colors) error {
	switch g.Kind {
	case libdiff.GroupEqual:
		return writeSide(w, " ", res.From, g.FromStart, g.FromLen, colors.Default)
	case libdiff.GroupDelete:
		return writeSide(w, "-", res.From, g.FromStart, g.FromLen, colors.Get(RemovedColor))
	case libdiff.GroupInsert:
		return writeSide(w, "+", res.To, g.ToStart, g.ToLen, colors.Get(AddedColor))
	case libdiff.GroupReplace:
		if g.FromLen == g.ToLen {
			return writeRefined(w, res, g, colors)
		}
		if err := writeSide(w, "-", res.From, g.FromStart, g.FromLen, colors.Get(RemovedColor)); err != nil {
			return err
		}
		return writeSide(w, "+", res.To, g.ToStart, g.ToLen, colors.Get(AddedColor))
	}
	return fmt.Errorf("unknown group kind %d", g.Kind)
}

func writeSide(w io.Writer, prefix string, lines []libdiff.Line, start, n int, paint func(string, ...any) string) error {
	for _, l := range lines[start : start+n] {
		if _, err := fmt.Fprintln(w, paint(prefix+l.Text)); err != nil {
			return err
		}
	}
	return nil
}

// writeRefined paints a replaced pair span by span, highlighting only
// the parts that changed within each line.
func writeRefined(w io.Writer, res *libdiff.Result, g libdiff.Group, colors *Colors) error {
	for i := 0; i < g.FromLen; i++ {
		from := res.From[g.FromStart+i].Text
		to := res.To[g.ToStart+i].Text
		spans := libdiff.Refine(from, to)
		if err := writeSpanLine(w, "-", spans, libdiff.SpanRemoved, colors); err != nil {
			return err
		}
		if err := writeSpanLine(w, "+", spans, libdiff.SpanAdded, colors); err != nil {
			return err
		}
	}
	return nil
}

func writeSpanLine(w io.Writer, prefix string, spans []libdiff.Span, highlight libdiff.SpanKind, colors *Colors) error {
	paint := colors.Get(RemovedColor)
	if highlight == libdiff.SpanAdded {
		paint = colors.Get(AddedColor)
	}
	if _, err := io.WriteString(w, paint(prefix)); err != nil {
		return err
	}
	for _, s := range spans {
		switch s.Kind {
		case libdiff.SpanEqual:
			if _, err := io.WriteString(w, s.Text); err != nil {
				return err
			}
		case highlight:
			if _, err := io.WriteString(w, paint(s.Text)); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
