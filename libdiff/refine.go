package libdiff

import (
	"strings"
	"unicode"

	"github.com/gwaghmar/examdiff/myers"
)

// SpanKind tags an intra-line highlight span.
type SpanKind uint8

const (
	SpanEqual SpanKind = iota
	SpanAdded
	SpanRemoved
)

func (k SpanKind) String() string {
	switch k {
	case SpanEqual:
		return "equal"
	case SpanAdded:
		return "added"
	case SpanRemoved:
		return "removed"
	default:
		return "span(?)"
	}
}

// Span is a run of characters within a replaced line pair. Concatenating
// the Equal and Removed spans yields the from-line; Equal and Added spans
// yield the to-line. Spans tile both lines with no gaps or overlaps.
type Span struct {
	Kind SpanKind
	Text string
}

// refineDensity is the fraction of differing word tokens above which word
// granularity is abandoned for character granularity.
const refineDensity = 0.6

// Refine computes highlight spans for one replaced line pair. It first
// diffs at word granularity; when most word tokens differ it falls back to
// character granularity, which always produces a usable tiling. Refinement
// never alters hunk structure.
func Refine(from, to string) []Span {
	fromWords := splitWords(from)
	toWords := splitWords(to)
	edits := myers.Diff(fromWords, toWords)

	changed, total := 0, len(fromWords)+len(toWords)
	for _, e := range edits {
		switch e.Kind {
		case myers.Insert:
			changed += e.ToLen
		case myers.Delete:
			changed += e.FromLen
		}
	}
	if total > 0 && float64(changed) > refineDensity*float64(total) {
		fromRunes := runeTokens(from)
		toRunes := runeTokens(to)
		return spansFrom(myers.Diff(fromRunes, toRunes), fromRunes, toRunes)
	}
	return spansFrom(edits, fromWords, toWords)
}

// splitWords tokenizes a line into alphanumeric runs and single delimiter
// characters, keeping every input character in exactly one token.
func splitWords(s string) []string {
	var words []string
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			words = append(words, word.String())
			word.Reset()
		}
	}
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			word.WriteRune(r)
			continue
		}
		flush()
		words = append(words, string(r))
	}
	flush()
	return words
}

func runeTokens(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func spansFrom(edits []myers.Edit, fromToks, toToks []string) []Span {
	var spans []Span
	add := func(kind SpanKind, text string) {
		if text == "" {
			return
		}
		if n := len(spans) - 1; n >= 0 && spans[n].Kind == kind {
			spans[n].Text += text
			return
		}
		spans = append(spans, Span{Kind: kind, Text: text})
	}
	for _, e := range edits {
		switch e.Kind {
		case myers.Equal:
			add(SpanEqual, strings.Join(fromToks[e.FromStart:e.FromStart+e.FromLen], ""))
		case myers.Delete:
			add(SpanRemoved, strings.Join(fromToks[e.FromStart:e.FromStart+e.FromLen], ""))
		case myers.Insert:
			add(SpanAdded, strings.Join(toToks[e.ToStart:e.ToStart+e.ToLen], ""))
		}
	}
	return spans
}
