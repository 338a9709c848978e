package libdiff

// Line is one line of input text with its original terminator preserved
// for display. Comparison always runs on normalized Text, never on EOL.
type Line struct {
	Text string
	EOL  string
}

// String returns the line as it appeared in the input.
func (l Line) String() string {
	return l.Text + l.EOL
}

// SplitLines splits text into lines, keeping each line's terminator.
// LF, CRLF and lone CR all terminate a line. A trailing line without a
// terminator is kept with an empty EOL; empty input yields no lines.
func SplitLines(text string) []Line {
	var lines []Line
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, Line{Text: text[start:i], EOL: text[i : i+1]})
			start = i + 1
		case '\r':
			end := i + 1
			if end < len(text) && text[end] == '\n' {
				end++
			}
			lines = append(lines, Line{Text: text[start:i], EOL: text[i:end]})
			i = end - 1
			start = end
		}
	}
	if start < len(text) {
		lines = append(lines, Line{Text: text[start:]})
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []Line) string {
	n := 0
	for _, l := range lines {
		n += len(l.Text) + len(l.EOL)
	}
	buf := make([]byte, 0, n)
	for _, l := range lines {
		buf = append(buf, l.Text...)
		buf = append(buf, l.EOL...)
	}
	return string(buf)
}

// Texts projects lines onto their text content.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// FromTexts wraps bare strings as LF-terminated lines, the form used when
// callers already hold decoded line slices rather than raw text.
func FromTexts(texts []string) []Line {
	out := make([]Line, len(texts))
	for i, t := range texts {
		out[i] = Line{Text: t, EOL: "\n"}
	}
	return out
}
