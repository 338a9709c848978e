package myers

import "fmt"

// Kind classifies a single edit run.
type Kind uint8

const (
	Equal Kind = iota
	Insert
	Delete
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Edit is a run of consecutive tokens sharing one edit kind.
//
// Equal runs consume FromLen == ToLen tokens from both sequences.
// Insert runs consume only to-tokens (FromLen == 0); Delete runs consume
// only from-tokens (ToLen == 0). The empty range still carries a valid
// start, marking the position the run applies at.
type Edit struct {
	Kind      Kind
	FromStart int
	FromLen   int
	ToStart   int
	ToLen     int
}

func (e Edit) String() string {
	return fmt.Sprintf("%s from[%d:%d] to[%d:%d]",
		e.Kind, e.FromStart, e.FromStart+e.FromLen, e.ToStart, e.ToStart+e.ToLen)
}

// Reverse returns the script that transforms to back into from: Insert and
// Delete swap kinds and every edit swaps its from and to ranges.
func Reverse(edits []Edit) []Edit {
	out := make([]Edit, len(edits))
	for i, e := range edits {
		r := Edit{
			Kind:      e.Kind,
			FromStart: e.ToStart,
			FromLen:   e.ToLen,
			ToStart:   e.FromStart,
			ToLen:     e.FromLen,
		}
		switch e.Kind {
		case Insert:
			r.Kind = Delete
		case Delete:
			r.Kind = Insert
		}
		out[i] = r
	}
	return out
}

// builder accumulates edit runs in from/to order, merging adjacent runs of
// the same kind so the script never holds two consecutive edits of one kind.
type builder struct {
	edits []Edit
	x, y  int
}

func (b *builder) emit(kind Kind, n int) {
	if n <= 0 {
		return
	}
	if last := len(b.edits) - 1; last >= 0 && b.edits[last].Kind == kind {
		e := &b.edits[last]
		switch kind {
		case Equal:
			e.FromLen += n
			e.ToLen += n
		case Insert:
			e.ToLen += n
		case Delete:
			e.FromLen += n
		}
	} else {
		e := Edit{Kind: kind, FromStart: b.x, ToStart: b.y}
		switch kind {
		case Equal:
			e.FromLen, e.ToLen = n, n
		case Insert:
			e.ToLen = n
		case Delete:
			e.FromLen = n
		}
		b.edits = append(b.edits, e)
	}
	switch kind {
	case Equal:
		b.x += n
		b.y += n
	case Insert:
		b.y += n
	case Delete:
		b.x += n
	}
}
