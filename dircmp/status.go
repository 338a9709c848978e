package dircmp

// Status classifies one paired entry of the merged tree.
type Status int

const (
	StatusIdentical Status = iota
	StatusDifferent
	StatusLeftOnly
	StatusRightOnly
	StatusNewerLeft
	StatusNewerRight
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdentical:
		return "identical"
	case StatusDifferent:
		return "different"
	case StatusLeftOnly:
		return "left-only"
	case StatusRightOnly:
		return "right-only"
	case StatusNewerLeft:
		return "newer-left"
	case StatusNewerRight:
		return "newer-right"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Changed reports whether the status represents any difference between
// the sides, including one-sided entries and comparison errors.
func (s Status) Changed() bool {
	return s != StatusIdentical
}
