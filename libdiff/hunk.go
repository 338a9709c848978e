package libdiff

// Hunk is a display pagination unit: a maximal run of changed groups with
// nearby changes merged and up to the configured context of equal lines
// padding each edge. A hunk starts or ends on an Equal group only as that
// context boundary.
type Hunk struct {
	FromStart int
	FromLen   int
	ToStart   int
	ToLen     int
	Groups    []Group
}

// buildHunks clusters changed groups. An equal run separates two hunks
// only when it is at least twice the context wide; narrower runs would
// make the hunks' context overlap, so they merge.
func buildHunks(groups []Group, context int) []Hunk {
	changed := func(g Group) bool {
		return g.Kind != GroupEqual && !g.Elided
	}
	gapLen := func(g Group) int {
		return max(g.FromLen, g.ToLen)
	}

	var hunks []Hunk
	i := 0
	for i < len(groups) {
		if !changed(groups[i]) {
			i++
			continue
		}
		start := i
		end := i // inclusive index of last changed group in the cluster
		j := i + 1
		gap := 0
		for j < len(groups) {
			if changed(groups[j]) {
				if gap != 0 && gap >= 2*context {
					break
				}
				end = j
				gap = 0
			} else {
				gap += gapLen(groups[j])
			}
			j++
		}

		h := Hunk{}
		if context > 0 && start > 0 && groups[start-1].Kind == GroupEqual {
			prev := groups[start-1]
			k := min(context, prev.FromLen)
			h.Groups = append(h.Groups, Group{
				Kind:      GroupEqual,
				FromStart: prev.FromStart + prev.FromLen - k, FromLen: k,
				ToStart: prev.ToStart + prev.ToLen - k, ToLen: k,
			})
		}
		h.Groups = append(h.Groups, groups[start:end+1]...)
		if context > 0 && end+1 < len(groups) && groups[end+1].Kind == GroupEqual {
			next := groups[end+1]
			k := min(context, next.FromLen)
			h.Groups = append(h.Groups, Group{
				Kind:      GroupEqual,
				FromStart: next.FromStart, FromLen: k,
				ToStart: next.ToStart, ToLen: k,
			})
		}

		first, last := h.Groups[0], h.Groups[len(h.Groups)-1]
		h.FromStart = first.FromStart
		h.FromLen = last.FromStart + last.FromLen - first.FromStart
		h.ToStart = first.ToStart
		h.ToLen = last.ToStart + last.ToLen - first.ToStart
		hunks = append(hunks, h)

		i = end + 1
	}
	return hunks
}
