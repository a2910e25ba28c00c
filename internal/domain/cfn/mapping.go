package cfn

// Mapping is a (source, destination) pair of locations. Its invariant,
// source.Type() == destination.Type(), is enforced upstream by digest
// equality (spec §3): mappings are only ever extracted from moves
// whose members share a digest bucket, and digest equality for
// non-physically-identified resources always folds in Type.
type Mapping struct {
	Source      Location
	Destination Location
}

// Move is a pair of (sources, destinations) sharing a digest (spec §3).
type Move struct {
	Digest       Digest
	Sources      []Location
	Destinations []Location
}

// IsAmbiguous reports whether the move has both sides non-empty and at
// least one side with more than one element (spec §3).
func (m Move) IsAmbiguous() bool {
	return len(m.Sources) > 0 && len(m.Destinations) > 0 &&
		(len(m.Sources) > 1 || len(m.Destinations) > 1)
}

// IsPureAddition reports an empty source side.
func (m Move) IsPureAddition() bool {
	return len(m.Sources) == 0
}

// IsPureDeletion reports an empty destination side.
func (m Move) IsPureDeletion() bool {
	return len(m.Destinations) == 0
}

// IsTrivial reports whether sources and destinations are the same set
// of locations (nothing moved).
func (m Move) IsTrivial() bool {
	if len(m.Sources) != len(m.Destinations) {
		return false
	}
	remaining := make([]Location, len(m.Destinations))
	copy(remaining, m.Destinations)
	for _, s := range m.Sources {
		found := -1
		for i, d := range remaining {
			if s.Equal(d) {
				found = i
				break
			}
		}
		if found == -1 {
			return false
		}
		remaining = append(remaining[:found], remaining[found+1:]...)
	}
	return true
}

// IsUnambiguous reports exactly one source and one destination that
// differ from each other (spec §4.3).
func (m Move) IsUnambiguous() bool {
	return len(m.Sources) == 1 && len(m.Destinations) == 1 && !m.Sources[0].Equal(m.Destinations[0])
}
