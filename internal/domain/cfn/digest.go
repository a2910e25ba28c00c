package cfn

// Digest is a 256-bit content hash of a resource, represented as
// lowercase hex (spec §3).
type Digest string

// DigestIndex maps a digest to the ordered list of locations sharing
// it within one stack-set, deployed or local (spec §3).
type DigestIndex map[Digest][]Location

// Clone returns a shallow copy of the index with fresh backing slices,
// so callers can mutate the copy (e.g. self-filtering in move
// inference) without touching the original.
func (idx DigestIndex) Clone() DigestIndex {
	out := make(DigestIndex, len(idx))
	for d, locs := range idx {
		cp := make([]Location, len(locs))
		copy(cp, locs)
		out[d] = cp
	}
	return out
}
