package move

import "github.com/stackmove/stackmove/internal/domain/cfn"

// Unambiguous returns the subset of moves with exactly one source and
// one destination location that actually differ (spec §4.3): the only
// moves the core can resolve without an override.
func Unambiguous(moves []cfn.Move) []cfn.Move {
	out := make([]cfn.Move, 0, len(moves))
	for _, m := range moves {
		if m.IsUnambiguous() {
			out = append(out, m)
		}
	}
	return out
}

// Ambiguous returns the subset of moves with both sides non-empty and
// more than one source or more than one destination (spec §4.3): these
// require an override to
// resolve, either user-supplied or structural.
func Ambiguous(moves []cfn.Move) []cfn.Move {
	out := make([]cfn.Move, 0, len(moves))
	for _, m := range moves {
		if m.IsAmbiguous() {
			out = append(out, m)
		}
	}
	return out
}
