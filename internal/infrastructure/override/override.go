// Package override converts ambiguous moves into unambiguous ones
// using user-supplied and structural overrides (spec §4.4).
package override

import "github.com/stackmove/stackmove/internal/domain/cfn"

// Resolve applies overrides, in order, to every ambiguous move in
// moves. Non-ambiguous moves (unambiguous, pure additions, pure
// deletions) pass through untouched. Each ambiguous move that is
// fully or partially matched by an override yields one resolved move
// per matched pair; any residue that is still ambiguous is returned
// separately so the caller can surface it as ambiguousPaths.
func Resolve(moves []cfn.Move, overrides []cfn.Mapping) (resolved []cfn.Move, ambiguous []cfn.Move) {
	for _, mv := range moves {
		if !mv.IsAmbiguous() {
			resolved = append(resolved, mv)
			continue
		}

		extracted, residue := splitByOverrides(mv, overrides)
		resolved = append(resolved, extracted...)
		if residue == nil {
			continue
		}
		if residue.IsAmbiguous() {
			ambiguous = append(ambiguous, *residue)
		} else {
			resolved = append(resolved, *residue)
		}
	}
	return resolved, ambiguous
}

// splitByOverrides extracts one unambiguous move per override that
// matches a (source, destination) pair still present in mv, removing
// both endpoints from the working sets each time (spec §4.4). residue
// is nil if every location was extracted.
func splitByOverrides(mv cfn.Move, overrides []cfn.Mapping) (extracted []cfn.Move, residue *cfn.Move) {
	sources := append([]cfn.Location(nil), mv.Sources...)
	destinations := append([]cfn.Location(nil), mv.Destinations...)

	for _, ov := range overrides {
		si := indexOf(sources, ov.Source)
		di := indexOf(destinations, ov.Destination)
		if si < 0 || di < 0 {
			continue
		}
		extracted = append(extracted, cfn.Move{
			Digest:       mv.Digest,
			Sources:      []cfn.Location{sources[si]},
			Destinations: []cfn.Location{destinations[di]},
		})
		sources = removeAt(sources, si)
		destinations = removeAt(destinations, di)
	}

	if len(sources) == 0 && len(destinations) == 0 {
		return extracted, nil
	}
	return extracted, &cfn.Move{Digest: mv.Digest, Sources: sources, Destinations: destinations}
}

func indexOf(locs []cfn.Location, target cfn.Location) int {
	for i, l := range locs {
		if l.Equal(target) {
			return i
		}
	}
	return -1
}

func removeAt(locs []cfn.Location, i int) []cfn.Location {
	return append(locs[:i:i], locs[i+1:]...)
}

// ExtractMappings emits a Mapping for every unambiguous move whose
// source and destination differ (spec §4.4 Mapping extraction).
func ExtractMappings(moves []cfn.Move) []cfn.Mapping {
	out := make([]cfn.Mapping, 0, len(moves))
	for _, mv := range moves {
		if mv.IsUnambiguous() {
			out = append(out, cfn.Mapping{Source: mv.Sources[0], Destination: mv.Destinations[0]})
		}
	}
	return out
}
