// Package move infers resource moves from a pair of digest indices
// and classifies each as unambiguous, ambiguous, a pure addition, or a
// pure deletion (spec §4.3).
package move

import (
	"sort"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// Infer zips the deployed and local digest indices into moves,
// self-filters locations that didn't actually move, and verifies
// isomorphism unless ignoreModifications is set (spec §4.3). stacks on
// both sides are only used to resolve ToPath() for error reporting and
// are otherwise opaque to this package.
func Infer(deployedStacks, localStacks []cfn.Stack, deployed, local cfn.DigestIndex, ignoreModifications bool) ([]cfn.Move, error) {
	if !ignoreModifications {
		if err := checkIsomorphic(deployedStacks, localStacks, deployed, local); err != nil {
			return nil, err
		}
	}

	keys := unionKeys(deployed, local)
	moves := make([]cfn.Move, 0, len(keys))
	for _, key := range keys {
		sources := append([]cfn.Location(nil), deployed[key]...)
		destinations := append([]cfn.Location(nil), local[key]...)
		sources, destinations = selfFilter(sources, destinations)
		if len(sources) == 0 && len(destinations) == 0 {
			continue
		}
		moves = append(moves, cfn.Move{Digest: key, Sources: sources, Destinations: destinations})
	}

	return moves, nil
}

// selfFilter removes locations that appear on both sides with equal
// (stackName, logicalId): those resources have not moved (spec §4.3).
func selfFilter(sources, destinations []cfn.Location) ([]cfn.Location, []cfn.Location) {
	remainingSources := make([]cfn.Location, 0, len(sources))
	remainingDestinations := append([]cfn.Location(nil), destinations...)

	for _, s := range sources {
		matched := -1
		for i, d := range remainingDestinations {
			if s.Equal(d) {
				matched = i
				break
			}
		}
		if matched >= 0 {
			remainingDestinations = append(remainingDestinations[:matched], remainingDestinations[matched+1:]...)
			continue
		}
		remainingSources = append(remainingSources, s)
	}

	return remainingSources, remainingDestinations
}

func unionKeys(a, b cfn.DigestIndex) []cfn.Digest {
	seen := make(map[cfn.Digest]bool, len(a)+len(b))
	keys := make([]cfn.Digest, 0, len(a)+len(b))
	for _, idx := range []cfn.DigestIndex{a, b} {
		for k := range idx {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
