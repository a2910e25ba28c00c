package move

import (
	"sort"

	"github.com/stackmove/stackmove/internal/domain/cfn"
)

// checkIsomorphic verifies that deployed and local carry the same
// digest keys with the same cardinality on each side (spec §4.3): a
// violation means something besides a pure move happened (a resource
// was added, deleted, or structurally modified) and refactor planning
// must stop rather than guess.
func checkIsomorphic(deployedStacks, localStacks []cfn.Stack, deployed, local cfn.DigestIndex) error {
	lookup := buildLookup(deployedStacks, localStacks)

	var onlyDeployed, onlyLocal []cfn.Digest
	var lost, added []string

	for _, key := range unionKeys(deployed, local) {
		deployedLocs := deployed[key]
		localLocs := local[key]
		if len(deployedLocs) == len(localLocs) {
			continue
		}

		switch {
		case len(localLocs) == 0:
			onlyDeployed = append(onlyDeployed, key)
		case len(deployedLocs) == 0:
			onlyLocal = append(onlyLocal, key)
		case len(deployedLocs) > len(localLocs):
			onlyDeployed = append(onlyDeployed, key)
		default:
			onlyLocal = append(onlyLocal, key)
		}

		for _, loc := range deployedLocs {
			lost = append(lost, loc.ToPath(lookup))
		}
		for _, loc := range localLocs {
			added = append(added, loc.ToPath(lookup))
		}
	}

	if len(onlyDeployed) == 0 && len(onlyLocal) == 0 {
		return nil
	}

	sort.Strings(lost)
	sort.Strings(added)

	return cfn.NewModificationDetectedError(
		onlyDeployed, onlyLocal, lost, added,
		stackNames(deployedStacks), stackNames(localStacks),
	)
}

func buildLookup(stackSets ...[]cfn.Stack) func(cfn.Location) (cfn.Resource, bool) {
	byLocation := make(map[cfn.Location]cfn.Resource)
	for _, stacks := range stackSets {
		for _, st := range stacks {
			if st.Template == nil {
				continue
			}
			for logicalID, res := range st.Template.Resources {
				byLocation[cfn.NewLocation(st.StackName, logicalID)] = res
			}
		}
	}
	return func(loc cfn.Location) (cfn.Resource, bool) {
		res, ok := byLocation[loc]
		return res, ok
	}
}

func stackNames(stacks []cfn.Stack) []string {
	out := make([]string, 0, len(stacks))
	for _, st := range stacks {
		out = append(out, st.StackName)
	}
	sort.Strings(out)
	return out
}
