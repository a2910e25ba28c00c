package digest

import (
	"github.com/stackmove/stackmove/internal/domain/cfn"
	"github.com/stackmove/stackmove/internal/domain/model"
	"github.com/stackmove/stackmove/internal/infrastructure/graph"
)

// BuildIndex computes digests for every resource in stacks and groups
// their locations by digest (spec §3 DigestIndex). Location order
// within a bucket mirrors the input stacks' traversal order (spec §5
// Ordering guarantees).
func BuildIndex(stacks []cfn.Stack, direction graph.Direction, provider model.Provider) cfn.DigestIndex {
	digests := Compute(stacks, direction, provider)

	index := make(cfn.DigestIndex)
	for _, st := range stacks {
		if st.Template == nil {
			continue
		}
		for _, logicalID := range st.Template.SortedResourceIDs() {
			loc := cfn.NewLocation(st.StackName, logicalID)
			d, ok := digests[loc.NodeID()]
			if !ok {
				continue
			}
			index[d] = append(index[d], loc)
		}
	}
	return index
}
